package auth

import "time"

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// トークンを発行する約束。毎回違う値を返すこと
type TokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

// 署名と期限だけを検証してuser_idを取り出す約束。
// 期限切れはusecase.ErrExpiredToken、それ以外の不正はusecase.ErrMalformedTokenを返す
type TokenVerifier interface {
	Verify(raw string) (userID int64, err error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 入力チェックの約束
type InputValidator interface {
	ValidateRegister(name string, email string, password string) error
	ValidateLogin(email string, password string) error
}
