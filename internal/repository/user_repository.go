package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// メール重複
var ErrDuplicateEmail = errors.New("duplicate email")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければErrUserNotFound
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。無ければErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 現在のトークンを上書きする（以前のトークンは無効になる）
	SetSessionToken(ctx context.Context, userID int64, token string, loginAt time.Time) error
	// 保存中のトークンがtokenと同じときだけNULLにする
	ClearSessionToken(ctx context.Context, userID int64, token string) (bool, error)
	// どのトークンかに関係なくNULLにする（強制ログアウト）
	RevokeSession(ctx context.Context, userID int64) error
}
