package auth

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUserUsecaseは会員登録の処理。登録後はそのままログイン状態にする
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	validator InputValidator
	clock     Clock
	session   sessionIssuer
	admins    map[string]struct{}
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	validator InputValidator,
	issuer TokenIssuer,
	clock Clock,
	adminEmails []string,
) *RegisterUserUsecase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &RegisterUserUsecase{
		admins:    admins,
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
		clock:     clock,
		session:   sessionIssuer{users: userRepo, issuer: issuer, clock: clock},
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (SessionOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := u.validator.ValidateRegister(name, email, in.Password); err != nil {
		return SessionOutput{}, err
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return SessionOutput{}, usecase.ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return SessionOutput{}, usecase.ErrStoreUnavailable.Wrap(err)
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return SessionOutput{}, usecase.ErrInternal.Wrap(err)
	}

	//ADMIN_EMAILSに入っているメールだけ管理者にする
	role := model.RoleUser
	if _, ok := u.admins[email]; ok {
		role = model.RoleAdmin
	}

	now := u.clock.Now()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// 同時登録でunique制約に当たった場合
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return SessionOutput{}, usecase.ErrEmailAlreadyExists
		}
		return SessionOutput{}, usecase.ErrStoreUnavailable.Wrap(err)
	}

	return u.session.issue(ctx, user)
}
