package auth

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	verifier  PasswordVerifier
	validator InputValidator
	session   sessionIssuer
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	validator InputValidator,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		verifier:  verifier,
		validator: validator,
		session:   sessionIssuer{users: userRepo, issuer: issuer, clock: clock},
	}
}

// ログイン処理を実行する。成功すると他端末のトークンは無効になる
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (SessionOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := u.validator.ValidateLogin(email, in.Password); err != nil {
		return SessionOutput{}, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SessionOutput{}, usecase.ErrInvalidCredential
		}
		return SessionOutput{}, usecase.ErrStoreUnavailable.Wrap(err)
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return SessionOutput{}, usecase.ErrInvalidCredential
	}

	return u.session.issue(ctx, user)
}
