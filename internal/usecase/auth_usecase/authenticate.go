package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// 認証済みリクエストのたびに呼ぶ。副作用なし
type AuthenticateUsecase struct {
	userRepo repository.UserRepository
	verifier TokenVerifier
}

func NewAuthenticateUsecase(userRepo repository.UserRepository, verifier TokenVerifier) *AuthenticateUsecase {
	return &AuthenticateUsecase{userRepo: userRepo, verifier: verifier}
}

func (u *AuthenticateUsecase) Execute(ctx context.Context, rawToken string) (model.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return model.User{}, usecase.ErrMissingToken
	}

	//署名と期限
	userID, err := u.verifier.Verify(rawToken)
	if err != nil {
		if _, ok := usecase.AsAppError(err); ok {
			return model.User{}, err
		}
		return model.User{}, usecase.ErrMalformedToken.Wrap(err)
	}

	//DBから最新のuserを取得する
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, usecase.ErrUserNotFound
		}
		return model.User{}, usecase.ErrStoreUnavailable.Wrap(err)
	}

	//保存中のトークンと一致しなければ、別端末でログインしたかログアウト済み
	if user.SessionToken == nil || subtle.ConstantTimeCompare([]byte(*user.SessionToken), []byte(rawToken)) != 1 {
		return model.User{}, usecase.ErrTokenMismatch
	}

	return *user, nil
}
