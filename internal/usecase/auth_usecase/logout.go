package auth

import (
	"context"
	"errors"

	"storefront/internal/repository"
	"storefront/internal/usecase"
)

type LogoutUsecase struct {
	userRepo repository.UserRepository
}

func NewLogoutUsecase(userRepo repository.UserRepository) *LogoutUsecase {
	return &LogoutUsecase{userRepo: userRepo}
}

// 提示されたトークンが現在のものならNULLにする。
// 間に別端末でログインされていた場合は新しい方を消さない
func (u *LogoutUsecase) Execute(ctx context.Context, userID int64, token string) error {
	if userID <= 0 || token == "" {
		return usecase.ErrMissingToken
	}

	if _, err := u.userRepo.ClearSessionToken(ctx, userID, token); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ErrUserNotFound
		}
		return usecase.ErrStoreUnavailable.Wrap(err)
	}
	return nil
}

// 管理者による強制ログアウト。どのトークンでも無効にする
func (u *LogoutUsecase) ForceLogout(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return usecase.ErrInvalidInput
	}

	if err := u.userRepo.RevokeSession(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ErrAccountNotFound
		}
		return usecase.ErrStoreUnavailable.Wrap(err)
	}
	return nil
}
