package auth

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// 返却用。パスワードハッシュやトークンは含めない
type UserDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SessionOutput struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// トークンを発行してユーザーの唯一のトークンとして保存する。
// 上書きした時点で以前のトークンはすべて使えなくなる
type sessionIssuer struct {
	users  repository.UserRepository
	issuer TokenIssuer
	clock  Clock
}

func (s sessionIssuer) issue(ctx context.Context, user *model.User) (SessionOutput, error) {
	now := s.clock.Now()

	token, expiresAt, err := s.issuer.Issue(user.ID, now)
	if err != nil {
		return SessionOutput{}, usecase.ErrInternal.Wrap(err)
	}

	if err := s.users.SetSessionToken(ctx, user.ID, token, now); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SessionOutput{}, usecase.ErrUserNotFound
		}
		return SessionOutput{}, usecase.ErrStoreUnavailable.Wrap(err)
	}

	user.SessionToken = &token
	user.LastLoginAt = &now

	return SessionOutput{
		User:      ToUserDTO(*user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
