package memory

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *model.User) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.s.userByEmail[email]; ok {
		return repository.ErrDuplicateEmail
	}

	user.ID = r.s.nextID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	user.UpdatedAt = user.CreatedAt

	r.s.users[user.ID] = cloneUser(*user)
	r.s.userByEmail[email] = user.ID
	return nil
}

func (r userRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	id, ok := r.s.userByEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := cloneUser(r.s.users[id])
	return &c, nil
}

func (r userRepo) SetSessionToken(ctx context.Context, userID int64, token string, loginAt time.Time) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	t := token
	at := loginAt
	u.SessionToken = &t
	u.LastLoginAt = &at
	u.UpdatedAt = now()
	r.s.users[userID] = u
	return nil
}

func (r userRepo) ClearSessionToken(ctx context.Context, userID int64, token string) (bool, error) {
	if err := r.s.lock(ctx); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return false, repository.ErrUserNotFound
	}
	if u.SessionToken == nil || *u.SessionToken != token {
		return false, nil
	}
	u.SessionToken = nil
	u.UpdatedAt = now()
	r.s.users[userID] = u
	return true, nil
}

func (r userRepo) RevokeSession(ctx context.Context, userID int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.SessionToken = nil
	u.UpdatedAt = now()
	r.s.users[userID] = u
	return nil
}

// ポインタを共有しない
func cloneUser(u model.User) model.User {
	if u.SessionToken != nil {
		t := *u.SessionToken
		u.SessionToken = &t
	}
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		u.LastLoginAt = &at
	}
	return u
}
