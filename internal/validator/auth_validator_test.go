package validator

import (
	"errors"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		want     error
	}{
		{"ok", "Alice", "alice@example.com", "s3cure-pass", nil},
		{"missing name", "", "alice@example.com", "s3cure-pass", usecase.ErrInvalidInput},
		{"bad email", "Alice", "alice@", "s3cure-pass", usecase.ErrInvalidEmail},
		{"display name form", "Alice", "Alice <alice@example.com>", "s3cure-pass", usecase.ErrInvalidEmail},
		{"no tld", "Alice", "alice@localhost", "s3cure-pass", usecase.ErrInvalidEmail},
		{"short password", "Alice", "alice@example.com", "short", usecase.ErrPasswordTooShort},
		{"weak password", "Alice", "alice@example.com", "Password123", usecase.ErrWeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(tc.userName, tc.email, tc.password)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("bob@example.com", "whatever"))
	assert.ErrorIs(t, v.ValidateLogin("", "x"), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin("bob@example.com", ""), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin("not-an-email", "x"), usecase.ErrInvalidEmail)
}
