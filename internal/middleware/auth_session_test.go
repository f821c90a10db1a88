package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AuthenticatorMock struct{ mock.Mock }

func (m *AuthenticatorMock) Execute(ctx context.Context, rawToken string) (model.User, error) {
	args := m.Called(ctx, rawToken)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type errBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func serve(t *testing.T, h echo.HandlerFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errBody {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestAuthSession_SetsContext(t *testing.T) {
	authn := new(AuthenticatorMock)
	authn.On("Execute", mock.Anything, "tok-1").Return(model.User{ID: 7, Role: model.RoleAdmin}, nil)

	var (
		gotID    any
		gotRole  any
		gotToken any
	)
	h := middleware.AuthSession(authn)(func(c echo.Context) error {
		gotID = c.Get(middleware.CtxUserIDKey)
		gotRole = c.Get(middleware.CtxUserRoleKey)
		gotToken = c.Get(middleware.CtxTokenKey)
		return c.NoContent(http.StatusOK)
	})

	rec := serve(t, h, "Bearer tok-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, "ADMIN", gotRole)
	assert.Equal(t, "tok-1", gotToken)
	authn.AssertExpectations(t)
}

func TestAuthSession_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		authz  string
		token  string
		err    error
		status int
		code   string
	}{
		{"no header", "", "", usecase.ErrMissingToken, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"not bearer", "Basic abc", "", usecase.ErrMissingToken, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"expired", "Bearer old", "old", usecase.ErrExpiredToken, http.StatusUnauthorized, "EXPIRED_TOKEN"},
		{"malformed", "Bearer junk", "junk", usecase.ErrMalformedToken, http.StatusUnauthorized, "MALFORMED_TOKEN"},
		{"superseded", "Bearer prev", "prev", usecase.ErrTokenMismatch, http.StatusConflict, "TOKEN_MISMATCH"},
		{"user gone", "Bearer x", "x", usecase.ErrUserNotFound, http.StatusUnauthorized, "USER_NOT_FOUND"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			authn := new(AuthenticatorMock)
			authn.On("Execute", mock.Anything, tc.token).Return(model.User{}, tc.err)

			called := false
			h := middleware.AuthSession(authn)(func(c echo.Context) error {
				called = true
				return nil
			})

			rec := serve(t, h, tc.authz)
			assert.False(t, called)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeErr(t, rec).Code)
		})
	}
}

func TestAdminRoleGuard(t *testing.T) {
	tests := []struct {
		name   string
		role   any
		status int
	}{
		{"admin", "ADMIN", http.StatusOK},
		{"user", "USER", http.StatusForbidden},
		{"no role", nil, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := func(c echo.Context) error {
				if tc.role != nil {
					c.Set(middleware.CtxUserRoleKey, tc.role)
				}
				return middleware.AdminRoleGuard()(func(c echo.Context) error {
					return c.NoContent(http.StatusOK)
				})(c)
			}

			rec := serve(t, h, "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
