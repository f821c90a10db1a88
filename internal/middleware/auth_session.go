package middleware

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
	CtxTokenKey    = "token"     // string（ログアウトで使う）
	CtxUserKey     = "user"      // model.User
)

// auth.AuthenticateUsecase を受ける
type Authenticator interface {
	Execute(ctx context.Context, rawToken string) (model.User, error)
}

// Bearerトークンを検証し、DBに保存されている唯一のトークンと一致するか確認する。
func AuthSession(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

			user, err := authn.Execute(c.Request().Context(), rawToken)
			if err != nil {
				return errorJSON(c, err)
			}

			//contextへ保存
			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxUserRoleKey, string(user.Role))
			c.Set(CtxTokenKey, rawToken)
			c.Set(CtxUserKey, user)

			return next(c)
		}
	}
}

// "Bearer xxx" からトークンを抜く。形式が違えば空
func bearerToken(authz string) string {
	parts := strings.SplitN(strings.TrimSpace(authz), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func errorJSON(c echo.Context, err error) error {
	ae, ok := usecase.AsAppError(err)
	if !ok {
		ae = usecase.ErrInternal
	}
	return c.JSON(ae.Status(), errorResponse{Error: ae.Message, Code: ae.Code})
}
