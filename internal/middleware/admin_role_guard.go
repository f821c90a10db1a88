package middleware

import (
	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがADMINかどうかを確認します。AuthSessionの後に置く

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return errorJSON(c, usecase.ErrMissingToken)
			}

			//USERは拒否、ADMINだけ許可
			if role != string(model.RoleAdmin) {
				return errorJSON(c, usecase.ErrForbidden)
			}

			return next(c)
		}
	}
}
