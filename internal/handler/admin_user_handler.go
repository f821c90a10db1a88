package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/logging"
	"storefront/internal/middleware"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	base
	logoutUC *auth.LogoutUsecase
}

func NewAdminUserHandler(logoutUC *auth.LogoutUsecase, log logging.Logger) *AdminUserHandler {
	return &AdminUserHandler{base: base{log: log}, logoutUC: logoutUC}
}

func (h *AdminUserHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	// セッション必須 + ADMIN限定
	api.POST("/users/:id/force-logout", h.ForceLogout, authMW, middleware.AdminRoleGuard())
}

// 対象ユーザーの現在のトークンを無効にする
func (h *AdminUserHandler) ForceLogout(c echo.Context) error {
	idStr := c.Param("id")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || userID <= 0 {
		return badRequest(c, "invalid user_id")
	}

	if err := h.logoutUC.ForceLogout(c.Request().Context(), userID); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "session revoked"})
}
