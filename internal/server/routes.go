package server

import (
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Auth      *handler.AuthHandler
	AdminUser *handler.AdminUserHandler
	Item      *handler.ItemHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
}

// /api 配下を登録する。authMWはセッション必須ルートに付ける
func RegisterRoutes(e *echo.Echo, h Handlers, authMW echo.MiddlewareFunc) {
	api := e.Group("/api")

	api.GET("/health", handler.Health)

	h.Auth.RegisterRoutes(api, authMW)
	h.AdminUser.RegisterRoutes(api, authMW)
	h.Item.RegisterRoutes(api, authMW)
	h.Cart.RegisterRoutes(api, authMW)
	h.Order.RegisterRoutes(api, authMW)
}
