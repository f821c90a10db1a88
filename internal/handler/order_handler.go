package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/logging"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	base
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, log logging.Logger) *OrderHandler {
	return &OrderHandler{base: base{log: log}, uc: uc}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type orderEnvelope struct {
	Order usecase.OrderOutput `json:"order"`
}

type ordersEnvelope struct {
	Orders []usecase.OrderOutput `json:"orders"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	g := api.Group("/orders", authMW)

	g.POST("", h.checkout)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.GET("/:id/status", h.status)
	g.PUT("/:id", h.updateStatus)
}

// カートから注文を作る
func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderEnvelope{Order: out})
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		limit = l
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ordersEnvelope{Orders: out})
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderEnvelope{Order: out})
}

func (h *OrderHandler) status(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetMyOrderStatus(c.Request().Context(), userID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 本人かADMINだけ
func (h *OrderHandler) updateStatus(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), actor, id, usecase.UpdateOrderStatusInput{Status: req.Status})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderEnvelope{Order: out})
}
