package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/logging"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/carts のHTTP
type CartHandler struct {
	base
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, log logging.Logger) *CartHandler {
	return &CartHandler{base: base{log: log}, uc: uc}
}

// quantity省略時は1
type AddCartRequest struct {
	ItemID   int64  `json:"itemId"`
	Quantity *int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type cartEnvelope struct {
	Cart usecase.CartResponse `json:"cart"`
}

// /carts, /carts/:itemId を登録
func (h *CartHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	g := api.Group("/carts", authMW)

	g.GET("", h.getCart)
	g.POST("", h.addLine)
	g.PUT("/:itemId", h.setQuantity)
	g.DELETE("/:itemId", h.removeLine)
	g.DELETE("", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Cart: out})
}

func (h *CartHandler) addLine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.ItemID <= 0 {
		return badRequest(c, "itemId is required")
	}

	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddLine(c.Request().Context(), userID, usecase.AddLineInput{
		ItemID:   req.ItemID,
		Quantity: qty,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Cart: out})
}

func (h *CartHandler) setQuantity(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SetLineQuantity(c.Request().Context(), userID, itemID, req.Quantity)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Cart: out})
}

func (h *CartHandler) removeLine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.RemoveLine(c.Request().Context(), userID, itemID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Cart: out})
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.Clear(c.Request().Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Cart: out})
}
