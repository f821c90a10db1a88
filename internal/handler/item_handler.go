package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /api/items
type ItemHandler struct {
	base
	uc *usecase.ItemUsecase
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase, log logging.Logger) *ItemHandler {
	return &ItemHandler{base: base{log: log}, uc: uc}
}

type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       *int64          `json:"stock"`
}

type itemEnvelope struct {
	Item any `json:"item"`
}

type seedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func (h *ItemHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	g := api.Group("/items")

	g.GET("", h.list)
	g.POST("/seed", h.seed)
	g.GET("/:id", h.detail)
	g.POST("", h.create, authMW, middleware.AdminRoleGuard())
}

// ?category=&search=&sort=
func (h *ItemHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.ListItemsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	it, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, itemEnvelope{Item: it})
}

func (h *ItemHandler) create(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	it, err := h.uc.Create(c.Request().Context(), actor, usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, itemEnvelope{Item: it})
}

// 開発用。SEED_ENABLEDでなければ403
func (h *ItemHandler) seed(c echo.Context) error {
	n, err := h.uc.Seed(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, seedResponse{Message: "sample items created", Count: n})
}
