package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/handler"
	"storefront/internal/infra/memory"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// メモリストアでアプリ全体を組む
// =====================

type counterID struct{ n int }

func (g *counterID) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type nowClock struct{}

func (nowClock) Now() time.Time { return time.Now() }

func newApp(t *testing.T, seedEnabled bool) *echo.Echo {
	t.Helper()

	log := logging.Discard()
	s := memory.NewStore()
	tokens := auth.NewJWTTokenService("flow-secret", time.Hour, &counterID{})
	v := validator.NewAuthValidator()

	registerUC := auth.NewRegisterUserUsecase(s.Users(), auth.NewBcryptPasswordHasher(bcrypt.MinCost), v, tokens, nowClock{}, []string{"admin@example.com"})
	loginUC := auth.NewLoginUsecase(s.Users(), auth.NewBcryptPasswordVerifier(), v, tokens, nowClock{})
	logoutUC := auth.NewLogoutUsecase(s.Users())
	authn := auth.NewAuthenticateUsecase(s.Users(), tokens)

	h := server.Handlers{
		Auth:      handler.NewAuthHandler(registerUC, loginUC, logoutUC, log),
		AdminUser: handler.NewAdminUserHandler(logoutUC, log),
		Item:      handler.NewItemHandler(usecase.NewItemUsecase(s.Items(), log, seedEnabled), log),
		Cart:      handler.NewCartHandler(usecase.NewCartUsecase(s.Carts(), s.CartItems(), s.Items()), log),
		Order:     handler.NewOrderHandler(usecase.NewOrderUsecase(s, nil, nil, log, time.Second), log),
	}

	e := server.New(log, server.Options{})
	server.RegisterRoutes(e, h, middleware.AuthSession(authn))
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type sessionBody struct {
	User struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

type itemBody struct {
	Item struct {
		ID    int64           `json:"id"`
		Price decimal.Decimal `json:"price"`
		Stock int64           `json:"stock"`
	} `json:"item"`
}

type cartBody struct {
	Cart struct {
		Items []struct {
			ItemID   int64 `json:"item_id"`
			Quantity int64 `json:"quantity"`
		} `json:"items"`
		Total decimal.Decimal `json:"total"`
	} `json:"cart"`
}

type orderBody struct {
	Order struct {
		ID          int64           `json:"id"`
		Status      string          `json:"status"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		Items       []struct {
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		} `json:"items"`
	} `json:"order"`
}

type errBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func signup(t *testing.T, e *echo.Echo, email string) sessionBody {
	t.Helper()
	rec := call(t, e, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "Shopper",
		"email":    email,
		"password": "s3cure-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[sessionBody](t, rec)
}

func createItem(t *testing.T, e *echo.Echo, adminToken, name, price string, stock int64) int64 {
	t.Helper()
	rec := call(t, e, http.MethodPost, "/api/items", adminToken, map[string]any{
		"name":        name,
		"description": name + " for testing",
		"price":       price,
		"category":    "home",
		"stock":       stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[itemBody](t, rec).Item.ID
}

// =====================
// シナリオ
// =====================

func TestFlow_CartToOrder(t *testing.T) {
	e := newApp(t, false)

	admin := signup(t, e, "admin@example.com")
	require.Equal(t, "ADMIN", admin.User.Role)
	shopper := signup(t, e, "shopper@example.com")
	require.Equal(t, "USER", shopper.User.Role)

	mug := createItem(t, e, admin.Token, "Mug", "10.00", 5)
	pen := createItem(t, e, admin.Token, "Pen", "5.00", 1)

	// カートに入れる（quantity省略は1）
	rec := call(t, e, http.MethodPost, "/api/carts", shopper.Token, map[string]any{"itemId": mug, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = call(t, e, http.MethodPost, "/api/carts", shopper.Token, map[string]any{"itemId": pen})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cart := decode[cartBody](t, rec)
	require.Len(t, cart.Cart.Items, 2)
	assert.True(t, cart.Cart.Total.Equal(decimal.RequireFromString("25")))

	// チェックアウト
	rec = call(t, e, http.MethodPost, "/api/orders", shopper.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[orderBody](t, rec)
	assert.Equal(t, "pending", order.Order.Status)
	assert.True(t, order.Order.TotalAmount.Equal(decimal.RequireFromString("25")))
	require.Len(t, order.Order.Items, 2)

	// カートは空、在庫は減っている
	rec = call(t, e, http.MethodGet, "/api/carts", shopper.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartBody](t, rec).Cart.Items)

	rec = call(t, e, http.MethodGet, fmt.Sprintf("/api/items/%d", pen), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[itemBody](t, rec).Item.Stock)

	// 空カートでもう一度
	rec = call(t, e, http.MethodPost, "/api/orders", shopper.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMPTY_CART", decode[errBody](t, rec).Code)

	// 一覧と詳細
	rec = call(t, e, http.MethodGet, "/api/orders?page=1&limit=10", shopper.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Orders []struct {
			ID int64 `json:"id"`
		} `json:"orders"`
	}](t, rec)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, order.Order.ID, list.Orders[0].ID)

	rec = call(t, e, http.MethodGet, "/api/orders?limit=0", shopper.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 他人の注文は404
	other := signup(t, e, "other@example.com")
	rec = call(t, e, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.Order.ID), other.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// ADMINはステータスを変えられる
	rec = call(t, e, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.Order.ID), admin.Token, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "shipped", decode[orderBody](t, rec).Order.Status)

	rec = call(t, e, http.MethodGet, fmt.Sprintf("/api/orders/%d/status", order.Order.ID), shopper.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", decode[usecase.OrderStatusOutput](t, rec).Status)

	rec = call(t, e, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.Order.ID), shopper.Token, map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", decode[errBody](t, rec).Code)
}

func TestFlow_InsufficientStock(t *testing.T) {
	e := newApp(t, false)
	admin := signup(t, e, "admin@example.com")
	shopper := signup(t, e, "shopper@example.com")

	it := createItem(t, e, admin.Token, "Rare", "99.00", 1)

	rec := call(t, e, http.MethodPost, "/api/carts", shopper.Token, map[string]any{"itemId": it, "quantity": 2})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[errBody](t, rec).Code)

	rec = call(t, e, http.MethodPost, "/api/carts", shopper.Token, map[string]any{"itemId": it, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodPut, fmt.Sprintf("/api/carts/%d", it), shopper.Token, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "LINE_NOT_FOUND", decode[errBody](t, rec).Code)
}

// 新しいログインで古いトークンは409
func TestFlow_SingleSession(t *testing.T) {
	e := newApp(t, false)
	first := signup(t, e, "shopper@example.com")

	rec := call(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "shopper@example.com",
		"password": "s3cure-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decode[sessionBody](t, rec)

	rec = call(t, e, http.MethodGet, "/api/users/me", first.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "TOKEN_MISMATCH", decode[errBody](t, rec).Code)

	rec = call(t, e, http.MethodGet, "/api/users/me", second.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[sessionBody](t, rec)
	assert.Equal(t, second.User.ID, me.User.ID)

	rec = call(t, e, http.MethodPost, "/api/users/logout", second.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/users/me", second.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/carts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decode[errBody](t, rec).Code)
}

func TestFlow_AdminOnlyRoutes(t *testing.T) {
	e := newApp(t, false)
	admin := signup(t, e, "admin@example.com")
	shopper := signup(t, e, "shopper@example.com")

	rec := call(t, e, http.MethodPost, "/api/items", shopper.Token, map[string]any{
		"name": "X", "description": "x", "price": "1.00", "category": "home",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, e, http.MethodPost, fmt.Sprintf("/api/users/%d/force-logout", admin.User.ID), shopper.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, e, http.MethodPost, fmt.Sprintf("/api/users/%d/force-logout", shopper.User.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/api/users/me", shopper.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, e, http.MethodPost, "/api/users/9999/force-logout", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFlow_Catalog(t *testing.T) {
	e := newApp(t, true)

	rec := call(t, e, http.MethodPost, "/api/items/seed", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 8, decode[struct {
		Count int `json:"count"`
	}](t, rec).Count)

	rec = call(t, e, http.MethodGet, "/api/items?category=electronics&sort=price-asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Items []struct {
			Category string          `json:"category"`
			Price    decimal.Decimal `json:"price"`
		} `json:"items"`
	}](t, rec)
	require.NotEmpty(t, list.Items)
	for i, it := range list.Items {
		assert.Equal(t, "electronics", it.Category)
		if i > 0 {
			assert.True(t, list.Items[i-1].Price.LessThanOrEqual(it.Price))
		}
	}

	rec = call(t, e, http.MethodGet, "/api/items?category=toys", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/items/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/items/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFlow_SeedDisabled(t *testing.T) {
	e := newApp(t, false)

	rec := call(t, e, http.MethodPost, "/api/items/seed", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFlow_Health(t *testing.T) {
	e := newApp(t, false)

	rec := call(t, e, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[struct {
		Status string `json:"status"`
	}](t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
