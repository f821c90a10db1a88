package usecase_test

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	inventory  repo.InventoryRepository
	items      repo.ItemRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Items() repo.ItemRepository           { return r.items }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) CreateWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error) {
	args := m.Called(ctx, order, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	ls, _ := args.Get(0).([]model.CartItem)
	return ls, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndItem(ctx context.Context, cartID int64, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	l, _ := args.Get(0).(model.CartItem)
	return l, args.Error(1)
}

func (m *CartItemRepoMock) AddQuantity(ctx context.Context, cartID int64, itemID int64, addQty int64) error {
	args := m.Called(ctx, cartID, itemID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) SetQuantity(ctx context.Context, cartID int64, itemID int64, qty int64) error {
	args := m.Called(ctx, cartID, itemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error) {
	args := m.Called(ctx, itemID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, itemID int64, qty int64) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, id int64) (model.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.Item)
	return it, args.Error(1)
}

func (m *ItemRepoMock) Create(ctx context.Context, it model.Item) (model.Item, error) {
	args := m.Called(ctx, it)
	out, _ := args.Get(0).(model.Item)
	return out, args.Error(1)
}

func (m *ItemRepoMock) ReplaceAll(ctx context.Context, items []model.Item) ([]model.Item, error) {
	args := m.Called(ctx, items)
	out, _ := args.Get(0).([]model.Item)
	return out, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// =====================
// 付随処理のmock
// =====================

type EventsMock struct{ mock.Mock }

func (m *EventsMock) OrderCreated(ctx context.Context, o usecase.OrderOutput) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *EventsMock) OrderStatusChanged(ctx context.Context, o usecase.OrderOutput, from string) error {
	args := m.Called(ctx, o, from)
	return args.Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Set(ctx context.Context, userID int64, orderID int64, status string) error {
	args := m.Called(ctx, userID, orderID, status)
	return args.Error(0)
}

func (m *CacheMock) SetIfAbsent(ctx context.Context, userID int64, orderID int64, status string) error {
	args := m.Called(ctx, userID, orderID, status)
	return args.Error(0)
}

func (m *CacheMock) Delete(ctx context.Context, userID int64, orderID int64) error {
	args := m.Called(ctx, userID, orderID)
	return args.Error(0)
}

func (m *CacheMock) Get(ctx context.Context, userID int64, orderID int64) (string, bool, error) {
	args := m.Called(ctx, userID, orderID)
	return args.String(0), args.Bool(1), args.Error(2)
}
