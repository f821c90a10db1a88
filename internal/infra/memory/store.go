// Package memory is an in-process store for local runs and tests.
//
// Every single operation is atomic under one mutex, but a sequence of
// operations cannot be rolled back. SupportsRollback reports false so the
// checkout compensates by hand.
package memory

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users       map[int64]model.User
	userByEmail map[string]int64

	items map[int64]model.Item

	carts      map[int64]model.Cart
	cartByUser map[int64]int64
	lines      map[int64]map[int64]model.CartItem // cartID -> itemID -> line

	orders     map[int64]model.Order
	orderItems map[int64][]model.OrderItem

	auditLogs []model.AuditLog

	seq int64
}

func NewStore() *Store {
	return &Store{
		users:       map[int64]model.User{},
		userByEmail: map[string]int64{},
		items:       map[int64]model.Item{},
		carts:       map[int64]model.Cart{},
		cartByUser:  map[int64]int64{},
		lines:       map[int64]map[int64]model.CartItem{},
		orders:      map[int64]model.Order{},
		orderItems:  map[int64][]model.OrderItem{},
	}
}

// 全テーブル共通の連番。呼び出し側でmuを持っていること
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// 操作の頭で呼ぶ。タイムアウト後は何も書かない
func (s *Store) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	return nil
}

func (s *Store) Users() repository.UserRepository           { return userRepo{s} }
func (s *Store) Items() repository.ItemRepository           { return itemRepo{s} }
func (s *Store) Inventory() repository.InventoryRepository  { return inventoryRepo{s} }
func (s *Store) Carts() repository.CartRepository           { return cartRepo{s} }
func (s *Store) CartItems() repository.CartItemRepository   { return cartItemRepo{s} }
func (s *Store) Orders() repository.OrderRepository         { return orderRepo{s} }
func (s *Store) OrderItems() repository.OrderItemRepository { return orderItemRepo{s} }
func (s *Store) AuditLogs() repository.AuditLogRepository   { return auditLogRepo{s} }

// Txは無い。fnにそのまま自分を渡す
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

func (s *Store) SupportsRollback() bool { return false }

// 監査ログのコピー（確認用）
func (s *Store) AuditEntries() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditLog, len(s.auditLogs))
	copy(out, s.auditLogs)
	return out
}

func now() time.Time { return time.Now().UTC() }

var (
	_ repository.TransactionManager = (*Store)(nil)
	_ repository.TxRepos            = (*Store)(nil)
	_ repository.RollbackCapable    = (*Store)(nil)
)
