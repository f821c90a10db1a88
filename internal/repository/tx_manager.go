package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Items() ItemRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// 複数レコードをまとめて巻き戻せない実装はfalseを返す。
// その場合usecase側で補償（在庫戻し）を行う
type RollbackCapable interface {
	SupportsRollback() bool
}

func SupportsRollback(tm TransactionManager) bool {
	if rc, ok := tm.(RollbackCapable); ok {
		return rc.SupportsRollback()
	}
	return true
}
