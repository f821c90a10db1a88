package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算。足りなければfalse
	DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error)

	// 在庫戻し（補償用）
	IncreaseStock(ctx context.Context, itemID int64, qty int64) error
}
