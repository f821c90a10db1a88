package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	// 注文と明細を1回で書く。明細の無い注文が見える瞬間を作らない
	CreateWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 補償用。確定前に失敗した注文を明細ごと消す
	Delete(ctx context.Context, orderID int64) error
}
