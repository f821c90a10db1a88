package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 明細の書き込みは OrderRepository.CreateWithItems が行う
type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
