package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndItem(ctx context.Context, cartID int64, itemID int64) (model.CartItem, error)
	// 同一商品は数量加算
	AddQuantity(ctx context.Context, cartID int64, itemID int64, addQty int64) error
	// 明細が無ければErrNotFound
	SetQuantity(ctx context.Context, cartID int64, itemID int64, qty int64) error
	// 明細が無くてもエラーにしない
	DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error
}
