package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。購入時点の価格と商品名を固定で持つ
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ItemID    int64           `gorm:"not null;index" json:"item_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(oi.Quantity))
}
