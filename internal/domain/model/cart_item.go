package model

import "time"

// カートの明細。quantityは常に1以上（0以下になる明細は削除する）
// 価格は持たない（表示もチェックアウトも商品の現在価格を使う）
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_item" json:"cart_id"`
	ItemID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_item" json:"item_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
