package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// 一覧検索。空文字は条件なし
type ItemListQuery struct {
	Category string
	Search   string
	Sort     string
}

// 商品の永続化（保存・取得）だけを約束。
type ItemRepository interface {
	List(ctx context.Context, q ItemListQuery) ([]model.Item, error)
	FindByID(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, it model.Item) (model.Item, error)

	// 既存商品をすべて論理削除してから入れ直す（seed用）
	ReplaceAll(ctx context.Context, items []model.Item) ([]model.Item, error)
}
