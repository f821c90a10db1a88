package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 論理削除されていない商品を、カテゴリ/検索/ソート付きで返す。
func (r *ItemGormRepository) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, error) {
	var items []model.Item

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	// name / description を大文字小文字を区別せず部分一致
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	//sort
	switch q.Sort {
	case repo.SortPriceAsc:
		tx = tx.Order("price asc").Order("id asc")
	case repo.SortPriceDesc:
		tx = tx.Order("price desc").Order("id asc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	if err := tx.Find(&items).Error; err != nil {
		return []model.Item{}, err
	}
	return items, nil
}

// IDで商品を取得
func (r *ItemGormRepository) FindByID(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (r *ItemGormRepository) Create(ctx context.Context, it model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&it).Error; err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// 全商品を論理削除してから入れ直す。途中で失敗したら元のまま
func (r *ItemGormRepository) ReplaceAll(ctx context.Context, items []model.Item) ([]model.Item, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ILIKEのワイルドカードをそのままの文字として扱う
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
