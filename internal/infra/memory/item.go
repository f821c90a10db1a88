package memory

import (
	"context"
	"sort"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type itemRepo struct{ s *Store }

func (r itemRepo) List(ctx context.Context, q repository.ItemListQuery) ([]model.Item, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	search := strings.ToLower(q.Search)
	out := make([]model.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if it.DeletedAt.Valid {
			continue
		}
		if q.Category != "" && string(it.Category) != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		out = append(out, it)
	}

	switch q.Sort {
	case repository.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			if c := out[i].Price.Cmp(out[j].Price); c != 0 {
				return c < 0
			}
			return out[i].ID < out[j].ID
		})
	case repository.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			if c := out[i].Price.Cmp(out[j].Price); c != 0 {
				return c > 0
			}
			return out[i].ID < out[j].ID
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		})
	}
	return out, nil
}

func (r itemRepo) FindByID(ctx context.Context, id int64) (model.Item, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.Item{}, err
	}
	defer r.s.mu.Unlock()

	it, ok := r.s.items[id]
	if !ok || it.DeletedAt.Valid {
		return model.Item{}, repository.ErrNotFound
	}
	return it, nil
}

func (r itemRepo) Create(ctx context.Context, it model.Item) (model.Item, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.Item{}, err
	}
	defer r.s.mu.Unlock()

	return r.s.insertItem(it), nil
}

func (r itemRepo) ReplaceAll(ctx context.Context, items []model.Item) ([]model.Item, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	t := now()
	for id, it := range r.s.items {
		if !it.DeletedAt.Valid {
			it.DeletedAt = gorm.DeletedAt{Time: t, Valid: true}
			r.s.items[id] = it
		}
	}

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		out = append(out, r.s.insertItem(it))
	}
	return out, nil
}

// muを持った状態で呼ぶ
func (s *Store) insertItem(it model.Item) model.Item {
	it.ID = s.nextID()
	t := now()
	if it.CreatedAt.IsZero() {
		it.CreatedAt = t
	}
	it.UpdatedAt = t
	it.DeletedAt = gorm.DeletedAt{}
	s.items[it.ID] = it
	return it
}

type inventoryRepo struct{ s *Store }

// 判定と減算を同じロックの中でやる
func (r inventoryRepo) DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error) {
	if err := r.s.lock(ctx); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	it, ok := r.s.items[itemID]
	if !ok || it.DeletedAt.Valid || it.Stock < qty {
		return false, nil
	}
	it.Stock -= qty
	it.UpdatedAt = now()
	r.s.items[itemID] = it
	return true, nil
}

func (r inventoryRepo) IncreaseStock(ctx context.Context, itemID int64, qty int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	it, ok := r.s.items[itemID]
	if !ok {
		return repository.ErrNotFound
	}
	it.Stock += qty
	it.UpdatedAt = now()
	r.s.items[itemID] = it
	return nil
}
