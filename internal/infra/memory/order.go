package memory

import (
	"context"
	"sort"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type orderRepo struct{ s *Store }

func (r orderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.Order{}, err
	}
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

// 新しい順
func (r orderRepo) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()

	all := make([]model.Order, 0)
	for _, o := range r.s.orders {
		if o.UserID == userID {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.Order{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// 注文と明細を同じロックの中で入れる。読み手には両方そろった状態しか見えない
func (r orderRepo) CreateWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error) {
	if err := r.s.lock(ctx); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()

	order.ID = r.s.nextID()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	rows := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		it.ID = r.s.nextID()
		it.OrderID = order.ID
		if it.CreatedAt.IsZero() {
			it.CreatedAt = order.CreatedAt
		}
		rows = append(rows, it)
	}

	r.s.orders[order.ID] = order
	r.s.orderItems[order.ID] = rows
	return order.ID, nil
}

func (r orderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now()
	r.s.orders[orderID] = o
	return nil
}

func (r orderRepo) Delete(ctx context.Context, orderID int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[orderID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, orderID)
	delete(r.s.orderItems, orderID)
	return nil
}

type orderItemRepo struct{ s *Store }

func (r orderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	rows := r.s.orderItems[orderID]
	out := make([]model.OrderItem, len(rows))
	copy(out, rows)
	return out, nil
}

type auditLogRepo struct{ s *Store }

func (r auditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	log.ID = r.s.nextID()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now()
	}
	r.s.auditLogs = append(r.s.auditLogs, log)
	return nil
}
