package memory

import (
	"context"
	"sort"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type cartRepo struct{ s *Store }

func (r cartRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.Cart{}, err
	}
	defer r.s.mu.Unlock()

	if id, ok := r.s.cartByUser[userID]; ok {
		return r.s.carts[id], nil
	}

	t := now()
	c := model.Cart{ID: r.s.nextID(), UserID: userID, CreatedAt: t, UpdatedAt: t}
	r.s.carts[c.ID] = c
	r.s.cartByUser[userID] = c.ID
	r.s.lines[c.ID] = map[int64]model.CartItem{}
	return c, nil
}

func (r cartRepo) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.Cart{}, err
	}
	defer r.s.mu.Unlock()

	id, ok := r.s.cartByUser[userID]
	if !ok {
		return model.Cart{}, repository.ErrNotFound
	}
	return r.s.carts[id], nil
}

func (r cartRepo) Clear(ctx context.Context, cartID int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.carts[cartID]; !ok {
		return nil
	}
	r.s.lines[cartID] = map[int64]model.CartItem{}
	return nil
}

type cartItemRepo struct{ s *Store }

// item_id順で返す
func (r cartItemRepo) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	m := r.s.lines[cartID]
	out := make([]model.CartItem, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r cartItemRepo) FindByCartAndItem(ctx context.Context, cartID int64, itemID int64) (model.CartItem, error) {
	if err := r.s.lock(ctx); err != nil {
		return model.CartItem{}, err
	}
	defer r.s.mu.Unlock()

	l, ok := r.s.lines[cartID][itemID]
	if !ok {
		return model.CartItem{}, repository.ErrNotFound
	}
	return l, nil
}

func (r cartItemRepo) AddQuantity(ctx context.Context, cartID int64, itemID int64, addQty int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	m, ok := r.s.lines[cartID]
	if !ok {
		return repository.ErrNotFound
	}

	t := now()
	l, ok := m[itemID]
	if !ok {
		l = model.CartItem{ID: r.s.nextID(), CartID: cartID, ItemID: itemID, CreatedAt: t}
	}
	l.Quantity += addQty
	l.UpdatedAt = t
	m[itemID] = l
	return nil
}

func (r cartItemRepo) SetQuantity(ctx context.Context, cartID int64, itemID int64, qty int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	l, ok := r.s.lines[cartID][itemID]
	if !ok {
		return repository.ErrNotFound
	}
	l.Quantity = qty
	l.UpdatedAt = now()
	r.s.lines[cartID][itemID] = l
	return nil
}

func (r cartItemRepo) DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	delete(r.s.lines[cartID], itemID)
	return nil
}
