package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /carts の業務ロジックです。
// 1操作1レコードなのでTxは使わない（同一ユーザーの同時編集は後勝ち）
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	itemRepo     repo.ItemRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	itemRepo repo.ItemRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		itemRepo:     itemRepo,
	}
}

// price は商品の現在価格（カートは価格を持たない）
type CartLineResponse struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	ID    int64              `json:"id"`
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddLineInput struct {
	ItemID   int64
	Quantity int64
}

// カート取得（無ければ作って空を返す）
func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrMissingToken
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 同一商品は数量を加算する。在庫は今回追加する数量で見る
func (u *CartUsecase) AddLine(ctx context.Context, userID int64, in AddLineInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrMissingToken
	}
	if in.Quantity < 1 {
		return CartResponse{}, ErrInvalidQuantity
	}
	if in.ItemID <= 0 {
		return CartResponse{}, ErrItemNotFound
	}

	it, err := u.itemRepo.FindByID(ctx, in.ItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, ErrItemNotFound
	}
	if err != nil {
		return CartResponse{}, storeErr(err)
	}
	if it.Stock < in.Quantity {
		return CartResponse{}, insufficientStock(it.Name)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}

	if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, in.ItemID, in.Quantity); err != nil {
		return CartResponse{}, storeErr(err)
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 数量を置き換える。カートに無い商品はLineNotFound
func (u *CartUsecase) SetLineQuantity(ctx context.Context, userID int64, itemID int64, quantity int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrMissingToken
	}
	if quantity < 1 {
		return CartResponse{}, ErrInvalidQuantity
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}

	if _, err := u.cartItemRepo.FindByCartAndItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, ErrLineNotFound
		}
		return CartResponse{}, storeErr(err)
	}

	it, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, ErrItemNotFound
	}
	if err != nil {
		return CartResponse{}, storeErr(err)
	}
	if it.Stock < quantity {
		return CartResponse{}, insufficientStock(it.Name)
	}

	if err := u.cartItemRepo.SetQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		//確認後に別リクエストで消された
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, ErrLineNotFound
		}
		return CartResponse{}, storeErr(err)
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除。無くてもエラーにしない
func (u *CartUsecase) RemoveLine(ctx context.Context, userID int64, itemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrMissingToken
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}

	if err := u.cartItemRepo.DeleteByCartAndItem(ctx, cart.ID, itemID); err != nil {
		return CartResponse{}, storeErr(err)
	}
	return u.buildCartResponse(ctx, cart.ID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrMissingToken
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, storeErr(err)
	}
	return CartResponse{ID: cart.ID, Items: []CartLineResponse{}, Total: decimal.Zero}, nil
}

// cartIDの明細を現在価格でまとめる。消えた商品の明細は表示しない
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	lines, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, storeErr(err)
	}

	respItems := make([]CartLineResponse, 0, len(lines))
	total := decimal.Zero

	for _, l := range lines {
		it, err := u.itemRepo.FindByID(ctx, l.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartResponse{}, storeErr(fmt.Errorf("item %d: %w", l.ItemID, err))
		}

		sub := it.Price.Mul(decimal.NewFromInt(l.Quantity))
		respItems = append(respItems, CartLineResponse{
			ItemID:   l.ItemID,
			Name:     it.Name,
			Image:    it.Image,
			Price:    it.Price,
			Quantity: l.Quantity,
			Subtotal: sub,
		})
		total = total.Add(sub)
	}

	return CartResponse{ID: cartID, Items: respItems, Total: total}, nil
}
