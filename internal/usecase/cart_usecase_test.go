package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/infra/memory"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartUsecase(s *memory.Store) *usecase.CartUsecase {
	return usecase.NewCartUsecase(s.Carts(), s.CartItems(), s.Items())
}

func TestCart_Get_CreatesEmpty(t *testing.T) {
	s := memory.NewStore()
	uc := newCartUsecase(s)

	out, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())

	// 2回目も同じカート
	again, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, out.ID, again.ID)
}

func TestCart_AddLine_SameItemAccumulates(t *testing.T) {
	s := memory.NewStore()
	it := seedItem(t, s, "Mug", "10.00", 5)
	uc := newCartUsecase(s)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: it.ID, Quantity: 2})
	require.NoError(t, err)
	out, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: it.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.True(t, out.Items[0].Subtotal.Equal(price("50.00")))
	assert.True(t, out.Total.Equal(price("50.00")))

	// カート追加では在庫は減らない
	assert.Equal(t, int64(5), stockOf(t, s, it.ID))
}

func TestCart_AddLine_Errors(t *testing.T) {
	s := memory.NewStore()
	it := seedItem(t, s, "Mug", "10.00", 2)
	uc := newCartUsecase(s)

	tests := []struct {
		name string
		in   usecase.AddLineInput
		want *usecase.AppError
	}{
		{"zero quantity", usecase.AddLineInput{ItemID: it.ID, Quantity: 0}, usecase.ErrInvalidQuantity},
		{"negative quantity", usecase.AddLineInput{ItemID: it.ID, Quantity: -1}, usecase.ErrInvalidQuantity},
		{"unknown item", usecase.AddLineInput{ItemID: 9999, Quantity: 1}, usecase.ErrItemNotFound},
		{"more than stock", usecase.AddLineInput{ItemID: it.ID, Quantity: 3}, usecase.ErrInsufficientStock},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddLine(context.Background(), 1, tc.in)
			assertAppErr(t, err, tc.want)
		})
	}
}

func TestCart_SetLineQuantity(t *testing.T) {
	s := memory.NewStore()
	it := seedItem(t, s, "Mug", "10.00", 5)
	other := seedItem(t, s, "Pen", "1.00", 5)
	uc := newCartUsecase(s)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: it.ID, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.SetLineQuantity(ctx, 1, it.ID, 4)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(4), out.Items[0].Quantity)

	_, err = uc.SetLineQuantity(ctx, 1, it.ID, 0)
	assertAppErr(t, err, usecase.ErrInvalidQuantity)

	_, err = uc.SetLineQuantity(ctx, 1, it.ID, 6)
	assertAppErr(t, err, usecase.ErrInsufficientStock)

	// カートに無い商品
	_, err = uc.SetLineQuantity(ctx, 1, other.ID, 1)
	assertAppErr(t, err, usecase.ErrLineNotFound)
}

func TestCart_RemoveLine_Idempotent(t *testing.T) {
	s := memory.NewStore()
	it := seedItem(t, s, "Mug", "10.00", 5)
	uc := newCartUsecase(s)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: it.ID, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.RemoveLine(ctx, 1, it.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	out, err = uc.RemoveLine(ctx, 1, it.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCart_Clear_KeepsCart(t *testing.T) {
	s := memory.NewStore()
	a := seedItem(t, s, "Mug", "10.00", 5)
	b := seedItem(t, s, "Pen", "1.50", 5)
	uc := newCartUsecase(s)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: a.ID, Quantity: 1})
	require.NoError(t, err)
	before, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: b.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, before.Total.Equal(price("13.00")))

	out, err := uc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before.ID, out.ID)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

// 論理削除された商品の明細は表示しない
func TestCart_Get_SkipsDeletedItems(t *testing.T) {
	s := memory.NewStore()
	it := seedItem(t, s, "Mug", "10.00", 5)
	uc := newCartUsecase(s)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, 1, usecase.AddLineInput{ItemID: it.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = s.Items().ReplaceAll(ctx, nil)
	require.NoError(t, err)

	out, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

func TestCart_NoUser_MissingToken(t *testing.T) {
	uc := newCartUsecase(memory.NewStore())

	_, err := uc.Get(context.Background(), 0)
	assertAppErr(t, err, usecase.ErrMissingToken)
}
