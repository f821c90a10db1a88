package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/logging"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type ItemUsecase struct {
	itemRepo    repo.ItemRepository
	log         logging.Logger
	seedEnabled bool
}

// DI
func NewItemUsecase(itemRepo repo.ItemRepository, log logging.Logger, seedEnabled bool) *ItemUsecase {
	return &ItemUsecase{
		itemRepo:    itemRepo,
		log:         log.With("component", "catalog"),
		seedEnabled: seedEnabled,
	}
}

// GET /items の入力DTO
type ListItemsInput struct {
	Category string
	Search   string
	Sort     string
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
}

func (u *ItemUsecase) List(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	category := strings.TrimSpace(in.Category)
	if category != "" && !model.Category(category).Valid() {
		return ItemListOutput{}, ErrInvalidCategory
	}

	search := strings.TrimSpace(in.Search)
	if len(search) > 100 {
		return ItemListOutput{}, ErrInvalidInput.WithMessage("search too long")
	}

	//知らないsortは新着順にする
	sort := in.Sort
	switch sort {
	case repo.SortPriceAsc, repo.SortPriceDesc, repo.SortNewest:
	default:
		sort = repo.SortNewest
	}

	items, err := u.itemRepo.List(ctx, repo.ItemListQuery{
		Category: category,
		Search:   search,
		Sort:     sort,
	})
	if err != nil {
		return ItemListOutput{}, storeErr(err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return ItemListOutput{Items: items}, nil
}

func (u *ItemUsecase) Get(ctx context.Context, itemID int64) (model.Item, error) {
	if itemID <= 0 {
		return model.Item{}, ErrItemNotFound
	}

	it, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, storeErr(err)
	}
	return it, nil
}

type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	// nilならDefaultStock
	Stock *int64
}

// 商品登録（ADMINのみ）
func (u *ItemUsecase) Create(ctx context.Context, actor Actor, in CreateItemInput) (model.Item, error) {
	if actor.UserID <= 0 {
		return model.Item{}, ErrMissingToken
	}
	if !actor.IsAdmin() {
		return model.Item{}, ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Item{}, ErrInvalidInput.WithMessage("name required")
	}
	if len(name) > 255 {
		return model.Item{}, ErrInvalidInput.WithMessage("name too long")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Item{}, ErrInvalidInput.WithMessage("description required")
	}
	if in.Price.IsNegative() {
		return model.Item{}, ErrInvalidInput.WithMessage("price must be >= 0")
	}
	cat := model.Category(strings.TrimSpace(in.Category))
	if !cat.Valid() {
		return model.Item{}, ErrInvalidCategory
	}

	stock := model.DefaultStock
	if in.Stock != nil {
		stock = *in.Stock
	}
	if stock < 0 {
		return model.Item{}, ErrInvalidInput.WithMessage("stock must be >= 0")
	}

	now := time.Now()
	it, err := u.itemRepo.Create(ctx, model.Item{
		Name:        name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Image:       strings.TrimSpace(in.Image),
		Category:    cat,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Item{}, storeErr(err)
	}

	u.log.Info(ctx, "item created", "item_id", it.ID, "actor_id", actor.UserID)
	return it, nil
}

// 既存商品を論理削除してサンプルを入れ直す。SEED_ENABLEDのときだけ
func (u *ItemUsecase) Seed(ctx context.Context) (int, error) {
	if !u.seedEnabled {
		return 0, ErrForbidden.WithMessage("seeding is disabled")
	}

	items, err := u.itemRepo.ReplaceAll(ctx, sampleItems())
	if err != nil {
		return 0, storeErr(err)
	}

	u.log.Info(ctx, "catalog seeded", "count", len(items))
	return len(items), nil
}
