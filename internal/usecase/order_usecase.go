package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/logging"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// チェックアウト1回のデフォルト上限
const DefaultCheckoutTimeout = 5 * time.Second

type OrderUsecase struct {
	tx      repo.TransactionManager
	events  OrderEventPublisher
	cache   OrderStatusCache
	log     logging.Logger
	timeout time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	events OrderEventPublisher,
	cache OrderStatusCache,
	log logging.Logger,
	checkoutTimeout time.Duration,
) *OrderUsecase {
	if events == nil {
		events = NopOrderEvents{}
	}
	if cache == nil {
		cache = NopStatusCache{}
	}
	if checkoutTimeout <= 0 {
		checkoutTimeout = DefaultCheckoutTimeout
	}
	return &OrderUsecase{
		tx:      tx,
		events:  events,
		cache:   cache,
		log:     log.With("component", "order"),
		timeout: checkoutTimeout,
	}
}

type OrderItemOutput struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Items       []OrderItemOutput `json:"items"`
}

type OrderStatusOutput struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// 減算済みの在庫（補償用）
type stockMove struct {
	itemID int64
	qty    int64
}

// カートを注文に変換する。
// 在庫の減算・注文作成・カートのクリアは全部成功するか全部無かったことになる
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	compensate := !repo.SupportsRollback(u.tx)

	var (
		out       OrderOutput
		applied   []stockMove
		createdID int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		applied = applied[:0]
		createdID = 0

		cart, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return storeErr(err)
		}

		lines, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return storeErr(err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// 同じ商品を含むチェックアウト同士で順序が逆にならないようにID順
		sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

		//全明細を先に検証する（キャッシュではなく最新の商品を読む）
		items := make([]model.Item, len(lines))
		for i, l := range lines {
			it, err := r.Items().FindByID(ctx, l.ItemID)
			if errors.Is(err, repo.ErrNotFound) {
				return ErrItemNotFound.WithMessage(fmt.Sprintf("item %d not found", l.ItemID))
			}
			if err != nil {
				return storeErr(err)
			}
			if it.Stock < l.Quantity {
				return insufficientStock(it.Name)
			}
			items[i] = it
		}

		//条件付き減算。検証後に他の注文が先に取った場合はここで落ちる
		for i, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ItemID, l.Quantity)
			if err != nil {
				return storeErr(err)
			}
			if !ok {
				return insufficientStock(items[i].Name)
			}
			applied = append(applied, stockMove{itemID: l.ItemID, qty: l.Quantity})
		}

		//購入時点の価格で明細を固定
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(lines))
		total := decimal.Zero
		for i, l := range lines {
			oi := model.OrderItem{
				ItemID:    l.ItemID,
				ItemName:  items[i].Name,
				Price:     items[i].Price,
				Quantity:  l.Quantity,
				CreatedAt: now,
			}
			orderItems = append(orderItems, oi)
			total = total.Add(oi.Subtotal())
		}

		order := model.Order{
			UserID:      userID,
			Status:      model.OrderStatusPending,
			TotalAmount: total,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		orderID, err := r.Orders().CreateWithItems(ctx, order, orderItems)
		if err != nil {
			return storeErr(err)
		}
		createdID = orderID
		order.ID = orderID

		//カートは消さずに明細だけ空にする
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return storeErr(err)
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		if compensate {
			u.compensate(ctx, userID, applied, createdID)
		}
		return OrderOutput{}, checkoutErr(ctx, err)
	}

	u.log.Info(ctx, "order placed", "order_id", out.ID, "user_id", userID, "total", out.TotalAmount.StringFixed(2), "lines", len(out.Items))
	u.afterStatusWrite(ctx, out)
	if err := u.events.OrderCreated(ctx, out); err != nil {
		u.log.Warn(ctx, "publish order created failed", "order_id", out.ID, "err", err)
	}

	return out, nil
}

// ロールバックできないストア用。減らした在庫を逆順で戻し、作りかけの注文を消す。
// タイムアウト後でも戻せるようにキャンセルは引き継がない
func (u *OrderUsecase) compensate(ctx context.Context, userID int64, applied []stockMove, orderID int64) {
	if len(applied) == 0 && orderID == 0 {
		return
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	err := u.tx.WithinTx(cctx, func(r repo.TxRepos) error {
		if orderID > 0 {
			if err := r.Orders().Delete(cctx, orderID); err != nil && !errors.Is(err, repo.ErrNotFound) {
				u.log.Error(cctx, "compensate order delete failed", "order_id", orderID, "err", err)
			}
		}
		for i := len(applied) - 1; i >= 0; i-- {
			m := applied[i]
			if err := r.Inventory().IncreaseStock(cctx, m.itemID, m.qty); err != nil {
				u.log.Error(cctx, "compensate restock failed", "item_id", m.itemID, "qty", m.qty, "err", err)
			}
		}
		return nil
	})
	if err != nil {
		u.log.Error(cctx, "compensate failed", "user_id", userID, "err", err)
		return
	}
	u.log.Warn(cctx, "checkout compensated", "user_id", userID, "restocked_lines", len(applied))
}

// 業務エラーはそのまま、期限切れ・キャンセルはTransient
func checkoutErr(ctx context.Context, err error) error {
	if ae, ok := AsAppError(err); ok && ae.Kind != KindTransient {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return ErrCheckoutTimeout.Wrap(err)
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	return storeErr(err)
}

// 書けなかったら古い値を残さないように消す
func (u *OrderUsecase) afterStatusWrite(ctx context.Context, o OrderOutput) {
	err := u.cache.Set(ctx, o.UserID, o.ID, o.Status)
	if err == nil {
		return
	}
	u.log.Warn(ctx, "status cache set failed", "order_id", o.ID, "err", err)
	if err := u.cache.Delete(ctx, o.UserID, o.ID); err != nil {
		u.log.Error(ctx, "status cache invalidate failed", "order_id", o.ID, "err", err)
	}
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, ErrMissingToken
	}
	if page < 1 || limit < 1 || limit > 100 {
		return []OrderOutput{}, ErrInvalidPagination
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return storeErr(err)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return storeErr(err)
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrMissingToken
	}
	if orderID <= 0 {
		return OrderOutput{}, ErrInvalidInput.WithMessage("invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := findOwnedOrder(ctx, r, orderID, userID, false)
		if err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeErr(err)
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// キャッシュ優先でステータスだけ返す
func (u *OrderUsecase) GetMyOrderStatus(ctx context.Context, userID int64, orderID int64) (OrderStatusOutput, error) {
	if userID <= 0 {
		return OrderStatusOutput{}, ErrMissingToken
	}
	if orderID <= 0 {
		return OrderStatusOutput{}, ErrInvalidInput.WithMessage("invalid id")
	}

	status, found, err := u.cache.Get(ctx, userID, orderID)
	if err != nil {
		u.log.Warn(ctx, "status cache get failed", "order_id", orderID, "err", err)
	}
	if err == nil && found {
		return OrderStatusOutput{OrderID: orderID, Status: status}, nil
	}

	var o model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var ferr error
		o, ferr = findOwnedOrder(ctx, r, orderID, userID, false)
		return ferr
	})
	if err != nil {
		return OrderStatusOutput{}, err
	}

	//更新と競合しても新しい値を上書きしない
	if err := u.cache.SetIfAbsent(ctx, userID, orderID, string(o.Status)); err != nil {
		u.log.Warn(ctx, "status cache fill failed", "order_id", orderID, "err", err)
	}
	return OrderStatusOutput{OrderID: orderID, Status: string(o.Status)}, nil
}

// 他人の注文は「存在しない扱い」にする。adminは全件見える
func findOwnedOrder(ctx context.Context, r repo.TxRepos, orderID int64, userID int64, isAdmin bool) (model.Order, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, storeErr(err)
	}
	if o.UserID != userID && !isAdmin {
		return model.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemID:   it.ItemID,
			Name:     it.ItemName,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      strings.TrimSpace(string(o.Status)),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       outItems,
	}
}
