package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 操作したユーザー
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

type UpdateOrderStatusInput struct {
	Status string
}

// ステータス変更。監査ログは同じTxで書く
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, ErrMissingToken
	}
	if orderID <= 0 {
		return OrderOutput{}, ErrInvalidInput.WithMessage("invalid id")
	}

	next := model.OrderStatus(strings.TrimSpace(in.Status))
	if !next.Valid() {
		return OrderOutput{}, ErrInvalidStatus
	}

	var (
		out     OrderOutput
		from    model.OrderStatus
		changed bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := findOwnedOrder(ctx, r, orderID, actor.UserID, actor.IsAdmin())
		if err != nil {
			return err
		}
		from = o.Status

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeErr(err)
		}

		//同じステータスなら書き込まない
		if o.Status == next {
			out = toOrderOutput(o, items)
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrOrderNotFound
			}
			return storeErr(err)
		}

		now := time.Now()
		beforeJSON, err := statusJSON(from)
		if err != nil {
			return ErrInternal.Wrap(err)
		}
		afterJSON, err := statusJSON(next)
		if err != nil {
			return ErrInternal.Wrap(err)
		}

		//「誰が」「どの注文を」「どう変えたか」
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    now,
		}); err != nil {
			return storeErr(err)
		}

		o.Status = next
		o.UpdatedAt = now
		out = toOrderOutput(o, items)
		changed = true
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	if !changed {
		return out, nil
	}

	u.log.Info(ctx, "order status updated", "order_id", orderID, "actor_id", actor.UserID, "from", string(from), "to", out.Status)
	u.afterStatusWrite(ctx, out)
	if err := u.events.OrderStatusChanged(ctx, out, string(from)); err != nil {
		u.log.Warn(ctx, "publish status changed failed", "order_id", orderID, "err", err)
	}
	return out, nil
}

// 監査ログの before/after
func statusJSON(s model.OrderStatus) (string, error) {
	b, err := json.Marshal(map[string]string{"status": string(s)})
	if err != nil {
		return "", fmt.Errorf("marshal status: %w", err)
	}
	return string(b), nil
}
