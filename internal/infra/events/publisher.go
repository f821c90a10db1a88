package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/usecase"
)

type publisher interface {
	Publish(topic string, key, value []byte) error
}

// usecase.OrderEventPublisher のKafka実装
type OrderPublisher struct {
	p      publisher
	prefix string
	now    func() time.Time
}

// prefixは環境ごとのトピック名の頭（"staging." など）
func NewOrderPublisher(p publisher, topicPrefix string) *OrderPublisher {
	return &OrderPublisher{p: p, prefix: topicPrefix, now: time.Now}
}

func (o *OrderPublisher) OrderCreated(_ context.Context, out usecase.OrderOutput) error {
	lines := make([]OrderLine, 0, len(out.Items))
	for _, it := range out.Items {
		lines = append(lines, OrderLine{ItemID: it.ItemID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	return o.send(TopicOrderCreated, EventOrderCreated, out.ID, OrderCreatedPayload{
		OrderID:     out.ID,
		UserID:      out.UserID,
		Status:      out.Status,
		TotalAmount: out.TotalAmount,
		Items:       lines,
	})
}

func (o *OrderPublisher) OrderStatusChanged(_ context.Context, out usecase.OrderOutput, from string) error {
	return o.send(TopicOrderStatusChanged, EventOrderStatusChanged, out.ID, OrderStatusChangedPayload{
		OrderID: out.ID,
		UserID:  out.UserID,
		From:    from,
		To:      out.Status,
	})
}

func (o *OrderPublisher) send(topic, eventType string, orderID int64, payload any) error {
	env, err := NewEnvelope(eventType, orderID, payload, o.now())
	if err != nil {
		return err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return o.p.Publish(o.prefix+topic, PartitionKey(orderID), b)
}
