package usecase

import "context"

// 注文イベントの送信先（Kafkaなど）。失敗しても注文自体は確定済み
type OrderEventPublisher interface {
	OrderCreated(ctx context.Context, o OrderOutput) error
	OrderStatusChanged(ctx context.Context, o OrderOutput, from string) error
}

// 注文ステータスのキャッシュ（Redisなど）
type OrderStatusCache interface {
	Set(ctx context.Context, userID int64, orderID int64, status string) error
	// 読み取りミス時の補充用。既に値があれば上書きしない
	SetIfAbsent(ctx context.Context, userID int64, orderID int64, status string) error
	Get(ctx context.Context, userID int64, orderID int64) (status string, found bool, err error)
	Delete(ctx context.Context, userID int64, orderID int64) error
}

// 設定が無いとき用
type NopOrderEvents struct{}

func (NopOrderEvents) OrderCreated(context.Context, OrderOutput) error               { return nil }
func (NopOrderEvents) OrderStatusChanged(context.Context, OrderOutput, string) error { return nil }

type NopStatusCache struct{}

func (NopStatusCache) Set(context.Context, int64, int64, string) error         { return nil }
func (NopStatusCache) SetIfAbsent(context.Context, int64, int64, string) error { return nil }
func (NopStatusCache) Delete(context.Context, int64, int64) error              { return nil }
func (NopStatusCache) Get(context.Context, int64, int64) (string, bool, error) {
	return "", false, nil
}
