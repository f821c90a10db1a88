// Package cache keeps short-lived order status lookups in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// order_status:{user_id}:{order_id} -> status
const KeyOrderStatus = "order_status:%d:%d"

var TTLStatusCache = 5 * time.Minute

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// 起動時の疎通確認
func Ping(ctx context.Context, rdb redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// usecase.OrderStatusCache のRedis実装
type OrderStatusCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewOrderStatusCache(rdb redis.UniversalClient) *OrderStatusCache {
	return &OrderStatusCache{rdb: rdb, ttl: TTLStatusCache}
}

func statusKey(userID, orderID int64) string {
	return fmt.Sprintf(KeyOrderStatus, userID, orderID)
}

func (c *OrderStatusCache) Set(ctx context.Context, userID int64, orderID int64, status string) error {
	return c.rdb.Set(ctx, statusKey(userID, orderID), status, c.ttl).Err()
}

func (c *OrderStatusCache) SetIfAbsent(ctx context.Context, userID int64, orderID int64, status string) error {
	return c.rdb.SetNX(ctx, statusKey(userID, orderID), status, c.ttl).Err()
}

func (c *OrderStatusCache) Delete(ctx context.Context, userID int64, orderID int64) error {
	return c.rdb.Del(ctx, statusKey(userID, orderID)).Err()
}

func (c *OrderStatusCache) Get(ctx context.Context, userID int64, orderID int64) (string, bool, error) {
	v, err := c.rdb.Get(ctx, statusKey(userID, orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
