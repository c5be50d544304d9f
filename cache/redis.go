package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-order-api/service"

	"github.com/redis/go-redis/v9"
)

// RedisStatusCache keeps recent order status reads in Redis so customers polling
// their order don't hit the database on every request.
type RedisStatusCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{Client: client, TTL: ttl}
}

// Connect dials Redis and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisStatusCache) StatusKey(orderID string) string {
	return "order:status:" + orderID
}

func (c *RedisStatusCache) Get(ctx context.Context, orderID string) (*service.OrderStatusView, bool, error) {
	raw, err := c.Client.Get(ctx, c.StatusKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var view service.OrderStatusView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, fmt.Errorf("decode cached status: %w", err)
	}
	return &view, true, nil
}

// Add stores view unless the key already holds a value.
func (c *RedisStatusCache) Add(ctx context.Context, view *service.OrderStatusView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.Client.SetNX(ctx, c.StatusKey(view.ID), payload, c.TTL).Err()
}

func (c *RedisStatusCache) Set(ctx context.Context, view *service.OrderStatusView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.StatusKey(view.ID), payload, c.TTL).Err()
}

func (c *RedisStatusCache) Invalidate(ctx context.Context, orderID string) error {
	return c.Client.Del(ctx, c.StatusKey(orderID)).Err()
}
