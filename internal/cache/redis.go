package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis backs PageCache with a shared Redis instance so every server process
// sees the same cached pages.
type Redis struct {
	client *redis.Client
}

var _ PageCache = (*Redis)(nil)

func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Redis) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
