package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admission-portal/config"
	"admission-portal/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Success("Connected to Redis at " + cfg.Addr)
	return rdb, nil
}

// Counter is a keyed counter whose entries expire after a window.
type Counter struct {
	client redis.UniversalClient
}

func NewCounter(client redis.UniversalClient) *Counter {
	return &Counter{client: client}
}

// Count returns the current value of key. A missing key counts as zero.
func (c *Counter) Count(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	}
	return n, nil
}

// Increment adds one to key and resets its expiry to window.
func (c *Counter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", key, err)
	}
	return incr.Val(), nil
}
