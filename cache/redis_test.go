package cache

import (
	"context"
	"testing"
	"time"

	"admission-portal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCounter(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCounter(client), mr
}

func TestCountMissingKeyIsZero(t *testing.T) {
	counter, _ := newTestCounter(t)
	n, err := counter.Count(context.Background(), "otp:email:alice@x.com")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestIncrementSetsWindow(t *testing.T) {
	counter, mr := newTestCounter(t)
	ctx := context.Background()
	key := "otp:phone:5551234"

	for i := 1; i <= 3; i++ {
		n, err := counter.Increment(ctx, key, time.Hour)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if n != int64(i) {
			t.Fatalf("increment #%d = %d", i, n)
		}
	}

	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	n, err := counter.Count(ctx, key)
	if err != nil || n != 3 {
		t.Fatalf("count = %d, %v; want 3", n, err)
	}

	mr.FastForward(time.Hour + time.Second)

	n, err = counter.Count(ctx, key)
	if err != nil || n != 0 {
		t.Fatalf("count after window = %d, %v; want 0", n, err)
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	client.Close()

	if _, err := NewRedisClient(config.RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
