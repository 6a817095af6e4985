// Package pinlimit counts failed order PIN attempts per customer in Redis.
package pinlimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Limiter struct {
	store       Store
	maxAttempts int
	window      time.Duration
}

func New(store Store, maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{store: store, maxAttempts: maxAttempts, window: window}
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func key(email string) string {
	return "pin_attempts:" + email
}

// Allowed reports whether email may try another PIN.
func (l *Limiter) Allowed(ctx context.Context, email string) (bool, error) {
	val, err := l.store.Get(ctx, key(email)).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read pin attempts: %w", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return false, fmt.Errorf("corrupt pin attempt counter: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Fail records a failed attempt. The window starts at the first failure.
func (l *Limiter) Fail(ctx context.Context, email string) error {
	n, err := l.store.Incr(ctx, key(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to count pin attempt: %w", err)
	}
	if n == 1 {
		if err := l.store.Expire(ctx, key(email), l.window).Err(); err != nil {
			return fmt.Errorf("failed to set pin attempt window: %w", err)
		}
	}
	return nil
}

func (l *Limiter) Reset(ctx context.Context, email string) error {
	return l.store.Del(ctx, key(email)).Err()
}
