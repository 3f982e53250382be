// Package redis opens the Redis client used by the property cache.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr and pings it. An empty addr returns a nil client, which disables caching.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		slog.InfoContext(ctx, "Redis not configured, property cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Redis connection successful", "address", addr)
	return rdb, nil
}

// Pinger adapts a client to a context-only Ping.
func Pinger(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}
