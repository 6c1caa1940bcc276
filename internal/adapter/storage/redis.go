package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/pkg/retry"
	"github.com/redis/go-redis/v9"
)

var _ port.KVStorage = (*RedisKV)(nil)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// A RedisKV stores values as plain redis strings without expiration.
type RedisKV struct {
	client redisClient
}

// NewRedisKV connects to the redis server addressed by url
// and waits until it answers a ping.
func NewRedisKV(ctx context.Context, url string) (RedisKV, error) {
	const op = "RedisKV"
	log := slog.With("op", op)

	opt, err := redis.ParseURL(url)
	if err != nil {
		return RedisKV{}, fmt.Errorf("%s: invalid url: %w", op, err)
	}

	kv := RedisKV{redis.NewClient(opt)}
	err = retry.Do(ctx, retry.RetryConfig{
		MaxAttempts: pingAttempts,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}, func() error {
		return kv.client.Ping(ctx).Err()
	})
	if err != nil {
		_ = kv.client.Close()
		return RedisKV{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}
	log.Info("redis is available")
	return kv, nil
}

func (kv RedisKV) Get(ctx context.Context, key string) (string, error) {
	const op = "RedisKV.Get"

	value, err := kv.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w: %q", op, domain.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (kv RedisKV) Set(ctx context.Context, key, value string) error {
	const op = "RedisKV.Set"

	if err := kv.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (kv RedisKV) Close() {
	const op = "RedisKV.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")

	if err := kv.client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
