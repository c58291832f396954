package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is the cache used by repositories. Implementations are best-effort:
// a backend failure is logged and reported as a miss, never returned to the
// caller.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// Redis is a Store backed by a Redis server.
type Redis struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedis connects to the Redis server at url and verifies the connection
// with a ping.
func NewRedis(ctx context.Context, url string, log zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: client, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (r *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Int("keys", len(keys)).Msg("cache delete failed")
	}
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop is a Store that caches nothing. It serves as the store when no
// Redis URL is configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}

func (Noop) Delete(ctx context.Context, keys ...string) {}
