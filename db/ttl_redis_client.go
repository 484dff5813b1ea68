package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TTLRedisClient implements RedisClient on top of go-redis. Expiry is
// delegated to Redis itself via SET with expiration, so a Get after the
// TTL elapses observes redis.Nil and reports a miss.
type TTLRedisClient struct {
	client *redis.Client
	ctx    context.Context
	logger *zap.Logger
}

// NewTTLRedisClient wraps an initialized go-redis client.
func NewTTLRedisClient(ctx context.Context, client *redis.Client, logger *zap.Logger) *TTLRedisClient {
	return &TTLRedisClient{
		client: client,
		ctx:    ctx,
		logger: logger,
	}
}

// Get retrieves the value for a key, mapping redis.Nil to ErrKeyNotFound.
func (r *TTLRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// SetWithTTL overwrites the key and resets its expiry clock. A zero ttl
// stores the value without expiration.
func (r *TTLRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	if err := r.client.Set(r.ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Keys lists keys matching the given pattern.
func (r *TTLRedisClient) Keys(pattern string) ([]string, error) {
	keys, err := r.client.Keys(r.ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for pattern %s: %w", pattern, err)
	}
	return keys, nil
}

// Del removes a key.
func (r *TTLRedisClient) Del(key string) error {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (r *TTLRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *TTLRedisClient) Ping() error {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return err
	}
	r.logger.Debug("redis ping ok")
	return nil
}
