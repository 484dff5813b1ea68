package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when a key was never set or its TTL
// has elapsed. Expired values are never returned.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the time-expiring key-value operations the cache
// layer is built on.
type RedisClient interface {
	Get(key string) (string, error)
	SetWithTTL(key, value string, ttl time.Duration) error
	Keys(pattern string) ([]string, error)
	Del(key string) error
	GetContext() context.Context
	Ping() error
}
