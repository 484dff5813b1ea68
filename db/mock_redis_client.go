package db

import (
	"context"
	"path"
	"sync"
	"time"
)

type mockEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MockRedisClient simulates the TTL-aware Redis client for testing.
// Time can be controlled through NowFn so expiry is testable without
// sleeping.
type MockRedisClient struct {
	data    map[string]mockEntry
	mu      sync.RWMutex
	context context.Context

	// NowFn supplies the clock used for expiry checks. Defaults to time.Now.
	NowFn func() time.Time
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]mockEntry),
		context: ctx,
		NowFn:   time.Now,
	}
}

// Get retrieves a value, treating expired entries as absent.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, exists := m.data[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	if !entry.expiresAt.IsZero() && !m.NowFn().Before(entry.expiresAt) {
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

// SetWithTTL stores a value and resets its expiry clock.
func (m *MockRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.NowFn().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Keys returns unexpired keys matching a glob pattern.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && !m.NowFn().Before(entry.expiresAt) {
			continue
		}
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Del removes a key.
func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// GetContext returns the mock client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a reachable Redis.
func (m *MockRedisClient) Ping() error {
	return nil
}
