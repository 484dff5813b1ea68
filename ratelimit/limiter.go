// Package ratelimit gates inbound place requests per actor identity.
package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ActorLimiter allows a fixed number of requests per window for each
// actor. Token buckets sized to the window mean an actor who bursts the
// full allowance must wait for tokens to refill, matching the
// requests-per-rolling-window contract.
type ActorLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	logger  *zap.Logger
}

// NewActorLimiter creates a limiter allowing requests per window for each
// distinct actor.
func NewActorLimiter(requests int, window time.Duration, logger *zap.Logger) *ActorLimiter {
	return &ActorLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		logger:  logger,
	}
}

// getBucket retrieves or creates the bucket for an actor.
func (al *ActorLimiter) getBucket(actor string) *rate.Limiter {
	al.mu.Lock()
	defer al.mu.Unlock()

	if bucket, exists := al.buckets[actor]; exists {
		return bucket
	}
	bucket := rate.NewLimiter(al.limit, al.burst)
	al.buckets[actor] = bucket
	return bucket
}

// Allow reports whether the actor may proceed with one more request.
// It never blocks; a denied request is simply rejected.
func (al *ActorLimiter) Allow(actor string) bool {
	allowed := al.getBucket(actor).Allow()
	if !allowed {
		al.logger.Warn("rate limit exceeded", zap.String("actor", actor))
	}
	return allowed
}

// Reset clears all buckets (useful for testing).
func (al *ActorLimiter) Reset() {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.buckets = make(map[string]*rate.Limiter)
}
