package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAllow_WindowAllowance(t *testing.T) {
	limiter := NewActorLimiter(20, time.Minute, zap.NewNop())

	for i := 0; i < 20; i++ {
		if !limiter.Allow("alice") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("alice") {
		t.Error("21st request in the window should be rejected")
	}
}

func TestAllow_ActorsAreIndependent(t *testing.T) {
	limiter := NewActorLimiter(20, time.Minute, zap.NewNop())

	for i := 0; i < 20; i++ {
		limiter.Allow("alice")
	}
	if limiter.Allow("alice") {
		t.Fatal("alice should be exhausted")
	}
	if !limiter.Allow("bob") {
		t.Error("bob's allowance is separate from alice's")
	}
}

func TestAllow_TokensRefillOverTime(t *testing.T) {
	// 2 requests per 100ms keeps the test fast.
	limiter := NewActorLimiter(2, 100*time.Millisecond, zap.NewNop())

	if !limiter.Allow("alice") || !limiter.Allow("alice") {
		t.Fatal("initial allowance should be granted")
	}
	if limiter.Allow("alice") {
		t.Fatal("allowance should be exhausted")
	}

	time.Sleep(120 * time.Millisecond)
	if !limiter.Allow("alice") {
		t.Error("tokens should refill after the window passes")
	}
}

func TestReset(t *testing.T) {
	limiter := NewActorLimiter(1, time.Minute, zap.NewNop())

	limiter.Allow("alice")
	if limiter.Allow("alice") {
		t.Fatal("allowance should be exhausted")
	}

	limiter.Reset()
	if !limiter.Allow("alice") {
		t.Error("reset should restore the allowance")
	}
}
