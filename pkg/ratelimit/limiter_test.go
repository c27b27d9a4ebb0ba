package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
		if result.Remaining != 3-(i+1) {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 3-(i+1), result.Remaining)
		}
	}

	result, err := limiter.Allow(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Error("request over limit should be denied")
	}
	if result.RetryAfter <= 0 {
		t.Error("denied request should carry a retry-after duration")
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if r, _ := limiter.Allow(ctx, "a"); !r.Allowed {
		t.Error("first request for key a should be allowed")
	}
	if r, _ := limiter.Allow(ctx, "b"); !r.Allowed {
		t.Error("first request for key b should be allowed")
	}
	if r, _ := limiter.Allow(ctx, "a"); r.Allowed {
		t.Error("second request for key a should be denied")
	}
}

func TestMemoryLimiterClose(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	limiter.Close()
	limiter.Close()

	// Counting still works after the sweeper is stopped.
	if r, _ := limiter.Allow(ctx, "a"); !r.Allowed {
		t.Error("first request should be allowed after Close")
	}
	if r, _ := limiter.Allow(ctx, "a"); r.Allowed {
		t.Error("second request should be denied after Close")
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	if r, _ := limiter.Allow(ctx, "a"); !r.Allowed {
		t.Fatal("first request should be allowed")
	}
	if r, _ := limiter.Allow(ctx, "a"); r.Allowed {
		t.Fatal("second request in same window should be denied")
	}

	time.Sleep(20 * time.Millisecond)

	if r, _ := limiter.Allow(ctx, "a"); !r.Allowed {
		t.Error("request after window expiry should be allowed")
	}
}
