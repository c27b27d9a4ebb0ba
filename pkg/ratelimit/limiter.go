// Package ratelimit provides fixed-window request limiting with Redis or
// in-memory storage.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes the outcome of a limiter check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter. Implementations must be safe for
// concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// =============================================================================
// Redis fixed-window limiter
// =============================================================================

// RedisLimiter counts requests per key in Redis, one counter per window.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// Allow increments the counter for the current window and checks the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	windowStart := time.Now().Truncate(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	count := int(incr.Val())
	result := &Result{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: l.limit - count,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	if !result.Allowed {
		result.RetryAfter = time.Until(windowStart.Add(l.window))
	}
	return result, nil
}

// =============================================================================
// In-memory fixed-window limiter
// =============================================================================

// MemoryLimiter is the in-process fallback used when Redis is not
// configured. Counters are swept by a background goroutine until Close is
// called.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	limit   int
	window  time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// NewMemoryLimiter creates an in-memory limiter and starts its sweeper.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.done:
				return
			}
		}
	}()

	return l
}

// Close stops the background sweeper. Safe to call more than once; the
// limiter itself keeps working after Close.
func (l *MemoryLimiter) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *MemoryLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, entry := range l.entries {
		if now.After(entry.expiresAt) {
			delete(l.entries, key)
		}
	}
}

// Allow counts a request against the key's current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.expiresAt) {
		l.entries[key] = &memoryEntry{count: 1, expiresAt: now.Add(l.window)}
		return &Result{Allowed: true, Limit: l.limit, Remaining: l.limit - 1}, nil
	}

	entry.count++
	result := &Result{
		Allowed:   entry.count <= l.limit,
		Limit:     l.limit,
		Remaining: l.limit - entry.count,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	if !result.Allowed {
		result.RetryAfter = entry.expiresAt.Sub(now)
	}
	return result, nil
}
