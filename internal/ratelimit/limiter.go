// Package ratelimit guards the approval endpoint against credential guessing
// with a fixed-window counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts attempts per key within a fixed window. A nil client
// disables limiting (every attempt is allowed), mirroring how the optional
// Redis dependency is wired everywhere else.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// New builds a limiter. client may be nil.
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow records one attempt for key and reports whether it is within the
// limit. Redis failures fail open: moderation must keep working when the
// limiter's backend is down, so the error is returned for logging only.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	bucket := fmt.Sprintf("taproom:approve:%s", key)
	n, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return true, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, bucket, l.window).Err(); err != nil {
			return true, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}
