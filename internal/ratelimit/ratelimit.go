package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per client in fixed windows stored in Redis, so
// every calculator instance behind a load balancer shares the same budget.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int           // Requests allowed per window
	window time.Duration // Window length
	now    func() time.Time
}

// NewLimiter creates a limiter allowing limit requests per minute per key
func NewLimiter(client *redis.Client, limit int) *Limiter {
	return &Limiter{
		client: client,
		prefix: "handicap:ratelimit",
		limit:  limit,
		window: time.Minute,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// Remaining returns how many requests key has left in the current window
func (l *Limiter) Remaining(ctx context.Context, key string) (int, error) {
	used, err := l.client.Get(ctx, l.windowKey(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return l.limit, nil
		}
		return 0, fmt.Errorf("failed to get request count: %w", err)
	}

	if used >= l.limit {
		return 0, nil
	}
	return l.limit - used, nil
}

// Limit returns the number of requests allowed per window
func (l *Limiter) Limit() int {
	return l.limit
}

// windowKey buckets key into the current window
func (l *Limiter) windowKey(key string) string {
	bucket := l.now().Truncate(l.window).Unix()
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}
