package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"moversmove/backend/internal/storage/redis"
)

// RedisLimiter counts submissions in Redis so the ceiling holds across
// service instances. The increment is a single atomic INCR; the window is the
// key's expiry.
type RedisLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	log      *zap.Logger
}

// NewRedisLimiter creates a limiter backed by the given Redis client.
func NewRedisLimiter(client *redis.Client, requests int, window time.Duration, log *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: requests,
		window:   window,
		log:      log,
	}
}

// Allow increments the identifier's counter and compares against the
// ceiling. INCR-then-compare is atomic at the store, so two concurrent
// requests cannot both take the last slot. Store errors fail closed.
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (Decision, error) {
	key := fmt.Sprintf("rate_limit:%s", identifier)

	count, err := l.client.Incr(ctx, key)
	if err != nil {
		l.log.Error("rate limit store error", zap.String("identifier", identifier), zap.Error(err))
		return Decision{Allowed: false}, ErrStoreUnavailable
	}

	// First hit in a window: the key has no expiry yet.
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window); err != nil {
			l.log.Error("failed to set rate limit expiry", zap.String("identifier", identifier), zap.Error(err))
			return Decision{Allowed: false}, ErrStoreUnavailable
		}
	}

	resetAt := time.Now().Add(l.window)
	if ttl, err := l.client.TTL(ctx, key); err == nil && ttl > 0 {
		resetAt = time.Now().Add(ttl)
	}

	if count > int64(l.requests) {
		return Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: l.requests - int(count),
		ResetAt:   resetAt,
	}, nil
}
