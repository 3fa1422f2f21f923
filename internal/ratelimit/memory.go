package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process fallback used when no Redis address is
// configured. Counters are process-local, so in a multi-instance deployment
// each instance enforces the ceiling independently.
type MemoryLimiter struct {
	mu       sync.Mutex
	records  map[string]*memoryRecord
	requests int
	window   time.Duration
	now      func() time.Time // swappable clock for tests
}

// NewMemoryLimiter creates a limiter admitting at most requests per
// identifier within window.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		records:  make(map[string]*memoryRecord),
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow checks and updates the counter for identifier. Expired entries are
// swept opportunistically whenever a new window starts, so the map does not
// grow without bound.
func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	rec, ok := l.records[identifier]
	if !ok || !now.Before(rec.resetAt) {
		l.sweepLocked(now)
		rec = &memoryRecord{count: 1, resetAt: now.Add(l.window)}
		l.records[identifier] = rec
		return Decision{Allowed: true, Remaining: l.requests - 1, ResetAt: rec.resetAt}, nil
	}

	if rec.count >= l.requests {
		return Decision{Allowed: false, Remaining: 0, ResetAt: rec.resetAt}, nil
	}

	rec.count++
	return Decision{Allowed: true, Remaining: l.requests - rec.count, ResetAt: rec.resetAt}, nil
}

// sweepLocked drops expired records. Caller holds the mutex.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for key, rec := range l.records {
		if !now.Before(rec.resetAt) {
			delete(l.records, key)
		}
	}
}
