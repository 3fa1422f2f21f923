// Package ratelimit throttles form submissions per client identifier
// (normally the client IP) over a fixed window.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable reports that the backing store could not be reached.
// Callers must treat this as "not allowed": the limiter fails closed so a
// store outage never opens the gate to unlimited submissions.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Decision is the outcome of a single rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter admits or rejects a request for an identifier. Implementations
// must make the count-and-compare atomic: two concurrent requests for the
// same identifier may never both spend the last remaining slot.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (Decision, error)
}
