package service

import (
	"errors"
	"fmt"

	"moversmove/backend/internal/domain"
)

// Expected pipeline outcomes. The HTTP layer maps each to a status code and
// a user-safe message; anything else is an unexpected error and becomes a
// generic 500.
var (
	// ErrRateLimited means the identifier exhausted its submission window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrLimiterUnavailable means the rate-limit store could not be
	// reached. The pipeline fails closed on it.
	ErrLimiterUnavailable = errors.New("rate limiting service unavailable")

	// ErrDispatchFailed means every configured email provider failed.
	ErrDispatchFailed = errors.New("failed to send email")
)

// ValidationError carries the per-field messages for an invalid submission.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid form data (%d field errors)", len(e.Fields))
}

// VerificationError means the Turnstile check rejected the submission.
// Reason is user-safe.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("security verification failed: %s", e.Reason)
}
