// Package service implements the submission pipeline shared by every form
// kind: rate check, validation, token verification, composition, dispatch.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moversmove/backend/internal/domain"
	"moversmove/backend/internal/mail"
	"moversmove/backend/internal/monitoring"
	"moversmove/backend/internal/ratelimit"
	"moversmove/backend/internal/turnstile"
)

// Verifier checks a bot-protection token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) turnstile.Result
}

// Composer renders the notification email for a validated submission.
type Composer interface {
	Compose(sub domain.Submission) (*mail.Message, error)
}

// Dispatcher delivers a composed message.
type Dispatcher interface {
	Send(ctx context.Context, msg *mail.Message) error
}

// Receipt is returned to the client after a successful submission.
type Receipt struct {
	RequestID string
	Message   string
}

// Per-kind confirmation copy.
var confirmations = map[domain.FormKind]string{
	domain.KindContact: "Message sent successfully. We will get back to you within 24 hours.",
	domain.KindQuote:   "Quote request submitted successfully. We will get back to you within 24 hours.",
	domain.KindFAQ:     "Your question has been sent. We will get back to you within 24 hours.",
}

// SubmissionService runs the pipeline. One instance serves all three form
// kinds; the kind-specific parts (schema, template, subject) live in the
// submission type and the composer.
type SubmissionService struct {
	limiter    ratelimit.Limiter
	verifier   Verifier
	composer   Composer
	dispatcher Dispatcher
	metrics    *monitoring.Metrics
	log        *zap.Logger
}

// NewSubmissionService wires the pipeline stages together.
func NewSubmissionService(
	limiter ratelimit.Limiter,
	verifier Verifier,
	composer Composer,
	dispatcher Dispatcher,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		limiter:    limiter,
		verifier:   verifier,
		composer:   composer,
		dispatcher: dispatcher,
		metrics:    metrics,
		log:        log,
	}
}

// Submit runs the five stages in order. Each stage only runs after the
// previous one succeeded; the dispatcher is never invoked for a submission
// that failed validation or verification.
func (s *SubmissionService) Submit(ctx context.Context, sub domain.Submission, clientIP string) (*Receipt, error) {
	requestID := uuid.NewString()
	kind := string(sub.Kind())
	start := time.Now()

	log := s.log.With(
		zap.String("request_id", requestID),
		zap.String("kind", kind),
		zap.String("client_ip", clientIP),
	)
	log.Info("submission received")

	// Stage 1: rate check. Store failures deny the request.
	decision, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		log.Error("rate limit store unavailable", zap.Error(err))
		s.metrics.RecordSubmission(kind, monitoring.OutcomeError, time.Since(start))
		return nil, ErrLimiterUnavailable
	}
	if !decision.Allowed {
		log.Warn("rate limit exceeded", zap.Time("reset_at", decision.ResetAt))
		s.metrics.RecordRateLimitBlock(kind)
		s.metrics.RecordSubmission(kind, monitoring.OutcomeRateLimited, time.Since(start))
		return nil, ErrRateLimited
	}

	// Stage 2: structural validation.
	if fieldErrs := sub.Validate(); len(fieldErrs) > 0 {
		log.Info("validation failed", zap.Int("field_errors", len(fieldErrs)))
		s.metrics.RecordSubmission(kind, monitoring.OutcomeInvalid, time.Since(start))
		return nil, &ValidationError{Fields: fieldErrs}
	}

	// Stage 3: bot-protection check.
	result := s.verifier.Verify(ctx, sub.Token(), clientIP)
	if !result.Success {
		log.Warn("turnstile verification failed", zap.String("reason", result.Reason))
		s.metrics.RecordVerificationFailure(kind)
		s.metrics.RecordSubmission(kind, monitoring.OutcomeVerifyFailed, time.Since(start))
		return nil, &VerificationError{Reason: result.Reason}
	}

	// Stage 4: compose.
	msg, err := s.composer.Compose(sub)
	if err != nil {
		log.Error("failed to compose email", zap.Error(err))
		s.metrics.RecordSubmission(kind, monitoring.OutcomeError, time.Since(start))
		return nil, err
	}

	// Stage 5: dispatch. No retry; a failure is terminal for this attempt.
	if err := s.dispatcher.Send(ctx, msg); err != nil {
		log.Error("email dispatch failed", zap.Error(err))
		s.metrics.RecordDispatch(false)
		s.metrics.RecordSubmission(kind, monitoring.OutcomeDispatchFail, time.Since(start))
		return nil, ErrDispatchFailed
	}
	s.metrics.RecordDispatch(true)

	log.Info("submission accepted", zap.Duration("duration", time.Since(start)))
	s.metrics.RecordSubmission(kind, monitoring.OutcomeAccepted, time.Since(start))

	return &Receipt{
		RequestID: requestID,
		Message:   confirmations[sub.Kind()],
	}, nil
}
