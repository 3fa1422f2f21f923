// Package monitoring exposes prometheus metrics for the submission pipeline.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for submissions_total.
const (
	OutcomeAccepted     = "accepted"
	OutcomeRateLimited  = "rate_limited"
	OutcomeInvalid      = "invalid_input"
	OutcomeVerifyFailed = "verification_failed"
	OutcomeDispatchFail = "dispatch_failed"
	OutcomeError        = "error"
)

// Metrics holds the pipeline's prometheus collectors.
type Metrics struct {
	SubmissionsTotal     *prometheus.CounterVec
	SubmissionDuration   *prometheus.HistogramVec
	RateLimitBlocks      *prometheus.CounterVec
	VerificationFailures *prometheus.CounterVec
	DispatchTotal        *prometheus.CounterVec
}

// NewMetrics registers the collectors with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moversmove_submissions_total",
			Help: "Form submissions by kind and outcome",
		}, []string{"kind", "outcome"}),
		SubmissionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moversmove_submission_duration_seconds",
			Help:    "End-to-end submission handling time by kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		RateLimitBlocks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moversmove_rate_limit_blocks_total",
			Help: "Submissions rejected by the rate limiter",
		}, []string{"kind"}),
		VerificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moversmove_verification_failures_total",
			Help: "Submissions rejected by Turnstile verification",
		}, []string{"kind"}),
		DispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moversmove_email_dispatch_total",
			Help: "Email dispatch attempts by outcome",
		}, []string{"outcome"}),
	}
}

// RecordSubmission records one finished submission.
func (m *Metrics) RecordSubmission(kind, outcome string, duration time.Duration) {
	m.SubmissionsTotal.WithLabelValues(kind, outcome).Inc()
	m.SubmissionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordRateLimitBlock records a throttled submission.
func (m *Metrics) RecordRateLimitBlock(kind string) {
	m.RateLimitBlocks.WithLabelValues(kind).Inc()
}

// RecordVerificationFailure records a rejected Turnstile check.
func (m *Metrics) RecordVerificationFailure(kind string) {
	m.VerificationFailures.WithLabelValues(kind).Inc()
}

// RecordDispatch records one dispatch attempt.
func (m *Metrics) RecordDispatch(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.DispatchTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
