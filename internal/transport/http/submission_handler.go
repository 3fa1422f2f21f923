package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moversmove/backend/internal/domain"
	"moversmove/backend/internal/service"
)

// SubmissionHandler exposes the three lead forms over HTTP.
type SubmissionHandler struct {
	submissions *service.SubmissionService
	log         *zap.Logger
}

// NewSubmissionHandler creates the form endpoints handler.
func NewSubmissionHandler(submissions *service.SubmissionService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, log: log}
}

// Contact handles POST /api/contact.
func (h *SubmissionHandler) Contact(c *gin.Context) {
	var sub domain.ContactSubmission
	if err := c.ShouldBind(&sub); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	h.submit(c, &sub)
}

// Quote handles POST /api/quote.
func (h *SubmissionHandler) Quote(c *gin.Context) {
	var sub domain.QuoteSubmission
	if err := c.ShouldBind(&sub); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	h.submit(c, &sub)
}

// FAQ handles POST /api/faq-question.
func (h *SubmissionHandler) FAQ(c *gin.Context) {
	var sub domain.FAQSubmission
	if err := c.ShouldBind(&sub); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	h.submit(c, &sub)
}

// submit runs the pipeline and maps its outcomes onto status codes. The
// body-level messages stay user-safe; details live in the logs.
func (h *SubmissionHandler) submit(c *gin.Context, sub domain.Submission) {
	receipt, err := h.submissions.Submit(c.Request.Context(), sub, c.ClientIP())
	if err == nil {
		Accepted(c, receipt.Message, receipt.RequestID)
		return
	}

	var validationErr *service.ValidationError
	var verificationErr *service.VerificationError
	switch {
	case errors.Is(err, service.ErrRateLimited):
		TooManyRequests(c)
	case errors.Is(err, service.ErrLimiterUnavailable):
		ServiceError(c, "Rate limiting service unavailable. Please try again later.")
	case errors.As(err, &validationErr):
		ValidationFailed(c, validationErr.Fields)
	case errors.As(err, &verificationErr):
		BadRequest(c, verificationErr.Reason)
	case errors.Is(err, service.ErrDispatchFailed):
		ServiceError(c, "Failed to send message. Please try again later.")
	default:
		h.log.Error("unexpected submission error", zap.Error(err))
		ServiceError(c, "An unexpected error occurred. Please try again later.")
	}
}
