package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moversmove/backend/internal/domain"
)

// Response is the envelope for every API reply. Success replies carry
// Message and RequestID; failures carry Error and, for validation failures,
// per-field Details.
type Response struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	Error     string              `json:"error,omitempty"`
	Details   []domain.FieldError `json:"details,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// Accepted reports a successfully processed submission (200).
func Accepted(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		RequestID: requestID,
	})
}

// BadRequest reports a client error (400).
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   msg,
	})
}

// ValidationFailed reports per-field validation errors (400).
func ValidationFailed(c *gin.Context, fields []domain.FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   "Invalid form data",
		Details: fields,
	})
}

// TooManyRequests reports an exhausted submission quota (429).
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Response{
		Success: false,
		Error:   "Too many requests. Please try again later.",
	})
}

// ServiceError reports a server-side failure (500).
func ServiceError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   msg,
	})
}
