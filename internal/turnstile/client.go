// Package turnstile verifies Cloudflare Turnstile tokens server-side.
package turnstile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"moversmove/backend/internal/config"
)

// BypassToken is accepted without a network call when the client was built
// for the development environment. It lets local frontend work proceed
// without a real widget; production builds never construct the bypass.
const BypassToken = "dev-mode-bypass-token"

// Tokens shorter than this cannot be real widget output; reject without
// spending a round trip.
const minTokenLength = 10

// Result is the outcome of a verification. Reason is user-safe and only set
// on failure.
type Result struct {
	Success bool
	Reason  string
}

// siteverifyRequest is the JSON body Cloudflare expects.
type siteverifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
	RemoteIP string `json:"remoteip,omitempty"`
}

// siteverifyResponse is the JSON body Cloudflare returns.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// User-safe messages per Cloudflare error code. Unmapped codes fall through
// to a generic failure message.
var errorCodeMessages = map[string]string{
	"missing-input-secret":   "Server configuration error",
	"invalid-input-secret":   "Server configuration error",
	"missing-input-response": "Missing verification token",
	"invalid-input-response": "Invalid verification token",
	"bad-request":            "Bad request format",
	"timeout-or-duplicate":   "Token expired or already used",
	"internal-error":         "Verification service error",
}

// Client calls the Turnstile siteverify endpoint.
type Client struct {
	secret      string
	verifyURL   string
	httpClient  *http.Client
	allowBypass bool
	log         *zap.Logger
}

// New creates a verification client. The bypass token is only honored when
// env is development.
func New(cfg *config.TurnstileConfig, env config.Environment, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secret:      cfg.Secret,
		verifyURL:   cfg.VerifyURL,
		httpClient:  &http.Client{Timeout: timeout},
		allowBypass: env == config.EnvDevelopment,
		log:         log,
	}
}

// Verify checks a client token against the siteverify endpoint. Transport
// failures and non-2xx responses come back as a user-safe "service
// unavailable" result, never as a raw error.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) Result {
	if c.allowBypass && token == BypassToken {
		c.log.Warn("turnstile verification bypassed in development mode")
		return Result{Success: true}
	}

	if len(token) < minTokenLength {
		return Result{Success: false, Reason: "Invalid token format"}
	}

	if c.secret == "" {
		c.log.Error("turnstile secret not configured")
		return Result{Success: false, Reason: "Server configuration error"}
	}

	body, err := json.Marshal(siteverifyRequest{
		Secret:   c.secret,
		Response: token,
		RemoteIP: remoteIP,
	})
	if err != nil {
		return Result{Success: false, Reason: "Verification service unavailable"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Reason: "Verification service unavailable"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("turnstile request failed", zap.Error(err))
		return Result{Success: false, Reason: "Verification service unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("turnstile returned non-2xx", zap.Int("status", resp.StatusCode))
		return Result{Success: false, Reason: "Verification service unavailable"}
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Error("failed to decode turnstile response", zap.Error(err))
		return Result{Success: false, Reason: "Verification service unavailable"}
	}

	if result.Success {
		return Result{Success: true}
	}

	codes := result.ErrorCodes
	if len(codes) == 0 {
		codes = []string{"unknown_error"}
	}

	messages := make([]string, 0, len(codes))
	for _, code := range codes {
		if msg, ok := errorCodeMessages[code]; ok {
			messages = append(messages, msg)
		} else {
			messages = append(messages, fmt.Sprintf("Verification failed: %s", code))
		}
	}

	c.log.Warn("turnstile verification rejected", zap.Strings("error_codes", codes))
	return Result{Success: false, Reason: strings.Join(messages, ", ")}
}
