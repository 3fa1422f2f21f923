package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultResendURL = "https://api.resend.com/emails"

// resendPayload is the JSON body for the Resend send-email endpoint.
type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendError struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// ResendSender delivers through the Resend transactional-email API. This is
// the primary provider when its key is configured.
type ResendSender struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

// NewResendSender creates the Resend provider.
func NewResendSender(apiKey string, log *zap.Logger) *ResendSender {
	return &ResendSender{
		apiKey:     apiKey,
		endpoint:   defaultResendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Name identifies the provider in logs and metrics.
func (s *ResendSender) Name() string { return "resend" }

// Send posts the message to the Resend API. Any non-2xx response is an
// error; the caller decides whether to fall back.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(resendPayload{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr resendError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Message != "" {
		s.log.Warn("resend rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Name),
		)
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("resend returned %d", resp.StatusCode)
}
