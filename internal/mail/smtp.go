package mail

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"moversmove/backend/internal/config"
)

// SMTPSender submits directly over SMTP with STARTTLS. It is the fallback
// path when the hosted API is not configured or fails.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender creates the SMTP provider.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Name identifies the provider in logs and metrics.
func (s *SMTPSender) Name() string { return "smtp" }

// Send builds a multipart/alternative message and submits it. The context
// deadline bounds the whole exchange; SendMail itself has no retry.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	fromAddr, err := envelopeAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}

	raw, err := buildMIME(msg)
	if err != nil {
		return fmt.Errorf("build mime message: %w", err)
	}

	var auth sasl.Client
	if s.cfg.User != "" {
		auth = sasl.NewPlainClient("", s.cfg.User, s.cfg.Password)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- gosmtp.SendMail(addr, auth, fromAddr, []string{msg.To}, strings.NewReader(raw))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send aborted: %w", ctx.Err())
	}
}

// envelopeAddress extracts the bare address from a display form like
// "Movers Move <no-reply@moversmove.ca>".
func envelopeAddress(from string) (string, error) {
	parsed, err := mail.ParseAddress(from)
	if err != nil {
		return "", err
	}
	return parsed.Address, nil
}

// buildMIME renders the message as multipart/alternative with a text part
// and an HTML part.
func buildMIME(msg *Message) (string, error) {
	var b strings.Builder
	var body strings.Builder

	writer := multipart.NewWriter(&body)

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return "", err
	}
	if _, err := textPart.Write([]byte(msg.Text)); err != nil {
		return "", err
	}

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return "", err
	}
	if _, err := htmlPart.Write([]byte(msg.HTML)); err != nil {
		return "", err
	}

	if err := writer.Close(); err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	b.WriteString("\r\n")
	b.WriteString(body.String())

	return b.String(), nil
}
