package mail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"moversmove/backend/internal/config"
)

// ErrNoSenderConfigured means the dispatcher was built with an empty sender
// chain. Outside development this is caught at startup.
var ErrNoSenderConfigured = errors.New("no email sender configured")

// Sender is one delivery provider.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *Message) error
}

// Dispatcher tries its senders in order and stops at the first success.
// There are no retries: a failed dispatch is terminal for that submission
// and the user is asked to resubmit.
type Dispatcher struct {
	senders []Sender
	log     *zap.Logger
}

// NewDispatcher builds the provider chain from configuration: Resend when
// its key is present, SMTP when a host is present, and the console sender
// only in development. An empty chain outside development is an error so a
// misconfigured production deployment fails at startup instead of silently
// logging mail into the void.
func NewDispatcher(cfg *config.Config, log *zap.Logger) (*Dispatcher, error) {
	var senders []Sender

	if cfg.Mail.ResendAPIKey != "" {
		senders = append(senders, NewResendSender(cfg.Mail.ResendAPIKey, log))
	}
	if cfg.Mail.SMTP.Host != "" {
		senders = append(senders, NewSMTPSender(cfg.Mail.SMTP))
	}
	if len(senders) == 0 {
		if !cfg.IsDevelopment() {
			return nil, ErrNoSenderConfigured
		}
		senders = append(senders, NewConsoleSender(log))
	}

	return &Dispatcher{senders: senders, log: log}, nil
}

// NewDispatcherWithSenders builds a dispatcher over an explicit chain.
func NewDispatcherWithSenders(log *zap.Logger, senders ...Sender) *Dispatcher {
	return &Dispatcher{senders: senders, log: log}
}

// Send walks the provider chain. The returned error is the last provider's
// failure; earlier failures are logged.
func (d *Dispatcher) Send(ctx context.Context, msg *Message) error {
	if len(d.senders) == 0 {
		return ErrNoSenderConfigured
	}

	var lastErr error
	for _, sender := range d.senders {
		err := sender.Send(ctx, msg)
		if err == nil {
			d.log.Info("email dispatched",
				zap.String("provider", sender.Name()),
				zap.String("subject", msg.Subject),
			)
			return nil
		}
		lastErr = err
		d.log.Warn("email provider failed",
			zap.String("provider", sender.Name()),
			zap.Error(err),
		)
	}

	return fmt.Errorf("all email providers failed: %w", lastErr)
}

// ConsoleSender logs the would-be message instead of delivering it. Only
// wired in development.
type ConsoleSender struct {
	log *zap.Logger
}

// NewConsoleSender creates the development sender.
func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

// Name identifies the provider in logs and metrics.
func (s *ConsoleSender) Name() string { return "console" }

// Send logs the message and reports success.
func (s *ConsoleSender) Send(_ context.Context, msg *Message) error {
	s.log.Info("email (dev mode, not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
