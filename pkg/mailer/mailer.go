package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"jobtrackr/internal/config"
	"jobtrackr/internal/logger"
)

// Mailer delivers password-reset links out-of-band. Implementations must
// never log or persist the token embedded in resetURL.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Someone requested a password reset for this address.</p>"+
			"<p><a href=%q>Reset password</a></p>"+
			"<p>The link expires shortly. If this wasn't you, ignore this email.</p>",
		resetURL,
	))

	// gomail has no context support; bound the send so a slow relay cannot
	// hold the caller past its deadline.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send reset mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("reset mail send timed out: %w", ctx.Err())
	}
}

// Noop is used when no SMTP relay is configured. It only records that a
// delivery would have happened; the reset URL itself is not logged.
type Noop struct{}

func (Noop) SendPasswordReset(_ context.Context, to, _ string) error {
	logger.Debug("Mail delivery skipped, SMTP not configured",
		zap.String("to", to),
	)
	return nil
}
