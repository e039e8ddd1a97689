// Package mail provides the SMTP implementation of the Mailer domain service.
package mail

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"

	"aevum/config"
	"aevum/internal/domain/service"
	"aevum/internal/errors"
)

// gomailMailer sends transactional mail over SMTP using gomail.
type gomailMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// noopMailer is used when SMTP is not configured, so development
// environments work without a mail server.
type noopMailer struct {
	logger *slog.Logger
}

// NewMailer creates a Mailer from config. Without SMTP settings it
// returns a no-op implementation that only logs.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return &noopMailer{logger: logger}
	}
	return &gomailMailer{
		dialer: gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		from:   cfg.Mail.From,
		logger: logger,
	}
}

func (m *gomailMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	m.logger.InfoContext(ctx, "email sent", slog.String("to", to), slog.String("subject", subject))

	return nil
}

func (m *noopMailer) Send(ctx context.Context, to, subject, _ string) error {
	m.logger.InfoContext(ctx, "mail disabled, skipping email",
		slog.String("to", to),
		slog.String("subject", subject))

	return nil
}
