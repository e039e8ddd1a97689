package service

import "context"

// Mailer defines the interface for sending transactional email.
type Mailer interface {
	// Send delivers a single plain-text email.
	Send(ctx context.Context, to, subject, body string) error
}
