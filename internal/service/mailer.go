package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Mailer delivers transactional mail to institutions. The default
// implementation only logs; a real SMTP sender plugs in behind the same
// interface without touching callers.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogMailer writes outgoing mail to the application log instead of
// delivering it. Used in development and when no mail provider is
// configured.
type LogMailer struct{}

// NewLogMailer constructs a LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// SendVerificationCode logs the code that would have been mailed.
func (m *LogMailer) SendVerificationCode(_ context.Context, email, code string) error {
	log.Info().
		Str("email", email).
		Str("code", code).
		Msg("verification code issued (mail delivery not configured)")
	return nil
}
