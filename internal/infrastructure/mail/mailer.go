// Package mail implements the outbound mailer port. SMTP delivery goes
// through gomail; when no SMTP host is configured the log mailer writes the
// reset link to the application log instead, which is what development
// environments use.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

const resetSubject = "Your Password Reset Request"

func resetLink(host, token string) string {
	return fmt.Sprintf("http://%s/reset-password?token=%s", host, token)
}

func resetText(link string) string {
	return "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
		link + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"
}

func resetHTML(link string) string {
	return "<p>You are receiving this because you (or someone else) have requested the reset of the password for your account.</p>" +
		"<p>Please click on the following link, or paste this into your browser to complete the process:</p>" +
		fmt.Sprintf(`<p><a href="%s">%s</a></p>`, link, link) +
		"<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>"
}

// SMTPMailer sends password-reset email through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPMailer(host string, port int, username, password, from string, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, token, host string) bool {
	link := resetLink(host, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", resetText(link))
	msg.AddAlternative("text/html", resetHTML(link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send password reset email")
		return false
	}
	return true
}

// LogMailer writes the reset link to the log instead of sending email.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token, host string) bool {
	m.logger.Info().
		Str("to", to).
		Str("reset_link", resetLink(host, token)).
		Msg("password reset email (log transport)")
	return true
}
