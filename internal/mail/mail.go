package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"codeberg.org/clickquest/server/internal/config"
	"github.com/domodwyer/mailyak/v3"
)

// Mailer sends transactional emails over SMTP.
// All sends are best-effort from the caller's perspective: a failed
// dispatch must never roll back the identity mutation that triggered it.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// creates a new Mailer from SMTP settings
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// sends the email verification code
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(`
		<h1>Verify your email address</h1>
		<p>Thanks for signing up. Enter the following verification code when prompted:</p>
		<p style="font-size:36px;font-weight:bold">%s</p>
		<p>The code is valid for 24 hours. If you didn't create an account, you can ignore this message.</p>
	`, code)

	return m.send(ctx, email, "Verify your email address", body)
}

// sends the post-verification welcome message
func (m *Mailer) SendWelcomeEmail(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(`
		<h1>Welcome, %s!</h1>
		<p>Your email address has been verified and your account is ready to use.</p>
	`, name)

	return m.send(ctx, email, "Welcome!", body)
}

// sends the password reset link
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, resetURL, name string) error {
	body := fmt.Sprintf(`
		<h1>Reset your password</h1>
		<p>Hi %s, we received a request to reset your password. Click the link below to choose a new one:</p>
		<p><a href="%s">Reset password</a></p>
		<p>The link is valid for 1 hour. If you didn't request a reset, you can ignore this message.</p>
	`, name, resetURL)

	return m.send(ctx, email, "Reset your password", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	mail := mailyak.New(fmt.Sprintf("%s:%d", m.host, m.port),
		smtp.PlainAuth("", m.username, m.password, m.host))

	mail.To(to)
	mail.From(m.from)
	mail.Subject(subject)
	mail.HTML().Set(htmlBody)

	// mailyak has no context support; guard the send with the caller's deadline
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send %q email: %w", subject, err)
		}
	}

	return nil
}
