// internal/service/email/mailer.go
package email

import (
	"fmt"

	"go.uber.org/zap"
)

// Mailer builds and sends the auth notification emails. Every send is
// asynchronous and best-effort: auth flows never fail on mail trouble.
type Mailer struct {
	sender  *Sender
	logger  *zap.Logger
	baseURL string
}

func NewMailer(sender *Sender, logger *zap.Logger, baseURL string) *Mailer {
	return &Mailer{
		sender:  sender,
		logger:  logger,
		baseURL: baseURL,
	}
}

func (m *Mailer) verificationEmail(name, token string) (string, string) {
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", m.baseURL, token)

	subject := "Verify Your Email - Aegis"
	body := fmt.Sprintf(`
		<h2>Welcome to Aegis!</h2>
		<p>Hello %s,</p>
		<p>Thank you for signing up! Please verify your email address to get started.</p>
		<p><a href="%s" class="button">Verify Email</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p><a href="%s">%s</a></p>
		<p><strong>This link will expire in 24 hours.</strong></p>
		<p>If you didn't create an account, you can safely ignore this email.</p>
	`, name, verifyURL, verifyURL, verifyURL)

	return subject, body
}

// SendVerificationEmail sends the email verification link asynchronously.
func (m *Mailer) SendVerificationEmail(to, name, token string) {
	go func() {
		subject, body := m.verificationEmail(name, token)
		if err := m.sender.Send(to, subject, body); err != nil {
			m.logger.Error("failed to send verification email",
				zap.String("email", to),
				zap.Error(err),
			)
			return
		}
		m.logger.Info("verification email sent", zap.String("email", to))
	}()
}

func (m *Mailer) passwordResetEmail(name, token string) (string, string) {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", m.baseURL, token)

	subject := "Password Reset Request - Aegis"
	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>Hello %s,</p>
		<p>We received a request to reset the password for your Aegis account.</p>
		<p><a href="%s" class="button">Reset Password</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p><a href="%s">%s</a></p>
		<p><strong>This link will expire in 1 hour.</strong></p>
		<p>If you didn't request this, please ignore this email.</p>
	`, name, resetURL, resetURL, resetURL)

	return subject, body
}

// SendPasswordResetEmail sends the reset link asynchronously.
func (m *Mailer) SendPasswordResetEmail(to, name, token string) {
	go func() {
		subject, body := m.passwordResetEmail(name, token)
		if err := m.sender.Send(to, subject, body); err != nil {
			m.logger.Error("failed to send password reset email",
				zap.String("email", to),
				zap.Error(err),
			)
			return
		}
		m.logger.Info("password reset email sent", zap.String("email", to))
	}()
}
