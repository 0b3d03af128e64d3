package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the relay settings for outbound mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Enabled short-circuits sends entirely; local/dev runs log instead of mailing.
	Enabled bool
}

// SMTPMailer delivers activation and reset mail over a configured relay.
// Delivery is best-effort by contract; callers absorb errors.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *slog.Logger
	sendFn func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger.With("module", "mail", "layer", "adapter"),
		sendFn: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendActivationMail(ctx context.Context, to, activationLink string) error {
	body := fmt.Sprintf("To activate your account please follow the link below:\r\n%s\r\n", activationLink)
	return m.send(ctx, to, "Account activation", body)
}

func (m *SMTPMailer) SendPasswordResetMail(ctx context.Context, to, resetLink string) error {
	body := fmt.Sprintf("To reset your password please follow the link below:\r\n%s\r\n\r\nThe link is valid for 15 minutes.\r\n", resetLink)
	return m.send(ctx, to, "Password reset", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if !m.cfg.Enabled {
		m.logger.InfoContext(ctx, "mail delivery disabled, skipping send",
			"operation", "send_mail",
			"outcome", "skipped",
			"subject", subject,
		)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.sendFn(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}
