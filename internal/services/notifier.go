package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Notifier delivers account emails. Delivery is best-effort: callers log
// failures and keep going.
type Notifier interface {
	SendAccountProvisioned(ctx context.Context, to, username, temporaryPassword string) error
}

// ===== SMTP NOTIFIER =====

type SMTPNotifierConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends plain-text mail through a configured relay.
type SMTPNotifier struct {
	config SMTPNotifierConfig
	logger *slog.Logger
}

func NewSMTPNotifier(config SMTPNotifierConfig, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		logger: logger,
	}
}

func (n *SMTPNotifier) SendAccountProvisioned(ctx context.Context, to, username, temporaryPassword string) error {
	subject := "Your student account"
	body := fmt.Sprintf(
		"Hello,\n\n"+
			"A student account has been created for you.\n\n"+
			"Username: %s\n"+
			"Temporary password: %s\n\n"+
			"Your account is not active yet. Please activate it by setting a new password of your own.\n",
		username, temporaryPassword)

	return n.send(to, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)

	var msg strings.Builder
	msg.WriteString("From: " + n.config.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if n.config.Username != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	}

	if err := smtp.SendMail(addr, auth, n.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	n.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// ===== NOOP NOTIFIER =====

// NoopNotifier is used when no SMTP relay is configured. It logs what would
// have been sent so local environments still show the flow.
type NoopNotifier struct {
	logger *slog.Logger
}

func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) SendAccountProvisioned(ctx context.Context, to, username, temporaryPassword string) error {
	n.logger.Info("email delivery skipped, no SMTP relay configured", "to", to, "username", username)
	return nil
}
