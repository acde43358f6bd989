// Package notify delivers outbound mail such as the weekly shop report.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"github.com/appleshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Message is a plain-text email
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email messages
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPMailer implements Mailer over plain SMTP with optional auth
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from configuration
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}
}

// Send delivers the message. The context deadline is not honored by
// net/smtp itself, it only gates the call upfront.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Info("mail sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// NopMailer swallows messages. Used when mail is disabled in config.
type NopMailer struct{}

var _ Mailer = (*NopMailer)(nil)

// Send discards the message
func (NopMailer) Send(context.Context, *Message) error { return nil }

// RecordingMailer captures sent messages for tests
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []Message
}

var _ Mailer = (*RecordingMailer)(nil)

// Send records the message
func (m *RecordingMailer) Send(_ context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, *msg)
	return nil
}

// Sent returns a copy of the captured messages
func (m *RecordingMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}
