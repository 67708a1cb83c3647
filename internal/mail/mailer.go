package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer delivers the account emails. Implementations must not retain ctx.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
	SendVerification(ctx context.Context, to, link string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// New returns an SMTP mailer when a host is configured and a console mailer otherwise.
func New(cfg SMTPConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewConsoleMailer(log)
	}
	return NewSMTPMailer(cfg)
}

type ConsoleMailer struct {
	log *zap.Logger
}

func NewConsoleMailer(log *zap.Logger) *ConsoleMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) SendPasswordReset(_ context.Context, to, link string) error {
	m.log.Info("dev mail: password reset", zap.String("to", to), zap.String("link", link))
	return nil
}

func (m *ConsoleMailer) SendVerification(_ context.Context, to, link string) error {
	m.log.Info("dev mail: email verification", zap.String("to", to), zap.String("link", link))
	return nil
}

type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	body := fmt.Sprintf(
		"You requested a password reset.\r\n\r\nOpen the link below within the next hour to choose a new password:\r\n%s\r\n\r\nIf you did not ask for this, ignore this email.\r\n",
		link,
	)
	return m.deliver(ctx, to, "Password reset", body)
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, link string) error {
	body := fmt.Sprintf("Confirm your email address by opening:\r\n%s\r\n", link)
	return m.deliver(ctx, to, "Confirm your email", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, buildMessage(m.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
