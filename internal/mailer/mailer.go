package mailer

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"eduplatform/internal/config"
)

// Mailer отправляет письма. Уведомления о новых уроках отправляются
// в режиме fire-and-forget, ошибки отправки только логируются.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type SMTPMailer struct {
	cfg         config.SMTP
	dialTimeout time.Duration
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{
		cfg:         cfg,
		dialTimeout: 30 * time.Second,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	timeout := m.dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("ошибка подключения к SMTP серверу: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("AUTH"); ok && m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("ошибка команды MAIL FROM: %w", err)
	}

	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("ошибка команды RCPT TO %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}

	msg := m.buildMessage(to, subject, body)
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("ошибка записи письма: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("ошибка завершения письма: %w", err)
	}

	return client.Quit()
}

func (m *SMTPMailer) buildMessage(to []string, subject, body string) string {
	var sb strings.Builder

	sb.WriteString("From: " + m.cfg.From + "\r\n")
	sb.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")

	return sb.String()
}

// NoopMailer используется когда SMTP не сконфигурирован.
type NoopMailer struct{}

func NewNoopMailer() NoopMailer {
	return NoopMailer{}
}

func (NoopMailer) Send(_ context.Context, to []string, subject, _ string) error {
	log.Printf("SMTP не настроен, письмо %q для %d получателей не отправлено", subject, len(to))
	return nil
}
