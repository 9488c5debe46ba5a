package mailer

import (
	"context"
	"errors"
	"fmt"

	"admission-portal/config"

	"gopkg.in/gomail.v2"
)

var ErrMailDisabled = errors.New("SMTP is not configured")

// Mailer sends plain text mail over SMTP.
type Mailer struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{config: cfg}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// Send implements notification.Sender.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.newMessage(to, subject, body)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) newMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}
