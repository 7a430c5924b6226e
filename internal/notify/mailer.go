// Package notify sends best-effort e-mail notifications.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail/v2"

	"editorial/internal/config"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// SMTPMailer sends through the SMTP server from config.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.Timeout = sendTimeout
	if cfg.SMTPPort == 587 {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.SMTPHost,
		InsecureSkipVerify: cfg.SMTPSkipTLSVerify,
	}
	return &SMTPMailer{dialer: d, from: cfg.SMTPFrom}
}

// Send gives up when ctx is done. The dial itself is bounded by the dialer timeout.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail %q: %w", subject, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail %q: %w", subject, ctx.Err())
	}
}

// NopMailer discards every message; used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) Send(context.Context, []string, string, string) error { return nil }

// NewMailer returns an SMTP mailer when SMTP is configured and a NopMailer otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.MailEnabled() {
		return NopMailer{}
	}
	return NewSMTPMailer(cfg)
}
