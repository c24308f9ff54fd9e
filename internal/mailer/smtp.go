// Package mailer sends generated documents over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers documents as email attachments.
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPMailer builds a mailer from the given settings. It returns nil
// when no host is configured so callers can treat mailing as disabled.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendDocument emails a single attachment to the recipient.
func (m *SMTPMailer) SendDocument(to, subject, body, filename string, attachment []byte) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(attachment))
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
