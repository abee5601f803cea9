package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends portal emails over SMTP. When SMTP_HOST is unset it runs
// disabled: sends are logged and dropped so local development needs no mail
// server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS, and MAIL_FROM.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@wholesaleportal.local"
	}

	if host == "" {
		return &Mailer{from: from}
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// Send delivers one plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	if m.dialer == nil {
		log.Printf("[mailer] SMTP disabled, dropping email to %s: %s", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendWelcome sends the welcome email with the one-time password to a freshly
// provisioned customer.
func (m *Mailer) SendWelcome(to, contactName, businessName, tempPassword string) error {
	greeting := contactName
	if greeting == "" {
		greeting = businessName
	}

	body := fmt.Sprintf(`Hi %s,

An account has been created for %s on the Wholesale Portal.

Login email: %s
Temporary password: %s

Please sign in and change your password. This temporary password will not be
shown again.
`, greeting, businessName, to, tempPassword)

	return m.Send(to, "Welcome to the Wholesale Portal", body)
}
