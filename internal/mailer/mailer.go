package mailer

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Notifier sends outbound notification email. Sends are fire-and-forget at
// the call sites: a failed send is logged, never retried.
type Notifier interface {
	Send(to, subject, body string) error
}

// Mailer is the SMTP-backed Notifier.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer for the given SMTP endpoint.
func New(host string, port int, username, password, from string) (*Mailer, error) {
	if host == "" {
		return nil, fmt.Errorf("no SMTP host configured")
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}, nil
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// LogNotifier stands in when SMTP is unconfigured; it only logs the message.
type LogNotifier struct{}

// Send logs the message instead of delivering it.
func (LogNotifier) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("email delivery disabled, dropping message")
	return nil
}
