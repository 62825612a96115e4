package mail

import (
	"context"
	"crypto/tls"
	"errors"

	"gopkg.in/gomail.v2"
)

// ErrSMTPHostPortRequired is returned when Host or Port is missing.
var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

// SMTPConfig configures the SMTP driver.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// InsecureSkipVerify disables certificate checks, for local relays such as mailpit.
	InsecureSkipVerify bool
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTP sends mail through an SMTP relay using gomail.
type SMTP struct {
	dialer dialer
	from   string
}

// NewSMTP builds an SMTP driver. It does not connect until Send.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.InsecureSkipVerify {
		//nolint:gosec // opt-in for local relays
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
	}

	return &SMTP{dialer: d, from: cfg.From}, nil
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	msg, err := normalize(msg, s.from)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.dialer.DialAndSend(buildGomail(msg))
}

func buildGomail(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", msg.Bcc...)
	}
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	return m
}

func (s *SMTP) Close() error {
	return nil
}
