package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

// ErrSendGridAPIKeyRequired is returned when no API key is configured.
var ErrSendGridAPIKeyRequired = errors.New("mail: sendgrid api key is required")

// SendGridConfig configures the SendGrid driver.
type SendGridConfig struct {
	APIKey   string
	From     string
	FromName string
	// Host overrides the API base URL; empty means api.sendgrid.com.
	Host string
}

// SendGrid sends mail through the SendGrid v3 HTTP API.
type SendGrid struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGrid builds a SendGrid driver.
func NewSendGrid(cfg SendGridConfig) (*SendGrid, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrSendGridAPIKeyRequired
	}

	host := cfg.Host
	if host == "" {
		host = sendGridHost
	}

	req := sendgrid.GetRequest(cfg.APIKey, "/v3/mail/send", host)
	req.Method = "POST"

	return &SendGrid{
		client:   &sendgrid.Client{Request: req},
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

// ProviderError carries a non-2xx SendGrid response.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail: sendgrid responded %d: %s", e.Status, e.Body)
}

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	msg, err := normalize(msg, s.from)
	if err != nil {
		return err
	}

	resp, err := s.client.SendWithContext(ctx, s.build(msg))
	if err != nil {
		return fmt.Errorf("mail: sendgrid request: %w", err)
	}
	if resp.StatusCode >= 300 {
		return &ProviderError{Status: resp.StatusCode, Body: resp.Body}
	}

	return nil
}

func (s *SendGrid) build(msg Message) *sgmail.SGMailV3 {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgAddress(msg.From, s.fromName))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgAddress(to, ""))
	}
	for _, cc := range msg.Cc {
		p.AddCCs(sgAddress(cc, ""))
	}
	for _, bcc := range msg.Bcc {
		p.AddBCCs(sgAddress(bcc, ""))
	}
	m.AddPersonalizations(p)

	if msg.TextBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	return m
}

// sgAddress accepts "Name <addr>" or a bare address.
func sgAddress(raw, fallbackName string) *sgmail.Email {
	if parsed, err := mail.ParseAddress(raw); err == nil {
		name := parsed.Name
		if name == "" {
			name = fallbackName
		}
		return sgmail.NewEmail(name, parsed.Address)
	}
	return sgmail.NewEmail(fallbackName, strings.TrimSpace(raw))
}

func (s *SendGrid) Close() error {
	return nil
}
