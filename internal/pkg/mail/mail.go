package mail

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrNoRecipients = errors.New("mail: no recipients provided")
	ErrNoSender     = errors.New("mail: no sender provided")
	ErrNoBody       = errors.New("mail: message has neither text nor html body")
)

// Message is a provider-neutral email.
type Message struct {
	// From overrides the driver's default sender when set.
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail sends messages through one provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// normalize fills From from the default and checks the fields every driver needs.
func normalize(msg Message, defaultFrom string) (Message, error) {
	if strings.TrimSpace(msg.From) == "" {
		msg.From = defaultFrom
	}
	if strings.TrimSpace(msg.From) == "" {
		return msg, ErrNoSender
	}
	if len(msg.To)+len(msg.Cc)+len(msg.Bcc) == 0 {
		return msg, ErrNoRecipients
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return msg, ErrNoBody
	}
	return msg, nil
}
