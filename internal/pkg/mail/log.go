package mail

import (
	"context"
	"log/slog"
)

// Log writes messages to slog instead of delivering them.
type Log struct {
	from string
}

// NewLog returns the log driver.
func NewLog(from string) *Log {
	return &Log{from: from}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	msg, err := normalize(msg, l.from)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "mail not delivered, log driver active",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"text_len", len(msg.TextBody),
		"html_len", len(msg.HTMLBody),
	)
	return nil
}

func (l *Log) Close() error {
	return nil
}
