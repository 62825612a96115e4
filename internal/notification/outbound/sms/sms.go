// Package sms posts text messages to the school's SMS gateway.
package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mabinihs/portal/internal/notification/usecase"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultURL = "https://api.smsmobileapi.com/sendsms/"

	maxResponseBytes = 64 << 10
)

var ErrAPIKeyRequired = errors.New("sms: api key is required")

type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
	// Backoff is the first retry delay; later ones grow exponentially.
	Backoff time.Duration
}

type Gateway struct {
	client *http.Client
	cfg    Config
	ins    instrument.Instrumentation
}

func New(cfg Config, client *http.Client, ins instrument.Instrumentation) (*Gateway, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Gateway{client: client, cfg: cfg, ins: ins}, nil
}

// Send posts the message. Transport errors and 5xx answers are retried; a
// final non-2xx answer is returned as a result with OK=false, not an error.
func (g *Gateway) Send(ctx context.Context, recipient, message string) (*usecase.SMSResult, error) {
	ctx, span := g.ins.Tracer("notification.outbound.sms").Start(ctx, "Send")
	defer span.End()

	form := url.Values{
		"recipients": {recipient},
		"message":    {message},
		"apikey":     {g.cfg.APIKey},
	}.Encode()

	b := retry.NewExponential(g.cfg.Backoff)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(g.cfg.MaxRetries, b)

	var (
		res      *usecase.SMSResult
		attempts int
	)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, strings.NewReader(form))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := g.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return retry.RetryableError(err)
		}

		res = &usecase.SMSResult{
			OK:   resp.StatusCode >= 200 && resp.StatusCode < 300,
			Body: string(body),
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("sms gateway answered %d", resp.StatusCode))
		}
		return nil
	})
	span.SetAttributes(attribute.Int("sms.attempts", attempts))

	if err != nil && res == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !res.OK {
		span.SetStatus(codes.Error, "sms gateway rejected message")
	}

	return res, nil
}

// Disabled stands in when no API key is configured; every send fails.
type Disabled struct{}

func (Disabled) Send(context.Context, string, string) (*usecase.SMSResult, error) {
	return nil, ErrAPIKeyRequired
}
