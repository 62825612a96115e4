package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrUnsupported is returned when a driver cannot honor a message option.
	ErrUnsupported = errors.New("messaging: unsupported operation")

	ErrDestinationRequired = errors.New("messaging: destination is required")
	ErrHandlerRequired     = errors.New("messaging: handler is required")
	ErrGroupRequired       = errors.New("messaging: consumer group is required")
)

// Messaging is a connected broker client.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer blocks in Consume until ctx is canceled or the broker fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

type Handler func(ctx context.Context, msg Message) error

type OutgoingMessage struct {
	Body    []byte
	Key     []byte
	Headers []Header
	// Delay is only honored by NSQ.
	Delay time.Duration
}

type Header struct {
	Key   string
	Value []byte
}

type PublishResult struct {
	MessageID string
	Topic     string
	Timestamp time.Time
}

// Message is a delivery handed to a Handler.
type Message interface {
	ID() string
	Topic() string
	Body() []byte
	Headers() []Header
	Header(key string) string
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}

// delivery is the Message implementation shared by every driver. Only the
// first Ack or Nack reaches the broker.
type delivery struct {
	id      string
	topic   string
	body    []byte
	headers []Header
	at      time.Time

	ack  func(ctx context.Context) error
	nack func(ctx context.Context) error

	responded atomic.Bool
}

func (d *delivery) ID() string           { return d.id }
func (d *delivery) Topic() string        { return d.topic }
func (d *delivery) Body() []byte         { return d.body }
func (d *delivery) Headers() []Header    { return d.headers }
func (d *delivery) Timestamp() time.Time { return d.at }

func (d *delivery) Header(key string) string {
	for _, h := range d.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (d *delivery) Ack(ctx context.Context) error {
	return d.respond(ctx, d.ack)
}

func (d *delivery) Nack(ctx context.Context) error {
	return d.respond(ctx, d.nack)
}

func (d *delivery) respond(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.responded.Swap(true) {
		return nil
	}
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// dispatch runs handler for d and settles the delivery when autoAck is set
// and the handler did not settle it itself.
func dispatch(ctx context.Context, kind string, handler Handler, d *delivery, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, kind, func() error {
		return handler(ctx, d)
	})

	if d.responded.Load() || !autoAck {
		return herr
	}
	if herr == nil {
		return d.Ack(ctx)
	}
	return d.Nack(ctx)
}
