package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrNATSURLRequired = errors.New("messaging: nats url is required")

type NATSConfig struct {
	URL     string
	Name    string
	Options []nats.Option
}

// NATS publishes on core NATS subjects. Core NATS has no redelivery, so Ack
// and Nack only answer a request-reply inbox when one is set.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := append([]nats.Option{nats.MaxReconnects(-1)}, cfg.Options...)
	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := append([]*nats.Subscription(nil), n.subs...)
	n.mu.Unlock()

	var closeErr error
	for _, sub := range subs {
		closeErr = errors.Join(closeErr, sub.Drain())
	}
	closeErr = errors.Join(closeErr, n.conn.Drain())
	n.conn.Close()
	return closeErr
}

func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	nm := nats.NewMsg(destination)
	nm.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nm.Header.Set(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	buffer := co.maxInFlight
	if buffer <= 0 {
		buffer = co.concurrency
	}
	work := make(chan *nats.Msg, buffer)

	sub, err := n.conn.QueueSubscribe(source, co.group, func(m *nats.Msg) {
		select {
		case work <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}
	if err := n.track(sub); err != nil {
		return errors.Join(err, sub.Unsubscribe())
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case m := <-work:
					_ = dispatch(ctx, DriverNATS, handler, natsDelivery(source, m), co.autoAck)
				}
			}
		})
	}

	<-ctx.Done()
	unsubErr := sub.Unsubscribe()
	wg.Wait()
	if unsubErr != nil && !errors.Is(unsubErr, nats.ErrConnectionClosed) && !errors.Is(unsubErr, nats.ErrBadSubscription) {
		return errors.Join(ctx.Err(), unsubErr)
	}
	return ctx.Err()
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.subs = append(n.subs, sub)
	return nil
}

func natsDelivery(subject string, m *nats.Msg) *delivery {
	d := &delivery{topic: subject, body: m.Data, at: time.Now()}
	for k, vals := range m.Header {
		for _, v := range vals {
			d.headers = append(d.headers, Header{Key: k, Value: []byte(v)})
		}
	}
	if meta, err := m.Metadata(); err == nil {
		d.id = fmt.Sprintf("%s/%d", meta.Stream, meta.Sequence.Stream)
		d.at = meta.Timestamp
	}
	if m.Reply != "" {
		d.ack = func(context.Context) error { return m.Respond(nil) }
	}
	return d
}
