package messaging

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const memoryBuffer = 64

// Memory is an in-process bus. Every group subscribed to a topic receives
// each message once; consumers inside a group take turns. Messages published
// before any consumer subscribes are dropped.
type Memory struct {
	seq atomic.Uint64

	mu     sync.Mutex
	groups map[string]map[string]*memoryGroup
	closed bool
}

type memoryGroup struct {
	next  int
	chans []chan *delivery
}

func NewMemory() *Memory {
	return &Memory{groups: map[string]map[string]*memoryGroup{}}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	id := strconv.FormatUint(m.seq.Inc(), 10)
	now := time.Now()

	targets, err := m.pick(destination)
	if err != nil {
		return PublishResult{}, err
	}

	for _, ch := range targets {
		d := &delivery{
			id:      id,
			topic:   destination,
			body:    append([]byte(nil), msg.Body...),
			headers: append([]Header(nil), msg.Headers...),
			at:      now,
		}
		select {
		case ch <- d:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{MessageID: id, Topic: destination, Timestamp: now}, nil
}

func (m *Memory) pick(topic string) ([]chan *delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, io.ErrClosedPipe
	}

	var out []chan *delivery
	for _, g := range m.groups[topic] {
		if len(g.chans) == 0 {
			continue
		}
		out = append(out, g.chans[g.next%len(g.chans)])
		g.next++
	}
	return out, nil
}

func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
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
	ch := make(chan *delivery, memoryBuffer)
	if err := m.subscribe(source, co.group, ch); err != nil {
		return err
	}
	defer m.unsubscribe(source, co.group, ch)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case d := <-ch:
					_ = dispatch(ctx, DriverMemory, handler, d, co.autoAck)
				}
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}

func (m *Memory) subscribe(topic, group string, ch chan *delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return io.ErrClosedPipe
	}
	if m.groups[topic] == nil {
		m.groups[topic] = map[string]*memoryGroup{}
	}
	g, ok := m.groups[topic][group]
	if !ok {
		g = &memoryGroup{}
		m.groups[topic][group] = g
	}
	g.chans = append(g.chans, ch)
	return nil
}

func (m *Memory) unsubscribe(topic, group string, ch chan *delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.groups[topic][group]
	if !ok {
		return
	}
	for i := range g.chans {
		if g.chans[i] == ch {
			g.chans = append(g.chans[:i], g.chans[i+1:]...)
			break
		}
	}
}
