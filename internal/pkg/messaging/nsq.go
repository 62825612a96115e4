package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	ErrNSQProducerAddrRequired  = errors.New("messaging: nsq producer address is required")
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq nsqd or lookupd addresses are required")
)

type NSQConfig struct {
	ProducerAddr   string
	NSQDAddrs      []string
	LookupdAddrs   []string
	ConsumerConfig *nsq.Config
	ProducerConfig *nsq.Config
}

// NSQ carries only the message body; headers are not part of the NSQ wire
// format and are dropped on publish.
type NSQ struct {
	producer *nsq.Producer
	cfg      NSQConfig

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{cfg: cfg}
	if n.cfg.ConsumerConfig == nil {
		n.cfg.ConsumerConfig = nsq.NewConfig()
	}

	if cfg.ProducerAddr != "" {
		pcfg := cfg.ProducerConfig
		if pcfg == nil {
			pcfg = nsq.NewConfig()
		}
		p, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		n.producer = p
	}

	return n, nil
}

func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer(nil), n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	var err error
	if msg.Delay > 0 {
		err = n.producer.DeferredPublish(destination, msg.Delay, msg.Body)
	} else {
		err = n.producer.Publish(destination, msg.Body)
	}
	if err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	if len(n.cfg.NSQDAddrs) == 0 && len(n.cfg.LookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrGroupRequired
	}

	ccfg := *n.cfg.ConsumerConfig
	ccfg.MaxInFlight = max(co.maxInFlight, co.concurrency, ccfg.MaxInFlight)

	consumer, err := nsq.NewConsumer(source, co.group, &ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)
	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		m.DisableAutoResponse()
		return dispatch(ctx, DriverNSQ, handler, nsqDelivery(source, m), co.autoAck)
	}), co.concurrency)

	if err := n.track(consumer); err != nil {
		consumer.Stop()
		return err
	}

	if len(n.cfg.LookupdAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.cfg.LookupdAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.cfg.NSQDAddrs)
	}
	if err != nil {
		consumer.Stop()
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.StopChan
		return ctx.Err()
	case <-consumer.StopChan:
		return io.ErrClosedPipe
	}
}

func (n *NSQ) track(c *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, c)
	return nil
}

func nsqDelivery(topic string, m *nsq.Message) *delivery {
	return &delivery{
		id:    string(m.ID[:]),
		topic: topic,
		body:  m.Body,
		at:    time.Unix(0, m.Timestamp),
		ack: func(context.Context) error {
			m.Finish()
			return nil
		},
		nack: func(context.Context) error {
			m.Requeue(-1)
			return nil
		},
	}
}
