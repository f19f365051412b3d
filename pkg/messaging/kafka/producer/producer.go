// Package producer wraps the confluent-kafka-go producer behind a small
// interface: a blocking Send with local-queue backpressure, a context-aware
// Flush and a Close. Batching and network transmission stay inside the
// underlying client's own I/O threads.
package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// Producer is the broker client used by the production pipeline.
type Producer interface {
	// Send submits a message to the client's internal buffer. It blocks,
	// with capped exponential backoff, while the local queue is saturated;
	// this is the pipeline's backpressure point against a slow broker.
	// A nil error means the message was accepted for buffering, not that
	// the broker acknowledged it.
	Send(ctx context.Context, message *kafka.Message) error

	// Flush blocks until every buffered message has been attempted or the
	// context is cancelled.
	Flush(ctx context.Context) error

	// Close releases the client's resources. Buffered but unflushed
	// messages are dropped.
	Close()
}

// kafkaProducer is the subset of *kafka.Producer the wrapper relies on.
type kafkaProducer interface {
	Produce(message *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Events() chan kafka.Event
	Close()
}

type producer struct {
	producer kafkaProducer
	log      *zap.Logger
}

// New creates a producer connected to the configured brokers. Passthrough
// properties from the config are applied verbatim to the client.
func New(conf config.Config, log *zap.Logger) (Producer, error) {
	cm := kafka.ConfigMap{"bootstrap.servers": conf.Brokers}
	for k, v := range conf.Properties {
		if err := cm.SetKey(k, v); err != nil {
			return nil, fmt.Errorf("failed to apply producer property %s: %w", k, err)
		}
	}

	p, err := kafka.NewProducer(&cm)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return newProducer(p, log), nil
}

func newProducer(p kafkaProducer, log *zap.Logger) *producer {
	pr := &producer{producer: p, log: log.With(zap.String("component", "producer"))}
	go pr.drainEvents()
	return pr
}

func (p *producer) Send(ctx context.Context, message *kafka.Message) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		err := p.producer.Produce(message, nil)
		if err == nil {
			return nil
		}
		if isQueueFull(err) {
			// local buffer saturated, wait for the client to drain
			return err
		}
		return backoff.Permanent(fmt.Errorf("failed to send message to topic %s: %w", message.TopicPartition, err))
	}, backoff.WithContext(bo, ctx))
}

func (p *producer) Flush(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("flush interrupted: %w", ctx.Err())
		default:
		}

		if remaining := p.producer.Flush(500); remaining == 0 {
			return nil
		}
	}
}

func (p *producer) Close() {
	p.producer.Close()
}

// drainEvents consumes delivery reports until the client is closed. Delivery
// failures are logged and otherwise dropped: the pipeline counts accepted
// sends, not acknowledgments.
func (p *producer) drainEvents() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.log.Error("message delivery failed",
					zap.String("partition", ev.TopicPartition.String()),
					zap.Error(ev.TopicPartition.Error))
			} else {
				p.log.Debug("message delivered", zap.String("partition", ev.TopicPartition.String()))
			}
		case kafka.Error:
			p.log.Error("producer error", zap.Error(ev))
		}
	}
}

func isQueueFull(err error) bool {
	var kerr kafka.Error
	return errors.As(err, &kerr) && kerr.Code() == kafka.ErrQueueFull
}
