package produce

import (
	"context"
	"fmt"

	kafkaconfig "github.com/Sokol111/kafka-produce/pkg/messaging/kafka/config"
	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/producer"
	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/serde"
	"github.com/Sokol111/kafka-produce/pkg/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Output is the task's result: the exact number of messages accepted by the
// client across the whole run.
type Output struct {
	MessagesCount int64 `json:"messagesCount"`
}

// Task produces every row of the configured source to the configured topic.
// It owns the producer for its lifetime: the client is flushed and closed on
// every exit path, and a row-level failure is surfaced only after cleanup.
type Task struct {
	conf     Config
	builder  *recordBuilder
	producer producer.Producer
	opener   storage.Opener
	log      *zap.Logger
	records  metric.Int64Counter
}

// NewTask configures encoders for the task. A malformed Avro schema or an
// unknown serializer kind fails here, before any row is processed.
func NewTask(
	conf Config,
	kafkaConf kafkaconfig.Config,
	p producer.Producer,
	opener storage.Opener,
	log *zap.Logger,
) (*Task, error) {
	registry := serde.NewRegistry(serde.Config{
		Topic:             conf.Topic,
		SchemaRegistryURL: kafkaConf.SchemaRegistry.URL,
		KeySchema:         conf.KeyAvroSchema,
		ValueSchema:       conf.ValueAvroSchema,
	})

	builder, err := newRecordBuilder(conf.Topic, registry, conf.KeySerializer, conf.ValueSerializer)
	if err != nil {
		return nil, err
	}

	records, err := otel.Meter("kafka-produce").Int64Counter("records",
		metric.WithDescription("Number of messages produced"))
	if err != nil {
		return nil, fmt.Errorf("failed to create records counter: %w", err)
	}

	return &Task{
		conf:     conf,
		builder:  builder,
		producer: p,
		opener:   opener,
		log:      log.With(zap.String("component", "produce-task")),
		records:  records,
	}, nil
}

// Run drives the pipeline to completion and reports the final count. The
// producer is flushed and closed even when a row fails; the source is closed
// as soon as it is exhausted or the run aborts.
func (t *Task) Run(ctx context.Context) (*Output, error) {
	source, err := ResolveSource(ctx, t.conf.From, t.opener)
	if err != nil {
		t.producer.Close()
		return nil, err
	}

	pl := newPipeline(t.builder, t.producer, t.log)
	count, runErr := pl.Run(ctx, source)

	if err := source.Close(); err != nil {
		t.log.Warn("failed to close row source", zap.Error(err))
	}

	// flush and close must run on the failure path too, so the client
	// connection is never leaked
	if flushErr := t.producer.Flush(ctx); flushErr != nil && runErr == nil {
		runErr = flushErr
	}
	t.producer.Close()

	if runErr != nil {
		return nil, runErr
	}

	t.records.Add(ctx, count)
	t.log.Info("produced messages", zap.String("topic", t.conf.Topic), zap.Int64("count", count))

	return &Output{MessagesCount: count}, nil
}
