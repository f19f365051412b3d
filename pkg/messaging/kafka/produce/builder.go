package produce

import (
	"fmt"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/serde"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// recordBuilder assembles one outbound message from one row. It performs no
// I/O; given the same row it always builds the same message.
type recordBuilder struct {
	topic        string
	keyEncoder   serde.Encoder
	valueEncoder serde.Encoder
}

func newRecordBuilder(topic string, registry *serde.Registry, keyType, valueType serde.Type) (*recordBuilder, error) {
	keyEncoder, err := registry.ForType(keyType, true)
	if err != nil {
		return nil, fmt.Errorf("failed to configure key serializer: %w", err)
	}

	valueEncoder, err := registry.ForType(valueType, false)
	if err != nil {
		return nil, fmt.Errorf("failed to configure value serializer: %w", err)
	}

	return &recordBuilder{
		topic:        topic,
		keyEncoder:   keyEncoder,
		valueEncoder: valueEncoder,
	}, nil
}

func (b *recordBuilder) Build(row Row) (*kafka.Message, error) {
	key, err := b.keyEncoder.Encode(row.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to encode key: %w", err)
	}

	value, err := b.valueEncoder.Encode(row.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}

	partition, err := normalizePartition(row.Partition())
	if err != nil {
		return nil, err
	}

	timestamp, hasTimestamp, err := normalizeTimestamp(row.Timestamp())
	if err != nil {
		return nil, err
	}

	headers, err := normalizeHeaders(row.Headers())
	if err != nil {
		return nil, err
	}

	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &b.topic, Partition: partition},
		Key:            key,
		Value:          value,
		Headers:        headers,
	}
	if hasTimestamp {
		message.Timestamp = timestamp
		message.TimestampType = kafka.TimestampCreateTime
	}
	return message, nil
}
