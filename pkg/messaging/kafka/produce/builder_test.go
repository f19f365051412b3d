package produce

import (
	"testing"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/serde"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringBuilder(t *testing.T, topic string) *recordBuilder {
	t.Helper()
	registry := serde.NewRegistry(serde.Config{Topic: topic})
	builder, err := newRecordBuilder(topic, registry, serde.TypeString, serde.TypeString)
	require.NoError(t, err)
	return builder
}

func TestNewRecordBuilder(t *testing.T) {
	t.Run("fails fast on unknown key serializer", func(t *testing.T) {
		registry := serde.NewRegistry(serde.Config{Topic: "t"})

		_, err := newRecordBuilder("t", registry, serde.Type("XML"), serde.TypeString)

		assert.ErrorIs(t, err, serde.ErrUnknownType)
	})

	t.Run("fails fast on malformed avro schema", func(t *testing.T) {
		registry := serde.NewRegistry(serde.Config{Topic: "t", ValueSchema: "{not-avro"})

		_, err := newRecordBuilder("t", registry, serde.TypeString, serde.TypeAvro)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value serializer")
	})
}

func TestRecordBuilder_Build(t *testing.T) {
	t.Run("minimal row builds a message with broker defaults", func(t *testing.T) {
		builder := newStringBuilder(t, "t")

		message, err := builder.Build(Row{"key": "k1", "value": "v1"})

		require.NoError(t, err)
		assert.Equal(t, "t", *message.TopicPartition.Topic)
		assert.Equal(t, kafka.PartitionAny, message.TopicPartition.Partition)
		assert.Equal(t, []byte("k1"), message.Key)
		assert.Equal(t, []byte("v1"), message.Value)
		assert.Empty(t, message.Headers)
		assert.True(t, message.Timestamp.IsZero())
	})

	t.Run("full row carries partition, timestamp and headers", func(t *testing.T) {
		builder := newStringBuilder(t, "t")

		message, err := builder.Build(Row{
			"key":       "k2",
			"value":     "v2",
			"partition": 0,
			"timestamp": "2024-01-01T00:00:00Z",
			"headers":   map[string]string{"h": "x"},
		})

		require.NoError(t, err)
		assert.Equal(t, int32(0), message.TopicPartition.Partition)
		assert.Equal(t, int64(1704067200000), message.Timestamp.UnixMilli())
		assert.Equal(t, kafka.TimestampCreateTime, message.TimestampType)
		assert.Equal(t, []kafka.Header{{Key: "h", Value: []byte("x")}}, message.Headers)
	})

	t.Run("absent key encodes to a nil key", func(t *testing.T) {
		builder := newStringBuilder(t, "t")

		message, err := builder.Build(Row{"value": "v"})

		require.NoError(t, err)
		assert.Nil(t, message.Key)
	})

	t.Run("normalization errors propagate with their sentinel", func(t *testing.T) {
		builder := newStringBuilder(t, "t")

		_, err := builder.Build(Row{"key": "k", "value": "v", "timestamp": 1.5})

		assert.ErrorIs(t, err, ErrInvalidTimestampType)
	})

	t.Run("encoder errors name the failing side", func(t *testing.T) {
		builder := newStringBuilder(t, "t")

		_, err := builder.Build(Row{"key": "k", "value": 42})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encode value")
	})
}
