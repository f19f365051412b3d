package produce

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimestamp(t *testing.T) {
	t.Run("absent timestamp stays absent", func(t *testing.T) {
		_, ok, err := normalizeTimestamp(nil)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("epoch millis pass through unchanged", func(t *testing.T) {
		ts, ok, err := normalizeTimestamp(int64(1704067200000))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1704067200000), ts.UnixMilli())
	})

	t.Run("accepts native int", func(t *testing.T) {
		ts, ok, err := normalizeTimestamp(1704067200000)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1704067200000), ts.UnixMilli())
	})

	t.Run("accepts json.Number from a streamed row", func(t *testing.T) {
		ts, ok, err := normalizeTimestamp(json.Number("1704067200000"))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1704067200000), ts.UnixMilli())
	})

	t.Run("accepts time.Time", func(t *testing.T) {
		instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		ts, ok, err := normalizeTimestamp(instant)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, instant.UnixMilli(), ts.UnixMilli())
	})

	t.Run("zone-aware strings with equal instants normalize equally", func(t *testing.T) {
		utc, ok, err := normalizeTimestamp("2024-01-01T00:00:00Z")
		require.NoError(t, err)
		require.True(t, ok)

		offset, ok, err := normalizeTimestamp("2024-01-01T01:00:00+01:00")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, int64(1704067200000), utc.UnixMilli())
		assert.Equal(t, utc.UnixMilli(), offset.UnixMilli())
	})

	t.Run("zone-less string is interpreted in the local zone", func(t *testing.T) {
		ts, ok, err := normalizeTimestamp("2024-01-01T00:00:00")

		require.NoError(t, err)
		assert.True(t, ok)

		expected := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		assert.Equal(t, expected.UnixMilli(), ts.UnixMilli())
	})

	t.Run("unparseable string fails", func(t *testing.T) {
		_, _, err := normalizeTimestamp("not-a-timestamp")

		assert.ErrorIs(t, err, ErrInvalidTimestampType)
	})

	t.Run("float fails and names the offending type", func(t *testing.T) {
		_, _, err := normalizeTimestamp(42.0)

		require.ErrorIs(t, err, ErrInvalidTimestampType)
		assert.Contains(t, err.Error(), "float64")
	})
}

func TestNormalizeHeaders(t *testing.T) {
	t.Run("absent headers stay absent", func(t *testing.T) {
		headers, err := normalizeHeaders(nil)

		assert.NoError(t, err)
		assert.Nil(t, headers)
	})

	t.Run("string map becomes utf-8 header pairs", func(t *testing.T) {
		headers, err := normalizeHeaders(map[string]string{"a": "b"})

		require.NoError(t, err)
		assert.Equal(t, []kafka.Header{{Key: "a", Value: []byte("b")}}, headers)
	})

	t.Run("map of any with string values is accepted", func(t *testing.T) {
		headers, err := normalizeHeaders(map[string]any{"h": "x"})

		require.NoError(t, err)
		assert.Equal(t, []kafka.Header{{Key: "h", Value: []byte("x")}}, headers)
	})

	t.Run("non-string header value fails", func(t *testing.T) {
		_, err := normalizeHeaders(map[string]any{"h": 1})

		assert.ErrorIs(t, err, ErrInvalidHeadersType)
	})

	t.Run("non-map headers fail and name the offending type", func(t *testing.T) {
		_, err := normalizeHeaders([]int{1, 2})

		require.ErrorIs(t, err, ErrInvalidHeadersType)
		assert.Contains(t, err.Error(), "[]int")
	})
}

func TestNormalizePartition(t *testing.T) {
	t.Run("absent partition means broker default partitioning", func(t *testing.T) {
		p, err := normalizePartition(nil)

		require.NoError(t, err)
		assert.Equal(t, kafka.PartitionAny, p)
	})

	t.Run("accepts non-negative integers", func(t *testing.T) {
		p, err := normalizePartition(3)

		require.NoError(t, err)
		assert.Equal(t, int32(3), p)
	})

	t.Run("accepts json.Number", func(t *testing.T) {
		p, err := normalizePartition(json.Number("0"))

		require.NoError(t, err)
		assert.Equal(t, int32(0), p)
	})

	t.Run("rejects negative partition", func(t *testing.T) {
		_, err := normalizePartition(-1)

		assert.ErrorIs(t, err, ErrInvalidPartitionType)
	})

	t.Run("rejects non-integer partition", func(t *testing.T) {
		_, err := normalizePartition("0")

		assert.ErrorIs(t, err, ErrInvalidPartitionType)
	})
}
