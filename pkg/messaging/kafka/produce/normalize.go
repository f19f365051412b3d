package produce

import (
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// localDateTimeLayouts parse zone-less date-time strings, interpreted in the
// process-local zone.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// normalizeTimestamp converts the accepted timestamp shapes to a wall-clock
// instant: absent, native epoch-milliseconds, time.Time, a zone-aware string
// (RFC 3339) or a zone-less string interpreted in the local zone. Every other
// shape, floats included, fails with ErrInvalidTimestampType.
func normalizeTimestamp(v any) (time.Time, bool, error) {
	if v == nil {
		return time.Time{}, false, nil
	}

	if millis, ok := asInt64(v); ok {
		return time.UnixMilli(millis), true, nil
	}

	switch ts := v.(type) {
	case time.Time:
		return ts, true, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t, true, nil
		}
		for _, layout := range localDateTimeLayouts {
			if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("%w: cannot parse %q", ErrInvalidTimestampType, ts)
	default:
		return time.Time{}, false, fmt.Errorf("%w: %T", ErrInvalidTimestampType, v)
	}
}

// normalizeHeaders converts a string-to-string mapping to ordered Kafka
// headers with UTF-8 payloads. Absent headers stay absent.
func normalizeHeaders(v any) ([]kafka.Header, error) {
	if v == nil {
		return nil, nil
	}

	switch m := v.(type) {
	case map[string]string:
		headers := make([]kafka.Header, 0, len(m))
		for name, value := range m {
			headers = append(headers, kafka.Header{Key: name, Value: []byte(value)})
		}
		return headers, nil
	case map[string]any:
		headers := make([]kafka.Header, 0, len(m))
		for name, value := range m {
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: header %s has value of type %T", ErrInvalidHeadersType, name, value)
			}
			headers = append(headers, kafka.Header{Key: name, Value: []byte(s)})
		}
		return headers, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidHeadersType, v)
	}
}

// normalizePartition passes an absent partition through as the broker's
// default partitioning and otherwise requires a non-negative integer.
func normalizePartition(v any) (int32, error) {
	if v == nil {
		return kafka.PartitionAny, nil
	}

	p, ok := asInt64(v)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrInvalidPartitionType, v)
	}
	if p < 0 {
		return 0, fmt.Errorf("%w: partition must be non-negative, got %d", ErrInvalidPartitionType, p)
	}
	return int32(p), nil
}
