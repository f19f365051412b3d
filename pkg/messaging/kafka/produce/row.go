// Package produce turns loosely-typed row records into Kafka messages and
// drives them through the producer: row sources (single map, list, streamed
// NDJSON file), field normalization, per-kind key/value encoding, a
// backpressured ingestion pipeline and the top-level production task.
package produce

import "encoding/json"

// Row is one loosely-typed input record. Recognized keys are "key", "value",
// "partition", "timestamp" and "headers"; each row is consumed exactly once.
type Row map[string]any

func (r Row) Key() any       { return r["key"] }
func (r Row) Value() any     { return r["value"] }
func (r Row) Partition() any { return r["partition"] }
func (r Row) Timestamp() any { return r["timestamp"] }
func (r Row) Headers() any   { return r["headers"] }

// asInt64 converts the integer shapes a row field may arrive in. Rows decoded
// from a JSON stream carry json.Number, in-memory rows carry native ints.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
