// Package serde provides per-kind message encoders for Kafka keys and values.
// Raw kinds (STRING, BYTES, JSON) are implemented here; the AVRO kind is
// implemented in the avro package and selected through the Registry.
package serde

import "errors"

// Type identifies a serialization kind for one side (key or value) of a message.
type Type string

const (
	TypeString Type = "STRING"
	TypeBytes  Type = "BYTES"
	TypeJSON   Type = "JSON"
	TypeAvro   Type = "AVRO"
)

// ErrUnknownType is returned when a Type is not part of the supported set.
var ErrUnknownType = errors.New("unknown serializer type")

// Encoder serializes one in-memory value to wire bytes.
// Encoders are configured once at task start and are safe for sequential reuse;
// a nil input encodes to a nil payload (Kafka tombstone semantics).
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Config is the shared serializer configuration for one production task.
// It is built once, stays immutable for the task's duration and is read by
// both the key and the value encoder.
type Config struct {
	// Topic the encoders produce for; used to derive schema registry subjects.
	Topic string
	// SchemaRegistryURL enables Confluent wire format for AVRO encoders when set.
	SchemaRegistryURL string
	// KeySchema and ValueSchema hold Avro schema JSON for the AVRO kind.
	KeySchema   string
	ValueSchema string
}
