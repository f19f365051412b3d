// Package avro implements the AVRO serialization kind: values are packed
// into generic records against a declared schema and encoded with hamba/avro,
// optionally in Confluent wire format with Schema Registry integration.
package avro

import (
	"errors"
	"fmt"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	hambavro "github.com/hamba/avro/v2"
)

// ErrSchemaParse is returned when the configured Avro schema JSON is malformed.
var ErrSchemaParse = errors.New("failed to parse avro schema")

// Config configures one Avro encoder for one side (key or value) of a message.
type Config struct {
	// Schema is the Avro schema definition in JSON format.
	Schema string
	// Subject is the Schema Registry subject, conventionally {topic}-key or {topic}-value.
	Subject string
	// RegistryURL enables Confluent wire format when set. When empty the
	// encoder emits plain Avro binary.
	RegistryURL string
}

// Encoder encodes values against a single parsed Avro schema.
// The schema is parsed once at construction; encoding is pure except for the
// first registry registration, whose result is cached for the encoder's lifetime.
type Encoder struct {
	schema  hambavro.Schema
	client  schemaregistry.Client
	subject string

	mu         sync.Mutex
	schemaJSON string
	schemaID   int
	registered bool
}

func NewEncoder(conf Config) (*Encoder, error) {
	schema, err := hambavro.Parse(conf.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
	}

	e := &Encoder{
		schema:     schema,
		subject:    conf.Subject,
		schemaJSON: conf.Schema,
	}

	if conf.RegistryURL != "" {
		client, err := schemaregistry.NewClient(schemaregistry.NewConfig(conf.RegistryURL))
		if err != nil {
			return nil, fmt.Errorf("failed to create schema registry client: %w", err)
		}
		e.client = client
	}

	return e, nil
}

func (e *Encoder) Encode(v any) ([]byte, error) {
	record, err := packValue(e.schema, v)
	if err != nil {
		return nil, err
	}

	data, err := hambavro.Marshal(e.schema, record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal avro data: %w", err)
	}

	if e.client == nil {
		return data, nil
	}

	schemaID, err := e.registerSchema()
	if err != nil {
		return nil, err
	}

	return buildWireFormat(schemaID, data), nil
}

// registerSchema registers the schema under the encoder's subject and caches
// the returned ID for subsequent messages.
func (e *Encoder) registerSchema() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.registered {
		return e.schemaID, nil
	}

	id, err := e.client.Register(e.subject, schemaregistry.SchemaInfo{
		Schema:     e.schemaJSON,
		SchemaType: "AVRO",
	}, false)
	if err != nil {
		return 0, fmt.Errorf("failed to register schema for subject %s: %w", e.subject, err)
	}

	e.schemaID = id
	e.registered = true
	return id, nil
}
