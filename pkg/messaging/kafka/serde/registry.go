package serde

import (
	"fmt"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/avro"
)

// Registry builds encoders for the closed set of serialization kinds.
// AVRO encoders parse their schema once at construction, so a malformed
// schema fails here, before any row is processed.
type Registry struct {
	conf Config
}

func NewRegistry(conf Config) *Registry {
	return &Registry{conf: conf}
}

// ForType returns an encoder configured for the given kind and side.
// Key and value encoders differ only in schema text and registry subject
// ({topic}-key vs {topic}-value).
func (r *Registry) ForType(t Type, isKey bool) (Encoder, error) {
	switch t {
	case TypeString:
		return stringEncoder{}, nil
	case TypeBytes:
		return bytesEncoder{}, nil
	case TypeJSON:
		return jsonEncoder{}, nil
	case TypeAvro:
		return avro.NewEncoder(avro.Config{
			Schema:      r.schemaFor(isKey),
			Subject:     r.subjectFor(isKey),
			RegistryURL: r.conf.SchemaRegistryURL,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

func (r *Registry) schemaFor(isKey bool) string {
	if isKey {
		return r.conf.KeySchema
	}
	return r.conf.ValueSchema
}

func (r *Registry) subjectFor(isKey bool) string {
	if isKey {
		return r.conf.Topic + "-key"
	}
	return r.conf.Topic + "-value"
}
