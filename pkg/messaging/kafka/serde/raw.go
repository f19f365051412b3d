package serde

import (
	"encoding/json"
	"fmt"
)

// stringEncoder passes strings and byte slices through as UTF-8 bytes.
type stringEncoder struct{}

func (stringEncoder) Encode(v any) ([]byte, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	case json.Number:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("string encoder: unsupported value of type %T", v)
	}
}

// bytesEncoder passes raw payloads through unchanged.
type bytesEncoder struct{}

func (bytesEncoder) Encode(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("bytes encoder: unsupported value of type %T", v)
	}
}

// jsonEncoder marshals any value with encoding/json.
type jsonEncoder struct{}

func (jsonEncoder) Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json encoder: failed to marshal value: %w", err)
	}
	return data, nil
}
