package avro

import (
	"encoding/json"
	"fmt"

	hambavro "github.com/hamba/avro/v2"
)

// packValue prepares a loosely-typed value for encoding against a schema.
// For record schemas it builds a generic record map: every declared field is
// looked up by name in the input map; absent fields take the declared default
// or the type's zero value. Numbers that arrive as json.Number are coerced to
// the numeric type the schema expects.
func packValue(schema hambavro.Schema, v any) (any, error) {
	schema = resolveSchema(schema)

	switch s := schema.(type) {
	case *hambavro.RecordSchema:
		m, ok := asMap(v)
		if !ok {
			return nil, fmt.Errorf("avro record %s requires a map value, got %T", s.FullName(), v)
		}
		return packRecord(s, m)
	case *hambavro.ArraySchema:
		items, ok := v.([]any)
		if !ok {
			return v, nil
		}
		packed := make([]any, len(items))
		for i, item := range items {
			p, err := packValue(s.Items(), item)
			if err != nil {
				return nil, err
			}
			packed[i] = p
		}
		return packed, nil
	case *hambavro.MapSchema:
		m, ok := asMap(v)
		if !ok {
			return v, nil
		}
		packed := make(map[string]any, len(m))
		for k, item := range m {
			p, err := packValue(s.Values(), item)
			if err != nil {
				return nil, err
			}
			packed[k] = p
		}
		return packed, nil
	case *hambavro.UnionSchema:
		if v == nil {
			return nil, nil
		}
		for _, branch := range s.Types() {
			if branch.Type() != hambavro.Null {
				return packValue(branch, v)
			}
		}
		return nil, nil
	default:
		return coerceScalar(schema, v), nil
	}
}

func packRecord(schema *hambavro.RecordSchema, m map[string]any) (map[string]any, error) {
	record := make(map[string]any, len(schema.Fields()))
	for _, field := range schema.Fields() {
		raw, ok := m[field.Name()]
		if !ok {
			record[field.Name()] = fieldDefault(field)
			continue
		}
		packed, err := packValue(field.Type(), raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name(), err)
		}
		record[field.Name()] = packed
	}
	return record, nil
}

// fieldDefault picks the value for a schema field absent from the input map:
// the declared default when one exists, otherwise the type's zero value.
func fieldDefault(field *hambavro.Field) any {
	if field.HasDefault() {
		return field.Default()
	}
	return zeroValue(field.Type())
}

func zeroValue(schema hambavro.Schema) any {
	switch resolveSchema(schema).Type() {
	case hambavro.String:
		return ""
	case hambavro.Bytes:
		return []byte{}
	case hambavro.Int:
		return 0
	case hambavro.Long:
		return int64(0)
	case hambavro.Float:
		return float32(0)
	case hambavro.Double:
		return float64(0)
	case hambavro.Boolean:
		return false
	case hambavro.Array:
		return []any{}
	case hambavro.Map:
		return map[string]any{}
	default:
		// null, unions and nested records default to null
		return nil
	}
}

// coerceScalar converts json.Number inputs to the numeric shape the schema
// expects; other values pass through untouched.
func coerceScalar(schema hambavro.Schema, v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}

	switch schema.Type() {
	case hambavro.Int:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case hambavro.Long:
		if i, err := n.Int64(); err == nil {
			return i
		}
	case hambavro.Float:
		if f, err := n.Float64(); err == nil {
			return float32(f)
		}
	case hambavro.Double:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case hambavro.String:
		return n.String()
	}
	return v
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		converted := make(map[string]any, len(m))
		for k, val := range m {
			converted[k] = val
		}
		return converted, true
	default:
		return nil, false
	}
}

func resolveSchema(schema hambavro.Schema) hambavro.Schema {
	if ref, ok := schema.(*hambavro.RefSchema); ok {
		return ref.Schema()
	}
	return schema
}
