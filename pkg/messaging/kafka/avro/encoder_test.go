package avro

import (
	"encoding/json"
	"testing"

	hambavro "github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSchema = `{
	"type": "record",
	"name": "Point",
	"fields": [
		{"name": "x", "type": "int"},
		{"name": "y", "type": "string"}
	]
}`

func TestNewEncoder(t *testing.T) {
	t.Run("parses the schema at construction", func(t *testing.T) {
		enc, err := NewEncoder(Config{Schema: pointSchema, Subject: "t-value"})

		require.NoError(t, err)
		assert.NotNil(t, enc)
	})

	t.Run("rejects a malformed schema", func(t *testing.T) {
		_, err := NewEncoder(Config{Schema: "{not a schema", Subject: "t-value"})

		assert.ErrorIs(t, err, ErrSchemaParse)
	})
}

func TestEncoder_Encode(t *testing.T) {
	schema := hambavro.MustParse(pointSchema)

	t.Run("emits plain binary without a registry", func(t *testing.T) {
		enc, err := NewEncoder(Config{Schema: pointSchema, Subject: "t-value"})
		require.NoError(t, err)

		data, err := enc.Encode(map[string]any{"x": json.Number("1"), "y": "hi"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, hambavro.Unmarshal(schema, data, &decoded))
		assert.EqualValues(t, 1, decoded["x"])
		assert.Equal(t, "hi", decoded["y"])
	})

	t.Run("fills absent fields with zero values", func(t *testing.T) {
		enc, err := NewEncoder(Config{Schema: pointSchema, Subject: "t-value"})
		require.NoError(t, err)

		data, err := enc.Encode(map[string]any{"x": json.Number("7")})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, hambavro.Unmarshal(schema, data, &decoded))
		assert.EqualValues(t, 7, decoded["x"])
		assert.Equal(t, "", decoded["y"])
	})

	t.Run("encodes a bare scalar schema", func(t *testing.T) {
		enc, err := NewEncoder(Config{Schema: `"string"`, Subject: "t-key"})
		require.NoError(t, err)

		data, err := enc.Encode("k1")
		require.NoError(t, err)

		var decoded string
		require.NoError(t, hambavro.Unmarshal(hambavro.MustParse(`"string"`), data, &decoded))
		assert.Equal(t, "k1", decoded)
	})

	t.Run("rejects a non-map value for a record schema", func(t *testing.T) {
		enc, err := NewEncoder(Config{Schema: pointSchema, Subject: "t-value"})
		require.NoError(t, err)

		_, err = enc.Encode(42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Point")
	})
}

func TestWireFormat(t *testing.T) {
	t.Run("round-trips the schema id and payload", func(t *testing.T) {
		payload := []byte{0x02, 0x04, 0x68, 0x69}

		framed := buildWireFormat(1234, payload)

		assert.Equal(t, byte(0x00), framed[0])
		id, got, err := ParseWireFormat(framed)
		require.NoError(t, err)
		assert.Equal(t, 1234, id)
		assert.Equal(t, payload, got)
	})

	t.Run("rejects a truncated message", func(t *testing.T) {
		_, _, err := ParseWireFormat([]byte{0x00, 0x00})

		assert.Error(t, err)
	})

	t.Run("rejects a wrong magic byte", func(t *testing.T) {
		_, _, err := ParseWireFormat([]byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x02})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "magic byte")
	})
}
