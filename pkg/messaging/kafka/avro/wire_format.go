package avro

import "fmt"

// buildWireFormat wraps an Avro payload in Confluent wire format:
// [0x00][schema_id (4 bytes, big-endian)][payload].
func buildWireFormat(schemaID int, payload []byte) []byte {
	result := make([]byte, 5+len(payload))
	result[0] = 0x00 // Magic byte
	result[1] = byte(schemaID >> 24)
	result[2] = byte(schemaID >> 16)
	result[3] = byte(schemaID >> 8)
	result[4] = byte(schemaID)
	copy(result[5:], payload)
	return result
}

// ParseWireFormat extracts the schema ID and Avro payload from a Confluent
// wire format message.
func ParseWireFormat(data []byte) (schemaID int, payload []byte, err error) {
	if len(data) < 5 {
		return 0, nil, fmt.Errorf("data too short: expected at least 5 bytes, got %d", len(data))
	}
	if data[0] != 0x00 {
		return 0, nil, fmt.Errorf("invalid magic byte: expected 0x00, got 0x%02x", data[0])
	}
	schemaID = int(data[1])<<24 | int(data[2])<<16 | int(data[3])<<8 | int(data[4])
	return schemaID, data[5:], nil
}
