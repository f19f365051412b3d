package produce

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Sokol111/kafka-produce/pkg/storage"
)

// Source yields rows one at a time. Next returns io.EOF after the last row.
// Sources are single-pass; Close releases any underlying stream.
type Source interface {
	Next(ctx context.Context) (Row, error)
	Close() error
}

// ResolveSource dispatches the polymorphic "from" value to one of the three
// source shapes: a URI string naming a streamed NDJSON file of rows, a list
// of rows, or a single row. The shape is resolved exactly once, here.
func ResolveSource(ctx context.Context, from any, opener storage.Opener) (Source, error) {
	switch src := from.(type) {
	case string:
		reader, err := opener.Open(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to open row source %s: %w", src, err)
		}
		return newStreamSource(reader), nil
	case []any:
		rows := make([]Row, 0, len(src))
		for i, element := range src {
			row, ok := asRow(element)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T, expected a map", ErrInvalidSourceType, i, element)
			}
			rows = append(rows, row)
		}
		return &listSource{rows: rows}, nil
	case []map[string]any:
		rows := make([]Row, 0, len(src))
		for _, element := range src {
			rows = append(rows, Row(element))
		}
		return &listSource{rows: rows}, nil
	default:
		if row, ok := asRow(from); ok {
			return &listSource{rows: []Row{row}}, nil
		}
		return nil, fmt.Errorf("%w: %T", ErrInvalidSourceType, from)
	}
}

func asRow(v any) (Row, bool) {
	switch m := v.(type) {
	case Row:
		return m, true
	case map[string]any:
		return Row(m), true
	default:
		return nil, false
	}
}

// listSource serves a finite in-memory sequence of rows. A single row is a
// list of one.
type listSource struct {
	rows []Row
	next int
}

func (s *listSource) Next(ctx context.Context) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *listSource) Close() error { return nil }

// streamSource decodes one JSON document per row from a buffered byte
// stream. Rows are pulled strictly as fast as the caller consumes them, so
// read-ahead is bounded by the decoder's buffer regardless of source size.
type streamSource struct {
	reader  io.ReadCloser
	decoder *json.Decoder
}

func newStreamSource(reader io.ReadCloser) *streamSource {
	decoder := json.NewDecoder(bufio.NewReader(reader))
	// keep integers exact; avro and timestamp handling coerce as needed
	decoder.UseNumber()
	return &streamSource{reader: reader, decoder: decoder}
}

func (s *streamSource) Next(ctx context.Context) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row Row
	if err := s.decoder.Decode(&row); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return row, nil
}

func (s *streamSource) Close() error {
	return s.reader.Close()
}
