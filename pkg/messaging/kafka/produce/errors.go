package produce

import "errors"

var (
	// ErrInvalidTimestampType reports a row timestamp of an unsupported shape.
	ErrInvalidTimestampType = errors.New("invalid type of timestamp")
	// ErrInvalidHeadersType reports row headers of an unsupported shape.
	ErrInvalidHeadersType = errors.New("invalid type of headers")
	// ErrInvalidPartitionType reports a row partition that is not a
	// non-negative integer.
	ErrInvalidPartitionType = errors.New("invalid type of partition")
	// ErrInvalidSourceType reports a "from" value that is neither a URI
	// string, a list of rows nor a single row.
	ErrInvalidSourceType = errors.New("invalid type of row source")
)
