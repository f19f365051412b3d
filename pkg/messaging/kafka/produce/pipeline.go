package produce

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/producer"
	"go.uber.org/zap"
)

// pipeline pulls rows from a source, builds one message per row and submits
// it to the producer. A single logical worker drives the sequence; the
// producer's internal queue is the only buffering between the source and the
// network, so a saturated client throttles the reads.
type pipeline struct {
	builder  *recordBuilder
	producer producer.Producer
	log      *zap.Logger
}

func newPipeline(builder *recordBuilder, p producer.Producer, log *zap.Logger) *pipeline {
	return &pipeline{
		builder:  builder,
		producer: p,
		log:      log.With(zap.String("component", "pipeline")),
	}
}

// Run consumes the source to exhaustion and returns the number of messages
// accepted by the producer. Rows are submitted in source order; the first
// failing row aborts the run with its ordinal in the error, and the count of
// already-accepted sends is returned alongside.
func (p *pipeline) Run(ctx context.Context, source Source) (int64, error) {
	var count int64

	for {
		row, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read row %d: %w", count, err)
		}

		message, err := p.builder.Build(row)
		if err != nil {
			return count, fmt.Errorf("failed to build record for row %d: %w", count, err)
		}

		if err := p.producer.Send(ctx, message); err != nil {
			return count, fmt.Errorf("failed to send row %d: %w", count, err)
		}
		count++
	}

	p.log.Debug("source exhausted", zap.Int64("rows", count))
	return count, nil
}
