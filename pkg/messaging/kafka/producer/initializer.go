package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// metadataProvider is the interface for getting Kafka metadata.
type metadataProvider interface {
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
}

var errNoBrokers = errors.New("no brokers available")

// waitForBrokers blocks until broker metadata is reachable, the timeout
// elapses or the context is cancelled. With failOnError false an unreachable
// cluster is only logged so the task can still attempt its first send.
func waitForBrokers(ctx context.Context, p metadataProvider, log *zap.Logger, timeoutSec int, failOnError bool) error {
	log.Info("waiting for kafka brokers", zap.Int("timeout_seconds", timeoutSec))

	if timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
		defer cancel()
	}

	if err := pollBrokers(ctx, p); err != nil {
		if failOnError {
			return err
		}
		log.Warn("brokers not ready, continuing", zap.Error(err))
	}

	log.Info("producer ready")
	return nil
}

func pollBrokers(ctx context.Context, p metadataProvider) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		meta, err := p.GetMetadata(nil, false, 5000)
		if err != nil {
			return fmt.Errorf("failed to get metadata: %w", err)
		}
		if len(meta.Brokers) == 0 {
			return errNoBrokers
		}
		return nil
	}, backoff.WithContext(bo, ctx))

	// surface the cause of the interruption, not the last probe error
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
