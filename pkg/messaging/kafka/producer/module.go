package producer

import (
	"context"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewProducerModule() fx.Option {
	return fx.Provide(
		provideProducer,
	)
}

// provideProducer creates the producer and waits for broker readiness on
// start. Shutdown is owned by the production task, which must flush before
// closing; no OnStop close hook is registered here.
func provideProducer(lc fx.Lifecycle, log *zap.Logger, conf config.Config) (Producer, error) {
	p, err := New(conf, log)
	if err != nil {
		return nil, err
	}

	raw := p.(*producer).producer

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return waitForBrokers(ctx, raw.(metadataProvider), log.With(zap.String("component", "producer")),
				conf.ProducerConfig.ReadinessTimeoutSeconds, *conf.ProducerConfig.FailOnBrokerError)
		},
	})

	return p, nil
}
