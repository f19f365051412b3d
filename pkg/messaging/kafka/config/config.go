// Package config loads and validates the Kafka connection configuration from
// the "kafka" sub-tree of the application's viper instance.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewKafkaConfigModule() fx.Option {
	return fx.Provide(
		newConfig,
	)
}

func newConfig(v *viper.Viper, logger *zap.Logger) (Config, error) {
	var cfg Config

	sub := v.Sub("kafka")
	if sub == nil {
		return cfg, fmt.Errorf("missing kafka configuration section")
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load kafka config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid kafka config: %w", err)
	}

	logger.Info("loaded kafka config",
		zap.String("brokers", cfg.Brokers),
		zap.String("schema_registry", cfg.SchemaRegistry.URL),
	)
	return cfg, nil
}
