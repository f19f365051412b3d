package config

import "github.com/samber/lo"

// applyDefaults applies default values to the configuration
func applyDefaults(cfg *Config) {
	if cfg.SchemaRegistry.CacheCapacity == 0 {
		cfg.SchemaRegistry.CacheCapacity = defaultSchemaRegistryCacheCapacity
	}

	if cfg.ProducerConfig.ReadinessTimeoutSeconds == 0 {
		cfg.ProducerConfig.ReadinessTimeoutSeconds = defaultProducerReadinessTimeout
	}
	if cfg.ProducerConfig.FailOnBrokerError == nil {
		cfg.ProducerConfig.FailOnBrokerError = lo.ToPtr(true)
	}
}
