package config

import (
	"fmt"
	"strings"
)

// validateConfig validates the entire Kafka configuration
func validateConfig(cfg *Config) error {
	if err := validateBrokers(cfg); err != nil {
		return err
	}
	if err := validateSchemaRegistry(&cfg.SchemaRegistry); err != nil {
		return err
	}
	if err := validateProducerConfig(&cfg.ProducerConfig); err != nil {
		return err
	}
	return nil
}

// validateBrokers validates Kafka brokers configuration
func validateBrokers(cfg *Config) error {
	if strings.TrimSpace(cfg.Brokers) == "" {
		return fmt.Errorf("kafka brokers cannot be empty")
	}
	return nil
}

// validateSchemaRegistry validates Schema Registry configuration.
// The URL is optional: without it Avro payloads skip registry integration.
func validateSchemaRegistry(cfg *SchemaRegistryConfig) error {
	if cfg.CacheCapacity > 0 && (cfg.CacheCapacity < minSchemaCacheCapacity || cfg.CacheCapacity > maxSchemaCacheCapacity) {
		return fmt.Errorf("schema registry cache capacity must be between %d and %d, got: %d",
			minSchemaCacheCapacity, maxSchemaCacheCapacity, cfg.CacheCapacity)
	}
	return nil
}

// validateProducerConfig validates producer configuration
func validateProducerConfig(cfg *ProducerConfig) error {
	if cfg.ReadinessTimeoutSeconds > maxReadinessTimeout {
		return fmt.Errorf("producer readiness timeout cannot exceed %d seconds, got: %d",
			maxReadinessTimeout, cfg.ReadinessTimeoutSeconds)
	}
	return nil
}
