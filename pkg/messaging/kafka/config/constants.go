package config

const (
	// Default values.
	defaultSchemaRegistryCacheCapacity = 1000
	defaultProducerReadinessTimeout    = 30

	// Validation bounds.
	minSchemaCacheCapacity = 100
	maxSchemaCacheCapacity = 100000
	maxReadinessTimeout    = 600 // 10 minutes in seconds
)
