package config

// Config represents the Kafka connection configuration for the producer side.
type Config struct {
	Brokers        string               `mapstructure:"brokers"`         // Comma-separated list of Kafka broker addresses (e.g., "localhost:9092,localhost:9093")
	Properties     map[string]string    `mapstructure:"properties"`      // Passthrough producer properties applied verbatim to the client config
	SchemaRegistry SchemaRegistryConfig `mapstructure:"schema-registry"` // Schema Registry configuration for Avro serialization
	ProducerConfig ProducerConfig       `mapstructure:"producer-config"` // Producer-specific configuration
}

// ProducerConfig represents configuration for the Kafka producer.
type ProducerConfig struct {
	ReadinessTimeoutSeconds int   `mapstructure:"readiness-timeout-seconds"` // Timeout in seconds for waiting brokers readiness (0 = no timeout, max 600s, default 30s)
	FailOnBrokerError       *bool `mapstructure:"fail-on-broker-error"`      // Whether to fail startup if brokers are not available (default true)
}

// SchemaRegistryConfig represents Confluent Schema Registry configuration.
// An empty URL disables registry integration; Avro payloads are then emitted
// as plain binary instead of Confluent wire format.
type SchemaRegistryConfig struct {
	URL           string `mapstructure:"url"`            // Schema Registry URL (e.g., "http://schema-registry:8081")
	CacheCapacity int    `mapstructure:"cache-capacity"` // Schema cache capacity (100-100000, default 1000)
}
