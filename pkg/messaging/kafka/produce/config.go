package produce

import (
	"fmt"
	"strings"

	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/serde"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config is the configuration surface of one production task.
type Config struct {
	Topic           string     `mapstructure:"topic"`            // Target topic (required)
	From            any        `mapstructure:"from"`             // Row source: URI string, list of rows or a single row (required)
	KeySerializer   serde.Type `mapstructure:"key-serializer"`   // Serialization kind for keys (required)
	ValueSerializer serde.Type `mapstructure:"value-serializer"` // Serialization kind for values (required)
	KeyAvroSchema   string     `mapstructure:"key-avro-schema"`  // Avro schema JSON, required when key-serializer is AVRO
	ValueAvroSchema string     `mapstructure:"value-avro-schema"` // Avro schema JSON, required when value-serializer is AVRO
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if c.From == nil {
		return fmt.Errorf("from cannot be empty")
	}
	if err := validateSerializer("key", c.KeySerializer, c.KeyAvroSchema); err != nil {
		return err
	}
	return validateSerializer("value", c.ValueSerializer, c.ValueAvroSchema)
}

func validateSerializer(side string, t serde.Type, schema string) error {
	switch t {
	case serde.TypeString, serde.TypeBytes, serde.TypeJSON:
		return nil
	case serde.TypeAvro:
		if strings.TrimSpace(schema) == "" {
			return fmt.Errorf("%s-avro-schema is required when %s-serializer is %s", side, side, serde.TypeAvro)
		}
		return nil
	case "":
		return fmt.Errorf("%s-serializer cannot be empty", side)
	default:
		return fmt.Errorf("%s-serializer: %w: %q", side, serde.ErrUnknownType, t)
	}
}

func NewProduceConfigModule() fx.Option {
	return fx.Provide(
		newConfig,
	)
}

func newConfig(v *viper.Viper, logger *zap.Logger) (Config, error) {
	var cfg Config

	sub := v.Sub("produce")
	if sub == nil {
		return cfg, fmt.Errorf("missing produce configuration section")
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load produce config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid produce config: %w", err)
	}

	logger.Info("loaded produce config",
		zap.String("topic", cfg.Topic),
		zap.String("key_serializer", string(cfg.KeySerializer)),
		zap.String("value_serializer", string(cfg.ValueSerializer)),
	)
	return cfg, nil
}
