package storage

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the S3-compatible endpoint used for s3:// row sources. All
// fields may stay empty when only local files are read.
type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
	UseSSL    bool   `mapstructure:"use-ssl"`
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config

	sub := v.Sub("storage")
	if sub == nil {
		return cfg, nil
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load storage config: %w", err)
	}
	return cfg, nil
}
