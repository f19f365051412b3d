// Package config provides the application's viper instance as an fx module.
// Configuration is read from a single file resolved from the CONFIG_FILE
// environment variable (optionally seeded from a .env file), with environment
// variables overriding file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// viperConfig holds internal configuration options for the Viper module.
type viperConfig struct {
	configPath   *string
	noConfigFile bool
}

// ViperOption is a functional option for configuring the Viper module.
type ViperOption func(*viperConfig)

// WithConfigPath sets a direct path to the configuration file.
// Overrides the default behavior of resolving from environment variables.
func WithConfigPath(path string) ViperOption {
	return func(cfg *viperConfig) {
		cfg.configPath = &path
	}
}

// WithoutConfigFile disables loading of any config file.
// Viper will still be available for DI but with no file-based configuration.
func WithoutConfigFile() ViperOption {
	return func(cfg *viperConfig) {
		cfg.noConfigFile = true
	}
}

// FilePath represents the path to a configuration file.
// Empty string means no config file will be loaded.
type FilePath string

// NewViperModule creates an fx module for Viper configuration.
// By default, resolves config path from CONFIG_FILE environment variable.
// If env var is not set, creates an empty Viper instance.
func NewViperModule(opts ...ViperOption) fx.Option {
	cfg := &viperConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Module("viper",
		fx.Supply(resolveConfigPath(cfg)),
		fx.Provide(newViper),
		fx.Invoke(logViperConfig),
	)
}

func logViperConfig(logger *zap.Logger, v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		logger.Info("no config file specified, using environment variables only")
		return
	}
	logger.Info("configuration loaded",
		zap.String("configFile", v.ConfigFileUsed()),
		zap.Int("settingsCount", len(v.AllSettings())),
	)
}

// resolveConfigPath determines the config file path. A direct path wins over
// the CONFIG_FILE environment variable; a .env file may supply the latter.
func resolveConfigPath(cfg *viperConfig) FilePath {
	if cfg.noConfigFile {
		return ""
	}
	if cfg.configPath != nil {
		return FilePath(*cfg.configPath)
	}

	// Load .env if present - silently ignore when missing
	_ = godotenv.Load()

	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		return FilePath(configFile)
	}
	return ""
}

// newViper must not depend on the logger: the logger reads its own config
// from this viper instance.
func newViper(configFile FilePath) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		return v, nil
	}

	v.SetConfigFile(string(configFile))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}

	return v, nil
}
