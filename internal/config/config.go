package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Enhancer EnhancerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EnhancerProviderConfig holds settings for a single LLM enhancement
// provider.
type EnhancerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// EnhancerConfig holds LLM enhancement settings. When Enabled is false the
// pipeline runs extraction and validation only.
type EnhancerConfig struct {
	Enabled   bool                   `mapstructure:"enabled"`
	Primary   EnhancerProviderConfig `mapstructure:"primary"`
	Secondary EnhancerProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary enhancer provider config, or nil if
// not configured.
func (e *EnhancerConfig) SecondaryConfig() *EnhancerProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// Load reads configuration from environment variables with the INVOX prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Enhancer defaults
	v.SetDefault("enhancer.enabled", false)
	v.SetDefault("enhancer.primary.provider", "openai")
	v.SetDefault("enhancer.primary.api_key", "")
	v.SetDefault("enhancer.primary.default_model", "")
	v.SetDefault("enhancer.primary.timeout_secs", 120)
	v.SetDefault("enhancer.secondary.provider", "")
	v.SetDefault("enhancer.secondary.api_key", "")
	v.SetDefault("enhancer.secondary.default_model", "")
	v.SetDefault("enhancer.secondary.timeout_secs", 120)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Enhancer.Enabled && cfg.Enhancer.Primary.APIKey == "" {
		return nil, fmt.Errorf("enhancer enabled but enhancer.primary.api_key is empty")
	}

	return &cfg, nil
}
