package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	GoldAPI GoldAPIConfig
	Catalog CatalogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GoldAPIConfig holds gold price API configuration.
// The API key is intentionally only sourced from config/env and never
// embedded in source.
type GoldAPIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig holds static catalog configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/goldgallery/")

	// Environment variable settings
	v.SetEnvPrefix("GOLDGALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Gold API defaults. The empty api_key default registers the key with
	// viper so the env override is picked up during Unmarshal.
	v.SetDefault("goldapi.api_key", "")
	v.SetDefault("goldapi.base_url", "https://api.api-ninjas.com/v1")
	v.SetDefault("goldapi.timeout", "10s")

	// Catalog defaults
	v.SetDefault("catalog.path", "products.json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.GoldAPI.APIKey == "" {
		return fmt.Errorf("gold API key is required (set GOLDGALLERY_GOLDAPI_API_KEY)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path must not be empty")
	}

	if config.GoldAPI.Timeout <= 0 {
		return fmt.Errorf("gold API timeout must be positive, got: %s", config.GoldAPI.Timeout)
	}

	return nil
}
