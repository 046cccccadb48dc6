package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Catalog  CatalogConfig
	Registry RegistryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AIConfig holds AI completion API configuration
type AIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

/// CatalogConfig holds catalog API credentials. These are soft-required:
// absence degrades catalog calls to not_configured results instead of
// failing startup.
type CatalogConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
}

// RegistryConfig holds duplicate-spec registry configuration
type RegistryConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/listify/")

	// Environment variable settings
	v.SetEnvPrefix("LISTIFY")
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
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://api.openai.com")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.3)

	// Catalog credentials default to unset; imports degrade gracefully
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.consumer_key", "")
	v.SetDefault("catalog.consumer_secret", "")

	// Registry defaults
	v.SetDefault("registry.type", "memory")
	v.SetDefault("registry.redis_url", "")
	v.SetDefault("registry.ttl", "0") // process lifetime
}

// validate validates the configuration
func validate(config *Config) error {
	if config.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required (set LISTIFY_AI_API_KEY)")
	}

	if config.Registry.Type != "memory" && config.Registry.Type != "redis" {
		return fmt.Errorf("registry type must be 'memory' or 'redis', got: %s", config.Registry.Type)
	}

	if config.Registry.Type == "redis" && config.Registry.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when registry type is 'redis'")
	}

	return nil
}
