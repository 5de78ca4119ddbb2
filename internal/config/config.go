package config

import (
	"os"
	"strconv"
	"time"

	"goeda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AIConfig holds inference service settings.
// APIKey may be empty: profiling works without it and the insight
// service reports a configuration error instead of crashing.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DataConfig holds dataset ingestion settings
type DataConfig struct {
	MaxUploadBytes int64
}

const (
	defaultBaseURL        = "https://api.euron.one/api/v1/euri"
	defaultModel          = "gemini-2.5-flash"
	defaultTimeout        = 60 * time.Second
	defaultMaxUploadBytes = 50 * 1024 * 1024 // 50MB
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		AI: AIConfig{
			APIKey:  os.Getenv("EURI_API_KEY"),
			BaseURL: getEnvOrDefault("EURI_BASE_URL", defaultBaseURL),
			Model:   getEnvOrDefault("EURI_MODEL", defaultModel),
			Timeout: getEnvDurationOrDefault("EURI_TIMEOUT", defaultTimeout),
		},
		Data: DataConfig{
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("max upload size must be positive")
	}
	if config.AI.Timeout <= 0 {
		return errors.ConfigInvalid("AI timeout must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
