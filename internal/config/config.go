package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"datapreview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	UI       UIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UpstreamConfig describes the backend serving /preview/{id}/ and /export/{id}/
type UpstreamConfig struct {
	BaseURL string
	// Timeout of zero leaves preview requests unbounded.
	Timeout time.Duration
}

// CatalogConfig holds the file catalog database settings
type CatalogConfig struct {
	DatabaseURL string
}

// UIConfig holds presentation settings
type UIConfig struct {
	Language          string
	RenderConcurrency int
}

// Driver returns the sqlx driver name matching the catalog URL
func (c CatalogConfig) Driver() string {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	upstreamConfig, err := loadUpstreamConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load upstream configuration")
	}
	config.Upstream = *upstreamConfig

	config.Server = *loadServerConfig()
	config.Catalog = *loadCatalogConfig()
	config.UI = *loadUIConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadUpstreamConfig() (*UpstreamConfig, error) {
	baseURL := os.Getenv("UPSTREAM_URL")
	if baseURL == "" {
		return nil, errors.ConfigInvalid("UPSTREAM_URL is required")
	}

	return &UpstreamConfig{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 0),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		DatabaseURL: getEnvOrDefault("DATABASE_URL", "file:catalog.db"),
	}
}

func loadUIConfig() *UIConfig {
	return &UIConfig{
		Language:          getEnvOrDefault("UI_LANGUAGE", "fr"),
		RenderConcurrency: getEnvIntOrDefault("RENDER_CONCURRENCY", 4),
	}
}

func validateConfig(config *Config) error {
	u, err := url.Parse(config.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("UPSTREAM_URL must be an absolute URL")
	}
	if config.Upstream.Timeout < 0 {
		return errors.ConfigInvalid("UPSTREAM_TIMEOUT must not be negative")
	}
	if config.UI.RenderConcurrency < 1 {
		return errors.ConfigInvalid("RENDER_CONCURRENCY must be at least 1")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
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

// LoadLocal reads the settings of commands that never reach the upstream
// backend: catalog and presentation. UPSTREAM_URL is not required.
func LoadLocal() *Config {
	return &Config{
		Server:  *loadServerConfig(),
		Catalog: *loadCatalogConfig(),
		UI:      *loadUIConfig(),
	}
}
