package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	USDA      USDAConfig
	Analysis  AnalysisConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig selects where foods and reference intakes are loaded from
type CatalogConfig struct {
	Source string `mapstructure:"source"` // "embedded", "file", "sqlite" or "postgres"
	Path   string `mapstructure:"path"`   // catalog file or SQLite database
	DSN    string `mapstructure:"dsn"`    // postgres connection string
	Seed   bool   `mapstructure:"seed"`   // seed an empty database from the embedded catalog
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
	USDA  int `mapstructure:"usda"` // USDA API requests per hour
}

// USDAConfig holds USDA API configuration, used by the catalog importer
type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// AnalysisConfig holds scoring engine options
type AnalysisConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Catalog sources
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Load loads configuration from environment variables and config files.
// Outside production a .env file in the working directory is read first.
func Load() (*Config, error) {
	if os.Getenv("MEALSCORE_SERVER_ENVIRONMENT") != "production" {
		if err := loadEnvFile(); err != nil {
			return nil, fmt.Errorf("error reading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealscore/")

	// Environment variable settings
	v.SetEnvPrefix("MEALSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
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

// loadEnvFile loads .env from the working directory if present. Variables
// already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.source", SourceEmbedded)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("catalog.seed", true)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.usda", 1000)

	// USDA defaults
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")

	v.SetDefault("analysis.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case SourceEmbedded:
	case SourceFile, SourceSQLite:
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required for source %q (set MEALSCORE_CATALOG_PATH)", config.Catalog.Source)
		}
	case SourcePostgres:
		if config.Catalog.DSN == "" {
			return fmt.Errorf("catalog DSN is required for source %q (set MEALSCORE_CATALOG_DSN)", config.Catalog.Source)
		}
	default:
		return fmt.Errorf("catalog source must be one of embedded, file, sqlite, postgres, got: %s", config.Catalog.Source)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "memory" && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 || config.RateLimit.USDA < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	return nil
}

// ValidateUSDA checks the settings the catalog importer needs
func (c *Config) ValidateUSDA() error {
	if c.USDA.APIKey == "" {
		return fmt.Errorf("USDA API key is required (set MEALSCORE_USDA_API_KEY)")
	}
	if c.USDA.BaseURL == "" {
		return fmt.Errorf("USDA base URL is required (set MEALSCORE_USDA_BASE_URL)")
	}
	return nil
}
