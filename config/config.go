package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Scraper     ScraperConfig
	Competitors CompetitorsConfig
	Database    DatabaseConfig
	Cache       CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds outbound scraping configuration
type ScraperConfig struct {
	// APIKey is the ScraperAPI-style relay credential; when empty all
	// fetches go directly to the target site
	APIKey      string  `mapstructure:"api_key"`
	RelayURL    string  `mapstructure:"relay_url"`
	MaxParallel int     `mapstructure:"max_parallel"`
	RatePerSec  float64 `mapstructure:"rate_per_sec"`
}

// CompetitorsConfig maps competitor ids to their base URLs. Missing
// entries are tolerated; the matching scraper fails at fetch time instead
// of at startup so partially configured deployments still work.
type CompetitorsConfig struct {
	Truecarat     string `mapstructure:"truecarat"`
	HouseOfQuadri string `mapstructure:"house_of_quadri"`
	Emori         string `mapstructure:"emori"`
	Varniya       string `mapstructure:"varniya"`
	Avira         string `mapstructure:"avira"`
	JewelBox      string `mapstructure:"jewel_box"`
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds search-result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/firefly/")

	// Environment variable settings (FIREFLY_SCRAPER_API_KEY etc.)
	v.SetEnvPrefix("FIREFLY")
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
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*", "http://localhost:3000"})

	// Scraper defaults
	v.SetDefault("scraper.api_key", "")
	v.SetDefault("scraper.relay_url", "http://api.scraperapi.com")
	v.SetDefault("scraper.max_parallel", 6)
	v.SetDefault("scraper.rate_per_sec", 2.0)

	// Database defaults
	v.SetDefault("database.path", "jewelry_prices.db")

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Scraper.RelayURL == "" {
		return fmt.Errorf("scraper relay URL must not be empty")
	}

	if config.Scraper.MaxParallel < 1 {
		return fmt.Errorf("scraper max_parallel must be at least 1, got: %d", config.Scraper.MaxParallel)
	}

	if config.Scraper.RatePerSec <= 0 {
		return fmt.Errorf("scraper rate_per_sec must be positive, got: %g", config.Scraper.RatePerSec)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	return nil
}

// BaseURLs returns the competitor id to base URL mapping in registry order
func (c CompetitorsConfig) BaseURLs() map[string]string {
	return map[string]string{
		"truecarat":       c.Truecarat,
		"house_of_quadri": c.HouseOfQuadri,
		"emori":           c.Emori,
		"varniya":         c.Varniya,
		"avira":           c.Avira,
		"jewel_box":       c.JewelBox,
	}
}
