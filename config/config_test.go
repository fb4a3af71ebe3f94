package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so a developer's local config.yaml is not
	// picked up
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Contains(t, cfg.Server.AllowedOrigins, "chrome-extension://*")

	assert.Equal(t, "http://api.scraperapi.com", cfg.Scraper.RelayURL)
	assert.Equal(t, 6, cfg.Scraper.MaxParallel)
	assert.Equal(t, 2.0, cfg.Scraper.RatePerSec)
	assert.Empty(t, cfg.Scraper.APIKey)

	assert.Equal(t, "jewelry_prices.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FIREFLY_SCRAPER_API_KEY", "relay-key")
	t.Setenv("FIREFLY_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "relay-key", cfg.Scraper.APIKey)
	assert.Equal(t, "9100", cfg.Server.Port)
}

func TestBaseURLs(t *testing.T) {
	competitors := CompetitorsConfig{
		Truecarat: "https://truecarat.example.com",
		Emori:     "https://emori.example.com",
	}

	urls := competitors.BaseURLs()

	assert.Len(t, urls, 6)
	assert.Equal(t, "https://truecarat.example.com", urls["truecarat"])
	assert.Equal(t, "https://emori.example.com", urls["emori"])
	// Unconfigured competitors appear with empty base URLs; the registry
	// still constructs their scrapers
	assert.Empty(t, urls["varniya"])
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Scraper: ScraperConfig{
				RelayURL:    "http://api.scraperapi.com",
				MaxParallel: 6,
				RatePerSec:  2.0,
			},
			Database: DatabaseConfig{Path: "test.db"},
		}
	}

	assert.NoError(t, validate(valid()))

	cfg := valid()
	cfg.Scraper.RelayURL = ""
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Scraper.MaxParallel = 0
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Scraper.RatePerSec = 0
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Database.Path = ""
	assert.Error(t, validate(cfg))
}
