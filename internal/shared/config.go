package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// with environment variable overrides applied on top.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Identity IdentityConfig `toml:"identity"`
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
}

// CatalogConfig contains movie catalog API settings.
type CatalogConfig struct {
	BaseURL   string  `toml:"base_url" env:"MVX_TMDB_BASE_URL"`
	APIKey    string  `toml:"api_key" env:"MVX_TMDB_API_KEY"`
	ImageBase string  `toml:"image_base" env:"MVX_TMDB_IMAGE_BASE"`
	RateLimit float64 `toml:"rate_limit" env:"MVX_TMDB_RATE_LIMIT"`
}

// IdentityConfig contains identity provider settings.
type IdentityConfig struct {
	BaseURL      string `toml:"base_url" env:"MVX_IDENTITY_BASE_URL"`
	APIKey       string `toml:"api_key" env:"MVX_IDENTITY_API_KEY"`
	LoginPageURL string `toml:"login_page_url" env:"MVX_IDENTITY_LOGIN_PAGE"`
	CallbackPort int    `toml:"callback_port" env:"MVX_IDENTITY_CALLBACK_PORT"`
}

// DatabaseConfig contains local state database settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"MVX_DB_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	CarouselIntervalMS int    `toml:"carousel_interval_ms"`
	LogFile            string `toml:"log_file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies MVX_* environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
//
// Environment overrides still apply so a bare MVX_TMDB_API_KEY is enough to run.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if err := env.Parse(&config); err != nil {
		panic(fmt.Sprintf("failed to parse environment overrides: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
