package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./mvx.db" {
			t.Errorf("expected database path ./mvx.db, got %s", config.Database.Path)
		}

		if config.Catalog.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected TMDB base URL, got %s", config.Catalog.BaseURL)
		}

		if config.UI.CarouselIntervalMS != 4000 {
			t.Errorf("expected carousel interval 4000, got %d", config.UI.CarouselIntervalMS)
		}

		if config.Identity.CallbackPort != 3000 {
			t.Errorf("expected callback port 3000, got %d", config.Identity.CallbackPort)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
base_url = "https://catalog.example.com/3"
api_key = "test_catalog_key"
rate_limit = 2.5

[identity]
base_url = "https://identity.example.com/v1"
api_key = "test_identity_key"
callback_port = 9999

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[ui]
carousel_interval_ms = 1000
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Catalog.APIKey != "test_catalog_key" {
			t.Errorf("expected catalog api key test_catalog_key, got %s", config.Catalog.APIKey)
		}

		if config.UI.CarouselIntervalMS != 1000 {
			t.Errorf("expected carousel interval 1000, got %d", config.UI.CarouselIntervalMS)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		t.Setenv("MVX_TMDB_API_KEY", "env_key")
		t.Setenv("MVX_DB_PATH", "/env/override.db")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.APIKey != "env_key" {
			t.Errorf("expected env override env_key, got %s", config.Catalog.APIKey)
		}

		if config.Database.Path != "/env/override.db" {
			t.Errorf("expected env override /env/override.db, got %s", config.Database.Path)
		}
	})
}
