package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if svc, err := services.NewTMDBService(config.Catalog.BaseURL, config.Catalog.APIKey, config.Catalog.RateLimit, nil); err == nil {
		catalog = svc
	}

	var identity services.Identity
	if svc, err := services.NewIdentityService(config.Identity.BaseURL, config.Identity.APIKey, nil); err == nil {
		identity = svc
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Catalog:  catalog,
		Identity: identity,
		Logger:   logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "mvx",
		Usage:    "Discover movies, keep a wishlist, and browse from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
