package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/routes"
	"github.com/desertthunder/mvx/internal/session"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/ui"
	"github.com/desertthunder/mvx/internal/wishlist"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive discovery interface.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	if r.identity == nil {
		return fmt.Errorf("%w: identity provider not configured", shared.ErrServiceUnavailable)
	}

	kv, err := r.kvStore()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.UI.LogFile
	if logPath == "" {
		logPath = "./tmp/mvx-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	sess := session.NewManager(r.identity, kv, fileLogger)
	guard := routes.NewGuard(sess)
	wl := wishlist.NewManager(kv)

	history, err := r.historyRepo()
	if err != nil {
		return err
	}

	interval := time.Duration(r.config.UI.CarouselIntervalMS) * time.Millisecond
	model := ui.NewModel(ctx, r.catalog, r.engine, sess, guard, wl, history, kv, interval)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
