package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/routes"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/session"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/desertthunder/mvx/internal/wishlist"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The local database opens lazily: catalog-only commands never touch disk.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	identity   services.Identity
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.HomeEngine

	db *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Identity   services.Identity
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		identity:   opts.Identity,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     tasks.NewHomeEngine(opts.Catalog),
		db:         opts.DB,
	}
}

// SetLogger swaps the runner's logger, used when the TUI takes the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the lazily opened database, if any.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, browseCommand, searchCommand, wishlistCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database opens the local database on first use and runs migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	return db, nil
}

// kvStore returns the localStorage-style store over the local database.
func (r *Runner) kvStore() (*store.KVStore, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return store.NewKVStore(db, r.logger), nil
}

// sessionManager builds a resolved session manager over the local store.
func (r *Runner) sessionManager(ctx context.Context) (*session.Manager, *store.KVStore, error) {
	if r.identity == nil {
		return nil, nil, fmt.Errorf("%w: identity provider not configured", shared.ErrServiceUnavailable)
	}

	kv, err := r.kvStore()
	if err != nil {
		return nil, nil, err
	}

	mgr := session.NewManager(r.identity, kv, r.logger)
	mgr.Resolve(ctx)
	return mgr, kv, nil
}

// requireSession resolves the session and rejects signed-out callers, the
// CLI counterpart of the TUI's guarded navigation.
func (r *Runner) requireSession(ctx context.Context) (*session.Manager, *store.KVStore, error) {
	mgr, kv, err := r.sessionManager(ctx)
	if err != nil {
		return nil, nil, err
	}

	if decision := routes.NewGuard(mgr).Check(routes.WishlistPath); decision.Kind != routes.Allow {
		return nil, nil, fmt.Errorf("%w: sign in with 'mvx auth login'", shared.ErrNotAuthenticated)
	}
	return mgr, kv, nil
}

// wishlistManager loads the persisted wishlist for an authenticated caller.
func (r *Runner) wishlistManager(ctx context.Context) (*wishlist.Manager, error) {
	_, kv, err := r.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	return wishlist.NewManager(kv), nil
}

// historyRepo returns the view-history repository.
func (r *Runner) historyRepo() (*repositories.HistoryRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewHistoryRepository(db), nil
}

func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not configured, set MVX_TMDB_API_KEY or catalog.api_key", shared.ErrMissingAPIKey)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeMovieList prints a numbered movie listing.
func (r *Runner) writeMovieList(movies []models.Movie) error {
	for i, movie := range movies {
		line := fmt.Sprintf("%2d. %s", i+1, movie.Title)
		if year := movie.Year(); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		line += fmt.Sprintf("  ★ %.1f\n", movie.VoteAverage)
		if err := r.writePlain("%s", line); err != nil {
			return err
		}
	}
	return nil
}
