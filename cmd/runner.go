package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
	"github.com/plx-dev/plx/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *api.Client
	logger *log.Logger
	output io.Writer
	engine *tasks.ExportEngine

	storeOnce sync.Once
	storeErr  error
	db        *sql.DB
	tokens    *store.Store
	cache     *store.PlaylistCache
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Logger *log.Logger
	Output io.Writer
	Tokens *store.Store
	Cache  *store.PlaylistCache
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
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.API.BaseURL, nil, opts.Logger)
	}

	r := &Runner{
		config: opts.Config,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
		engine: tasks.NewExportEngine(opts.Client, opts.Logger),
	}

	// Pre-seeded stores skip the lazy database open; used by tests.
	if opts.Tokens != nil {
		r.storeOnce.Do(func() {
			r.tokens = opts.Tokens
			r.cache = opts.Cache
		})
	}

	return r
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// stores opens the local database on first use and returns the token store
// and playlist cache. Migrations run idempotently here so commands work
// without an explicit setup step.
func (r *Runner) stores() (*store.Store, *store.PlaylistCache, error) {
	r.storeOnce.Do(func() {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			r.storeErr = fmt.Errorf("failed to open database: %w", err)
			return
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := store.RunMigrations(db); err != nil {
			db.Close()
			r.storeErr = fmt.Errorf("failed to run migrations: %w", err)
			return
		}

		r.db = db
		r.tokens = store.New(db)
		r.cache = store.NewPlaylistCache(db)
	})

	return r.tokens, r.cache, r.storeErr
}

// authenticate loads the stored session token into the API client. Returns
// [shared.ErrNotAuthenticated] when no token is stored.
func (r *Runner) authenticate(ctx context.Context) error {
	if r.client.Authenticated() {
		return nil
	}

	tokens, _, err := r.stores()
	if err != nil {
		return err
	}

	token, err := tokens.Get(store.KeySessionToken)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: run 'plx auth login' first", shared.ErrNotAuthenticated)
	}

	return r.client.Authenticate(ctx, token)
}

// refreshToken returns the stored refresh token, or empty when none exists.
func (r *Runner) refreshToken() string {
	tokens, _, err := r.stores()
	if err != nil {
		return ""
	}

	token, err := tokens.Get(store.KeyRefreshToken)
	if err != nil {
		r.logger.Warn("refresh token read failed", "error", err)
		return ""
	}
	return token
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, playlistCommand, songsCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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
