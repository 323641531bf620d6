package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/repositories"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
)

// flushTimeout bounds how long pending analytics beacons may delay exit.
const flushTimeout = 2 * time.Second

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	tracker    services.ClickTracker
	api        *services.APIService
	cache      *repositories.CacheRepository
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	open       func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Services left nil are built from the config by [Runner.Load].
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Tracker    services.ClickTracker
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Open       func(string) error
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
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		tracker:    opts.Tracker,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
	}
}

// Load reads the config file named by --config, applies .env and environment overrides, and
// builds any service that was not injected. It runs before every command.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
			}
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	if err := r.config.ApplyEnv(); err != nil {
		return ctx, err
	}
	if r.config.API.BaseURL == "" {
		r.logger.Warn("no catalog base URL configured", "env", shared.EnvAPIURL)
	}

	r.httpClient.Timeout = r.config.API.Timeout()
	r.wire()
	return ctx, nil
}

// wire builds the catalog, tracker and raw API client from the config. The response cache is
// optional: when the database cannot be opened the catalog runs uncached.
func (r *Runner) wire() {
	baseURL := r.config.API.BaseURL

	if r.api == nil {
		r.api = services.NewAPIService(baseURL, r.httpClient)
	}

	if r.catalog == nil {
		opts := services.CatalogOpts{
			HTTPClient: r.httpClient,
			CacheTTL:   r.config.Database.CacheTTL(),
			Logger:     shared.WithLogger(r.logger, "component", "catalog"),
		}
		if repo := r.openCache(); repo != nil {
			opts.Cache = repo
		}
		r.catalog = services.NewCatalogClient(baseURL, opts)
	}

	if r.tracker == nil {
		r.tracker = services.NewTracker(baseURL, services.TrackerOpts{
			HTTPClient:    r.httpClient,
			Logger:        shared.WithLogger(r.logger, "component", "analytics"),
			Enabled:       r.config.Analytics.Enabled && baseURL != "",
			RatePerSecond: r.config.Analytics.RatePerSecond,
		})
	}
}

func (r *Runner) openCache() *repositories.CacheRepository {
	if r.cache != nil {
		return r.cache
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("response cache disabled", "path", r.config.Database.Path, "error", err)
		return nil
	}
	r.db = db
	r.cache = repositories.NewCacheRepository(db)
	return r.cache
}

// Close flushes pending analytics and closes the database. It runs after every command.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if f, ok := r.tracker.(interface{ Flush(context.Context) }); ok {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		f.Flush(flushCtx)
		cancel()
	}

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		r.db = nil
	}
	return nil
}

// SetLogger swaps the logger, e.g. for a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		showsCommand, venuesCommand, genresCommand, blurbCommand, festivalCommand,
		apiCommand, setupCommand, cacheCommand, tuiCommand, serveCommand,
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// newTable returns a table that renders to the runner's output.
func (r *Runner) newTable(header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}
