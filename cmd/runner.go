package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/repositories"
	"github.com/desertthunder/jukeseed/internal/seeder"
	"github.com/desertthunder/jukeseed/internal/shared"
	"github.com/desertthunder/jukeseed/internal/ui"
	"github.com/urfave/cli/v3"
)

// AccountStore creates and reads database accounts.
type AccountStore interface {
	seeder.AccountCreator
	seeder.AccountReader
}

// Backend is an open connection to the document store and the repositories over it.
type Backend struct {
	Accounts AccountStore
	Users    models.Repository[*models.User]
	Sessions models.Repository[*models.Session]
	Close    func(context.Context) error
}

// Dialer opens a [Backend] for the given database settings.
type Dialer func(ctx context.Context, cfg shared.DatabaseConfig) (*Backend, error)

// DialMongo connects with [shared.NewDatabase] and wires the document store repositories.
func DialMongo(ctx context.Context, cfg shared.DatabaseConfig) (*Backend, error) {
	client, err := shared.NewDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Name)
	return &Backend{
		Accounts: repositories.NewAccountRepository(db),
		Users:    repositories.NewUserRepository(db, cfg.UsersCollection),
		Sessions: repositories.NewSessionRepository(db, cfg.SessionsCollection),
		Close:    client.Disconnect,
	}, nil
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	dial       Dialer
	lookupEnv  func(string) (string, bool)
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string // overrides the --config flag when set
	Dial       Dialer
	LookupEnv  func(string) (string, bool)
	Logger     *log.Logger
	Output     io.Writer
	Palette    *ui.Palette
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
	if opts.Dial == nil {
		opts.Dial = DialMongo
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Palette == nil {
		opts.Palette = ui.Styles
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		dial:       opts.Dial,
		lookupEnv:  opts.LookupEnv,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    opts.Palette,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		seedCommand, verifyCommand, fixturesCommand, setupCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration for a command: file (when present), then environment.
//
// A missing file is only an error when --config was given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	path := r.configPath
	if path == "" {
		path = cmd.String("config")
	}

	base := *r.config
	config := &base

	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
		}
		config = loaded
		r.logger.Debug("loaded config", "path", path)
	} else if cmd.IsSet("config") || r.configPath != "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}

	config.ApplyEnv(r.lookupEnv)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// connect dials the store and returns the backend with a close function that logs failures.
func (r *Runner) connect(ctx context.Context, config *shared.Config) (*Backend, func(), error) {
	target := shared.RedactURI(config.Database.URI())
	r.logger.Info("connecting to database", "uri", target, "database", config.Database.Name)

	backend, err := r.dial(ctx, config.Database)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if backend.Close == nil {
			return
		}
		if err := backend.Close(context.Background()); err != nil {
			r.logger.Warn("failed to disconnect", "error", err)
		}
	}
	return backend, closeFn, nil
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
