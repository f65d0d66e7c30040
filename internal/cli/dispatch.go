// Package cli wires flags, configuration, logging and the store into a run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notionhabit/internal/commands"
	"notionhabit/internal/config"
	"notionhabit/internal/exitcode"
	"notionhabit/internal/habit"
	"notionhabit/internal/logging"
	"notionhabit/internal/service"
)

// StoreFactory creates a Store from config.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Store, error)

// ConfigLoader loads configuration from a config directory.
type ConfigLoader func(dir string) (*config.Config, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry   *commands.Registry
	factory    StoreFactory
	loadConfig ConfigLoader
	now        func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfigLoader replaces config.Load.
func WithConfigLoader(load ConfigLoader) Option {
	return func(d *Dispatcher) { d.loadConfig = load }
}

// WithClock overrides the clock used for "today" and log file names.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:   registry,
		factory:    factory,
		loadConfig: config.Load,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// exitError carries an exit code. logged is set when the error already went
// through the logger and must not be printed again.
type exitError struct {
	code   int
	err    error
	logged bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type rootFlags struct {
	configDir string
	logDir    string
	verbose   bool
	debug     bool
	logToFile bool
}

// Run parses arguments and runs the selected actions.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := d.newRootCommand(out, errOut)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.logged {
			fmt.Fprintf(errOut, "error: %s\n", ee.err)
		}
		return ee.code
	}

	// Flag and argument errors from cobra
	fmt.Fprintf(errOut, "error: %s\n", err)
	return exitcode.UserError
}

func (d *Dispatcher) newRootCommand(out, errOut io.Writer) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "notionhabit",
		Short:         "Track and analyze Notion habits from the command line.",
		Long:          helpText,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(d.registry.Enabled()) == 0 {
				return cmd.Help()
			}
			return d.execute(cmd.Context(), flags, out, errOut)
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config", "", "override config directory")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "provide informational logging")
	pf.BoolVar(&flags.debug, "debug", false, "provide debug logging")
	pf.BoolVarP(&flags.logToFile, "log", "L", false, "store log output in a timestamped file")
	pf.StringVar(&flags.logDir, "log-dir", "", "override log directory")

	for _, c := range d.registry.All() {
		c.RegisterFlags(root.Flags())
	}

	root.AddCommand(newVersionCommand())
	return root
}

func (d *Dispatcher) execute(ctx context.Context, flags rootFlags, out, errOut io.Writer) error {
	cfg, err := d.loadConfig(flags.configDir)
	if err != nil {
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	cfg.Verbose = flags.verbose
	cfg.Debug = flags.debug
	cfg.LogToFile = flags.logToFile
	if flags.logDir != "" {
		cfg.LogDir = flags.logDir
	}

	opts := logging.Options{Verbose: cfg.Verbose, Debug: cfg.Debug}
	createdLogDir := false
	if cfg.LogToFile {
		createdLogDir, err = cfg.EnsureLogDir()
		if err != nil {
			return &exitError{code: exitcode.ConfigError, err: fmt.Errorf("create log dir: %w", err)}
		}
		opts.File = cfg.LogFilePath(d.now())
	}

	logger, closeLog, err := logging.New(opts, errOut)
	if err != nil {
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	defer func() { _ = closeLog() }()

	if createdLogDir {
		logger.Info("created log folder", zap.String("dir", cfg.LogDir))
	}
	if opts.File != "" {
		logger.Debug("logging to file", zap.String("path", opts.File))
	}

	store, err := d.factory(ctx, cfg, logger)
	if err != nil {
		logger.Error("cannot connect to habit store", zap.Error(err))
		return &exitError{code: exitcode.FromError(err), err: err, logged: true}
	}

	tracker := habit.NewTracker(store, logger, habit.WithClock(d.now))
	env := &commands.Env{
		Config:   cfg,
		Logger:   logger,
		Tracker:  tracker,
		Analyzer: habit.NewAnalyzer(tracker, logger),
	}

	var deferred error
	for _, c := range d.registry.Enabled() {
		logger.Debug("running action", zap.String("action", c.Name()))
		if err := c.Run(ctx, env, out); err != nil {
			var windowErr *service.InvalidWindowError
			if errors.As(err, &windowErr) {
				// Already logged per habit; the run continues.
				deferred = err
				continue
			}
			logger.Error(c.Name()+" failed", zap.Error(err))
			return &exitError{code: exitcode.FromError(err), err: err, logged: true}
		}
	}

	if deferred != nil {
		return &exitError{code: exitcode.FromError(deferred), err: deferred, logged: true}
	}
	return nil
}

const helpText = `notionhabit reads habit records from a Notion database, closes overdue
To-Do habits and prints per-habit statistics.

Actions run in this order when combined: --list, --update, --analyze.

Configuration is read from <config dir>/config.yaml, <config dir>/.env and
NOTION_HABIT_* environment variables (token, database_id, base_url,
notion_version, timeout, max_pages, pace, log_dir).`
