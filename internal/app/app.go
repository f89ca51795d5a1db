package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/cli"
	"github.com/agbru/beaconfix/internal/config"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/fusion"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/resolver"
	"github.com/agbru/beaconfix/internal/trilateration"
	"github.com/agbru/beaconfix/internal/ui"
)

// Application represents the beaconfix application instance.
type Application struct {
	Config    config.AppConfig
	Resolver  resolver.Resolver
	ErrWriter io.Writer

	programName string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithResolver replaces the resolver built from the configuration.
func WithResolver(r resolver.Resolver) AppOption {
	return func(a *Application) { a.Resolver = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, programName: "beaconfix"}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.Resolver == nil {
		app.Resolver = NewResolver(cfg)
	}
	return app, nil
}

// NewResolver builds the default resolver: trilateration against the default
// beacon registry and majority-vote message fusion.
func NewResolver(cfg config.AppConfig) *resolver.Service {
	return resolver.New(
		trilateration.New(beacon.DefaultRegistry()),
		fusion.Fuser{SkipLeadingWord: cfg.SkipLeadingWord},
	)
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	logger, closer, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closer.Close()

	if a.Config.Input != "" {
		return a.runResolve(ctx, logger, out)
	}
	return a.runServe(ctx, logger)
}

// newLogger builds the application logger. The round monitor owns the
// terminal, so without a log file its console output is discarded.
func (a *Application) newLogger() (logging.Logger, io.Closer, error) {
	console := a.ErrWriter
	if a.Config.TUI && a.Config.LogFile == "" {
		console = io.Discard
	}
	return logging.New(logging.Options{
		Level:     a.Config.LogLevel,
		File:      a.Config.LogFile,
		MaxSizeMB: a.Config.LogMaxSize,
		Component: "beaconfix",
	}, console)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
