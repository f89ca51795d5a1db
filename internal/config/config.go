package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// EnvPrefix is the prefix of every environment variable read by the
// application, e.g. BEACONFIX_ADDR.
const EnvPrefix = "BEACONFIX_"

// Default values for the configuration.
const (
	DefaultAddr         = ":8080"
	DefaultRoundTimeout = 10 * time.Second
	DefaultReadTimeout  = 5 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogMaxSizeMB = 10
)

// AppConfig aggregates the application's configuration parameters, populated
// from command-line flags, environment variables and an optional YAML file.
type AppConfig struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// RoundTimeout is how long a split round waits for its third reading.
	RoundTimeout time.Duration
	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a response. Zero derives it from RoundTimeout.
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown. Zero derives it from RoundTimeout.
	ShutdownTimeout time.Duration

	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFile, when set, sends logs to a rotating file.
	LogFile string
	// LogMaxSize is the rotation size of LogFile in megabytes.
	LogMaxSize int

	// Input is a single-shot request file to resolve instead of serving.
	Input string
	// Split replays Input as three concurrent submissions.
	Split bool
	// OutputFile, when set, receives the result of an Input run.
	OutputFile string
	// Quiet prints a compact single-line result.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// TUI shows the live round monitor while serving.
	TUI bool
	// SkipLeadingWord selects the legacy message anchor scan.
	SkipLeadingWord bool

	// Completion prints a shell completion script for the named shell.
	Completion string
	// ConfigFile is the optional YAML configuration file.
	ConfigFile string
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: An apperrors.ConfigError describing the first problem found.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" && c.Input == "" {
		return apperrors.NewConfigError("listen address must not be empty")
	}
	if c.RoundTimeout <= 0 {
		return apperrors.NewConfigError("round timeout must be strictly positive: %s", c.RoundTimeout)
	}
	for name, d := range map[string]time.Duration{
		"read timeout":     c.ReadTimeout,
		"write timeout":    c.WriteTimeout,
		"shutdown timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			return apperrors.NewConfigError("%s must not be negative: %s", name, d)
		}
	}
	if c.LogMaxSize <= 0 {
		return apperrors.NewConfigError("log max size must be strictly positive: %d", c.LogMaxSize)
	}
	if c.Split && c.Input == "" {
		return apperrors.NewConfigError("--split requires --input")
	}
	if c.TUI && c.Input != "" {
		return apperrors.NewConfigError("--tui cannot be combined with --input")
	}
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish":
		default:
			return apperrors.NewConfigError("unsupported shell for completion: %q (use bash, zsh or fish)", c.Completion)
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments and builds the configuration.
// Values are resolved with the priority flags > environment > YAML file >
// defaults.
//
// Parameters:
//   - programName: The name of the program, used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives flag parsing errors and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address.")
	fs.DurationVar(&config.RoundTimeout, "round-timeout", DefaultRoundTimeout, "How long a split round waits for its third reading.")
	fs.DurationVar(&config.ReadTimeout, "read-timeout", DefaultReadTimeout, "HTTP request read timeout.")
	fs.DurationVar(&config.WriteTimeout, "write-timeout", 0, "HTTP response write timeout (0 derives it from --round-timeout).")
	fs.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (0 derives it from --round-timeout).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this rotating file instead of stderr.")
	fs.IntVar(&config.LogMaxSize, "log-max-size", DefaultLogMaxSizeMB, "Log file rotation size in megabytes.")
	fs.StringVar(&config.Input, "input", "", "Resolve this single-shot request file instead of serving.")
	fs.BoolVar(&config.Split, "split", false, "Replay --input as three concurrent submissions.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result of --input to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print a compact single-line result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the live round monitor while serving.")
	fs.BoolVar(&config.SkipLeadingWord, "skip-leading-word", false, "Use the legacy message scan that ignores the first word of each copy.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish).")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		if err := applyFile(&config, fs, config.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)
	config = ApplyDerivedDefaults(config)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
