package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// fileConfig mirrors the YAML configuration file. Pointer fields distinguish
// an absent key from a zero value.
type fileConfig struct {
	Addr            *string `yaml:"addr"`
	RoundTimeout    *string `yaml:"round-timeout"`
	ReadTimeout     *string `yaml:"read-timeout"`
	WriteTimeout    *string `yaml:"write-timeout"`
	ShutdownTimeout *string `yaml:"shutdown-timeout"`
	LogLevel        *string `yaml:"log-level"`
	LogFile         *string `yaml:"log-file"`
	LogMaxSize      *int    `yaml:"log-max-size"`
	Output          *string `yaml:"output"`
	Quiet           *bool   `yaml:"quiet"`
	NoColor         *bool   `yaml:"no-color"`
	TUI             *bool   `yaml:"tui"`
	SkipLeadingWord *bool   `yaml:"skip-leading-word"`
}

// applyFile loads a YAML configuration file and applies every key whose flag
// was not set explicitly. Unknown keys are rejected.
func applyFile(config *AppConfig, fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("cannot read config file %s: %v", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}

	setString := func(flagName string, src *string, dst *string) {
		if src != nil && !isFlagSet(fs, flagName) {
			*dst = *src
		}
	}
	setBool := func(flagName string, src *bool, dst *bool) {
		if src != nil && !isFlagSet(fs, flagName) {
			*dst = *src
		}
	}
	setDuration := func(flagName string, src *string, dst *time.Duration) error {
		if src == nil || isFlagSet(fs, flagName) {
			return nil
		}
		d, err := time.ParseDuration(*src)
		if err != nil {
			return apperrors.NewConfigError("invalid %s in %s: %v", flagName, path, err)
		}
		*dst = d
		return nil
	}

	setString("addr", fc.Addr, &config.Addr)
	setString("log-level", fc.LogLevel, &config.LogLevel)
	setString("log-file", fc.LogFile, &config.LogFile)
	if !isFlagSetAny(fs, "output", "o") && fc.Output != nil {
		config.OutputFile = *fc.Output
	}
	if fc.LogMaxSize != nil && !isFlagSet(fs, "log-max-size") {
		config.LogMaxSize = *fc.LogMaxSize
	}
	if !isFlagSetAny(fs, "quiet", "q") && fc.Quiet != nil {
		config.Quiet = *fc.Quiet
	}
	setBool("no-color", fc.NoColor, &config.NoColor)
	setBool("tui", fc.TUI, &config.TUI)
	setBool("skip-leading-word", fc.SkipLeadingWord, &config.SkipLeadingWord)

	for _, d := range []struct {
		flag string
		src  *string
		dst  *time.Duration
	}{
		{"round-timeout", fc.RoundTimeout, &config.RoundTimeout},
		{"read-timeout", fc.ReadTimeout, &config.ReadTimeout},
		{"write-timeout", fc.WriteTimeout, &config.WriteTimeout},
		{"shutdown-timeout", fc.ShutdownTimeout, &config.ShutdownTimeout},
	} {
		if err := setDuration(d.flag, d.src, d.dst); err != nil {
			return err
		}
	}
	return nil
}
