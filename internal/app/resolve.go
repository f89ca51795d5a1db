package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/cli"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/resolver"
)

// runResolve resolves the configured request file, directly or as a replayed
// split round, and prints the result.
func (a *Application) runResolve(ctx context.Context, logger logging.Logger, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	readings, err := cli.LoadRequest(a.Config.Input)
	if err != nil {
		return cli.DisplayError(err, 0, a.ErrWriter)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	mode := cli.ModeSingle
	if a.Config.Split {
		mode = cli.ModeSplit
	}

	start := time.Now()
	result, err := a.resolve(ctx, readings, logger, out)
	elapsed := time.Since(start)
	if err != nil {
		logger.Debug("resolution failed", logging.String("mode", mode), logging.Err(err))
		return cli.DisplayError(err, elapsed, a.ErrWriter)
	}
	logger.Debug("resolution succeeded", logging.String("mode", mode), logging.Duration("elapsed", elapsed))

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
	}
	if err := cli.DisplayResultWithConfig(out, result, elapsed, mode, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) resolve(ctx context.Context, readings []beacon.Reading, logger logging.Logger, out io.Writer) (resolver.Result, error) {
	if !a.Config.Split {
		return cli.ResolveOnce(ctx, a.Resolver, readings)
	}
	// The spinner would corrupt the single-line quiet output.
	var spinnerOut io.Writer
	if !a.Config.Quiet {
		spinnerOut = out
	}
	return cli.ReplaySplit(ctx, a.Resolver, readings, a.Config.RoundTimeout, logger, spinnerOut)
}
