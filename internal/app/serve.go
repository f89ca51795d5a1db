package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/agbru/beaconfix/internal/aggregator"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/metrics"
	"github.com/agbru/beaconfix/internal/server"
	"github.com/agbru/beaconfix/internal/tui"
)

// runServe serves HTTP until a signal arrives or, with --tui, until the
// monitor is closed.
func (a *Application) runServe(ctx context.Context, logger logging.Logger) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	roundMetrics := metrics.NewRoundMetrics()
	observers := aggregator.Observers{roundMetrics}
	var bridge *tui.Bridge
	if a.Config.TUI {
		bridge = tui.NewBridge()
		observers = append(observers, bridge)
	}

	agg := aggregator.New(a.Resolver,
		aggregator.WithTimeout(a.Config.RoundTimeout),
		aggregator.WithLogger(logger),
		aggregator.WithObserver(observers),
	)
	srv := server.New(a.Config, agg, a.Resolver,
		server.WithLogger(logger),
		server.WithMetrics(server.NewMetrics(roundMetrics)),
	)

	if bridge == nil {
		if err := srv.Start(ctx); err != nil {
			logger.Error("server stopped with an error", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
		// A listener failure ends the monitor too.
		cancel()
	}()

	code := tui.Run(ctx, agg, bridge, a.Config, Version)
	cancel()
	if err := <-errCh; err != nil {
		logger.Error("server stopped with an error", err)
		return apperrors.ExitErrorGeneric
	}
	return code
}
