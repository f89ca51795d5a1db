package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/config"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/resolver"
	"github.com/agbru/beaconfix/internal/ui"
)

// Resolution modes reported in output files.
const (
	ModeSingle = "single"
	ModeSplit  = "split"
)

// LoadRequest reads a single-shot request file, in the same JSON format as
// the body of POST /topsecret, and validates its readings.
//
// Parameters:
//   - path: The request file.
//
// Returns:
//   - []beacon.Reading: The three validated readings in file order.
//   - error: A wrapped I/O error, or a ValidationError.
func LoadRequest(path string) ([]beacon.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "cannot open request file %s", path)
	}
	defer f.Close()
	return DecodeRequest(f)
}

// DecodeRequest decodes and validates a request document.
func DecodeRequest(r io.Reader) ([]beacon.Reading, error) {
	var req beacon.Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, apperrors.ValidationError{Field: "request", Message: "invalid JSON: " + err.Error()}
	}
	return req.Readings()
}

// PrintExecutionConfig displays how the input is about to be resolved.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	mode := "single-shot resolution"
	if cfg.Split {
		mode = fmt.Sprintf("split replay, round timeout %s%s%s", ui.ColorYellow(), cfg.RoundTimeout, ui.ColorReset())
	}
	fmt.Fprintf(out, "Resolving %s%s%s as a %s.\n", ui.ColorCyan(), cfg.Input, ui.ColorReset(), mode)
	if cfg.SkipLeadingWord {
		fmt.Fprintf(out, "Message scan: %slegacy (leading word ignored)%s.\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// ResolveOnce resolves three readings directly.
func ResolveOnce(ctx context.Context, res resolver.Resolver, readings []beacon.Reading) (resolver.Result, error) {
	return resolver.ResolveReadings(ctx, res, readings)
}

// spinnerObserver reports round progress on the wait spinner.
type spinnerObserver struct {
	aggregator.NopObserver
	spinner Spinner
}

func (o spinnerObserver) ReadingAccepted(_ string, id beacon.ID, count int) {
	o.spinner.UpdateSuffix(fmt.Sprintf(" round: %d/%d readings (last: %s)", count, aggregator.Capacity, id))
}

func (o spinnerObserver) RoundSealed(_ string, trigger aggregator.SealTrigger, count int) {
	o.spinner.UpdateSuffix(fmt.Sprintf(" round sealed (%s, %d readings), resolving", trigger, count))
}

// ReplaySplit submits every reading concurrently to a fresh aggregator, the
// way three independent split requests would arrive, and waits for the
// shared outcome. It fails if any submitter observes a different result.
//
// Parameters:
//   - ctx: Bounds the wait of every submitter.
//   - res: The resolver used by the aggregator.
//   - readings: The readings to submit, one goroutine each.
//   - timeout: The round timeout.
//   - logger: Receives the aggregator's round log entries.
//   - out: Where the wait spinner is drawn; nil disables it.
//
// Returns:
//   - resolver.Result: The shared result.
//   - error: The shared failure, a submission error or a context error.
func ReplaySplit(ctx context.Context, res resolver.Resolver, readings []beacon.Reading, timeout time.Duration, logger logging.Logger, out io.Writer) (resolver.Result, error) {
	var observer aggregator.Observer = aggregator.NopObserver{}
	if out != nil {
		s := newSpinner(spinner.WithWriter(out))
		s.UpdateSuffix(" waiting for the round")
		s.Start()
		defer s.Stop()
		observer = spinnerObserver{spinner: s}
	}

	agg := aggregator.New(res,
		aggregator.WithTimeout(timeout),
		aggregator.WithLogger(logger),
		aggregator.WithObserver(observer),
	)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), config.EstimateWriteTimeout(timeout))
		defer cancel()
		_ = agg.Close(closeCtx)
	}()

	results := make([]resolver.Result, len(readings))
	var shared atomic.Pointer[aggregator.Outcome]
	g, gctx := errgroup.WithContext(ctx)
	for i, reading := range readings {
		g.Go(func() error {
			outcome, err := agg.Submit(reading)
			if err != nil {
				return err
			}
			if first := shared.Swap(outcome); first != nil && first != outcome {
				return fmt.Errorf("submissions landed in different rounds (%s, %s)", first.RoundID(), outcome.RoundID())
			}
			results[i], err = outcome.Wait(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return resolver.Result{}, err
	}
	return results[0], nil
}
