package aggregator

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/beaconfix/internal/beacon"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/resolver"
)

const tracerName = "github.com/agbru/beaconfix/internal/aggregator"

// Capacity is the number of readings that completes a round.
const Capacity = beacon.Count

// DefaultTimeout is the round timeout used when none is configured.
const DefaultTimeout = 10 * time.Second

// round is the live collection of readings. All fields except outcome and
// full are guarded by Aggregator.mu.
type round struct {
	id       string
	opened   time.Time
	readings []beacon.Reading
	sealed   bool
	trigger  SealTrigger
	// full is closed when the round is sealed by its third reading or by
	// Close, which ends the watcher's timer wait early.
	full    chan struct{}
	outcome *Outcome
}

// seal marks the round as closed to further readings and wakes the watcher.
// The caller holds Aggregator.mu and has checked that the round is not sealed.
func (r *round) seal(trigger SealTrigger) {
	r.sealed = true
	r.trigger = trigger
	close(r.full)
}

// Snapshot describes the live round at one instant.
type Snapshot struct {
	// RoundID is empty when no round is live.
	RoundID  string
	Readings int
	Sealed   bool
	Opened   time.Time
}

// Aggregator reconciles independently submitted readings into rounds of
// three and shares one resolution result among all submitters of a round.
// At most one round is live at a time. The zero value is not usable; create
// instances with New.
type Aggregator struct {
	resolver resolver.Resolver
	timeout  time.Duration
	logger   logging.Logger
	observer Observer

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	live   *round
	closed bool
	wg     sync.WaitGroup
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTimeout sets how long a round waits for its third reading.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger used for round lifecycle entries.
func WithLogger(l logging.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver registers an observer of round events.
func WithObserver(o Observer) Option {
	return func(a *Aggregator) {
		if o != nil {
			a.observer = o
		}
	}
}

// New creates an Aggregator that resolves complete rounds with r.
//
// Parameters:
//   - r: The resolver invoked once per sealed round holding three distinct beacons.
//   - opts: Optional settings (timeout, logger, observer).
//
// Returns:
//   - *Aggregator: A ready aggregator; call Close to release it.
func New(r resolver.Resolver, opts ...Option) *Aggregator {
	a := &Aggregator{
		resolver: r,
		timeout:  DefaultTimeout,
		logger:   logging.NewNopLogger(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a
}

// Timeout returns the configured round timeout.
func (a *Aggregator) Timeout() time.Duration { return a.timeout }

// Submit adds a reading to the live round, opening one if needed. It never
// blocks on resolution: the caller waits on the returned Outcome.
//
// Parameters:
//   - reading: A validated reading.
//
// Returns:
//   - *Outcome: The shared outcome of the round the reading joined.
//   - error: apperrors.CapacityError if the live round is sealed but not yet
//     cleared, or apperrors.ErrClosed after Close.
func (a *Aggregator) Submit(reading beacon.Reading) (*Outcome, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.reject(reading.Beacon, apperrors.ErrClosed)
		return nil, apperrors.ErrClosed
	}

	rd := a.live
	opened := false
	if rd == nil {
		rd = a.open()
		opened = true
	}
	if rd.sealed {
		a.mu.Unlock()
		err := apperrors.CapacityError{Capacity: Capacity}
		a.reject(reading.Beacon, err)
		return nil, err
	}

	rd.readings = append(rd.readings, reading)
	count := len(rd.readings)
	if count == Capacity {
		rd.seal(SealFull)
	}
	a.mu.Unlock()

	if opened {
		a.logger.Debug("round opened", logging.String("round", rd.id), logging.Duration("timeout", a.timeout))
		a.observer.RoundOpened(rd.id)
	}
	a.logger.Debug("reading accepted",
		logging.String("round", rd.id),
		logging.String("beacon", reading.Beacon.String()),
		logging.Int("count", count))
	a.observer.ReadingAccepted(rd.id, reading.Beacon, count)
	return rd.outcome, nil
}

// open creates the live round and starts its watcher. The caller holds a.mu.
func (a *Aggregator) open() *round {
	id := uuid.NewString()
	rd := &round{
		id:       id,
		opened:   time.Now(),
		readings: make([]beacon.Reading, 0, Capacity),
		full:     make(chan struct{}),
		outcome:  newOutcome(id),
	}
	a.live = rd
	a.wg.Add(1)
	go a.watch(rd)
	return rd
}

// watch owns one round: it waits for the round to fill or time out, seals it
// exactly once, resolves the snapshot without holding the lock, publishes the
// outcome and clears the round.
func (a *Aggregator) watch(rd *round) {
	defer a.wg.Done()

	timer := time.NewTimer(a.timeout)
	select {
	case <-rd.full:
		timer.Stop()
	case <-timer.C:
	}

	a.mu.Lock()
	if !rd.sealed {
		rd.sealed = true
		rd.trigger = SealTimeout
	}
	readings := slices.Clone(rd.readings)
	trigger := rd.trigger
	a.mu.Unlock()

	a.logger.Debug("round sealed",
		logging.String("round", rd.id),
		logging.String("trigger", trigger.String()),
		logging.Int("count", len(readings)))
	a.observer.RoundSealed(rd.id, trigger, len(readings))

	result, err := a.resolve(rd.id, trigger, readings)

	a.mu.Lock()
	rd.outcome.complete(result, err)
	if a.live == rd {
		a.live = nil
	}
	a.mu.Unlock()

	elapsed := time.Since(rd.opened)
	if err != nil {
		a.logger.Info("round failed",
			logging.String("round", rd.id),
			logging.Err(err),
			logging.Duration("elapsed", elapsed))
	} else {
		a.logger.Info("round resolved",
			logging.String("round", rd.id),
			logging.Float64("x", result.Location.X),
			logging.Float64("y", result.Location.Y),
			logging.Duration("elapsed", elapsed))
	}
	a.observer.RoundResolved(rd.id, err, elapsed)
}

func (a *Aggregator) resolve(roundID string, trigger SealTrigger, readings []beacon.Reading) (resolver.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(a.ctx, "aggregator.round")
	defer span.End()
	span.SetAttributes(
		attribute.String("round.id", roundID),
		attribute.String("round.trigger", trigger.String()),
		attribute.Int("round.readings", len(readings)),
	)

	result, err := resolver.ResolveReadings(ctx, a.resolver, readings)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (a *Aggregator) reject(id beacon.ID, err error) {
	a.logger.Debug("reading rejected", logging.String("beacon", id.String()), logging.Err(err))
	a.observer.ReadingRejected(id, err)
}

// Snapshot reports the state of the live round.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live == nil {
		return Snapshot{}
	}
	return Snapshot{
		RoundID:  a.live.id,
		Readings: len(a.live.readings),
		Sealed:   a.live.sealed,
		Opened:   a.live.opened,
	}
}

// Close stops accepting readings, seals the live round immediately and waits
// for its resolution to finish. If ctx ends first, in-flight resolution is
// cancelled and ctx.Err() is returned without waiting further. Close is safe
// to call more than once.
func (a *Aggregator) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	if rd := a.live; rd != nil && !rd.sealed {
		rd.seal(SealClose)
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.cancel()
		return nil
	case <-ctx.Done():
		a.cancel()
		return ctx.Err()
	}
}
