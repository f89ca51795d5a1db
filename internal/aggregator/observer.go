package aggregator

import (
	"time"

	"github.com/agbru/beaconfix/internal/beacon"
)

// SealTrigger records what closed a round to further readings.
type SealTrigger int

const (
	// SealFull means the round received its third reading.
	SealFull SealTrigger = iota
	// SealTimeout means the round timeout elapsed first.
	SealTimeout
	// SealClose means the aggregator was shut down.
	SealClose
)

// String returns the trigger name used in logs and metric labels.
func (t SealTrigger) String() string {
	switch t {
	case SealFull:
		return "full"
	case SealTimeout:
		return "timeout"
	case SealClose:
		return "close"
	default:
		return "unknown"
	}
}

// Observer receives round lifecycle events. Methods are called from the
// submitting goroutine or from the round watcher, never while the
// aggregator lock is held, and must not block for long.
type Observer interface {
	RoundOpened(roundID string)
	ReadingAccepted(roundID string, id beacon.ID, count int)
	ReadingRejected(id beacon.ID, err error)
	RoundSealed(roundID string, trigger SealTrigger, count int)
	RoundResolved(roundID string, err error, elapsed time.Duration)
}

// Observers fans every event out to each of its members in order.
type Observers []Observer

var _ Observer = Observers(nil)

// RoundOpened implements Observer.
func (obs Observers) RoundOpened(roundID string) {
	for _, o := range obs {
		o.RoundOpened(roundID)
	}
}

// ReadingAccepted implements Observer.
func (obs Observers) ReadingAccepted(roundID string, id beacon.ID, count int) {
	for _, o := range obs {
		o.ReadingAccepted(roundID, id, count)
	}
}

// ReadingRejected implements Observer.
func (obs Observers) ReadingRejected(id beacon.ID, err error) {
	for _, o := range obs {
		o.ReadingRejected(id, err)
	}
}

// RoundSealed implements Observer.
func (obs Observers) RoundSealed(roundID string, trigger SealTrigger, count int) {
	for _, o := range obs {
		o.RoundSealed(roundID, trigger, count)
	}
}

// RoundResolved implements Observer.
func (obs Observers) RoundResolved(roundID string, err error, elapsed time.Duration) {
	for _, o := range obs {
		o.RoundResolved(roundID, err, elapsed)
	}
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) RoundOpened(string) {}
func (NopObserver) ReadingAccepted(string, beacon.ID, int) {}
func (NopObserver) ReadingRejected(beacon.ID, error) {}
func (NopObserver) RoundSealed(string, SealTrigger, int) {}
func (NopObserver) RoundResolved(string, error, time.Duration) {}
