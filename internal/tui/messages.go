package tui

import (
	"time"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/metrics"
)

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a host and process sample.
type SysStatsMsg metrics.SystemSample

// RoundSnapshotMsg carries the state of the live round.
type RoundSnapshotMsg aggregator.Snapshot

// ContextCancelledMsg signals that the serving context has ended.
type ContextCancelledMsg struct {
	Err error
}

// EventKind identifies a round lifecycle event.
type EventKind int

const (
	EventOpened EventKind = iota
	EventAccepted
	EventRejected
	EventSealed
	EventResolved
)

// RoundEventMsg is a round lifecycle event forwarded by the Bridge.
type RoundEventMsg struct {
	Time    time.Time
	Kind    EventKind
	RoundID string
	Beacon  beacon.ID
	// Count is the number of readings in the round after the event.
	Count   int
	Trigger aggregator.SealTrigger
	Err     error
	Elapsed time.Duration
}
