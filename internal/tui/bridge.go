package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// It is a no-op until a program is attached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Bridge forwards aggregator events to the monitor. It is created before the
// aggregator so it can be registered as an observer, and attached to the
// program when Run starts. Events raised before then are dropped.
type Bridge struct {
	ref  *programRef
	now  func() time.Time
	sink func(tea.Msg)
}

// Verify interface compliance.
var _ aggregator.Observer = (*Bridge)(nil)

// NewBridge creates a detached bridge.
func NewBridge() *Bridge {
	ref := &programRef{}
	return &Bridge{ref: ref, now: time.Now, sink: ref.Send}
}

func (b *Bridge) send(ev RoundEventMsg) {
	ev.Time = b.now()
	b.sink(ev)
}

// RoundOpened implements aggregator.Observer.
func (b *Bridge) RoundOpened(roundID string) {
	b.send(RoundEventMsg{Kind: EventOpened, RoundID: roundID})
}

// ReadingAccepted implements aggregator.Observer.
func (b *Bridge) ReadingAccepted(roundID string, id beacon.ID, count int) {
	b.send(RoundEventMsg{Kind: EventAccepted, RoundID: roundID, Beacon: id, Count: count})
}

// ReadingRejected implements aggregator.Observer.
func (b *Bridge) ReadingRejected(id beacon.ID, err error) {
	b.send(RoundEventMsg{Kind: EventRejected, Beacon: id, Err: err})
}

// RoundSealed implements aggregator.Observer.
func (b *Bridge) RoundSealed(roundID string, trigger aggregator.SealTrigger, count int) {
	b.send(RoundEventMsg{Kind: EventSealed, RoundID: roundID, Trigger: trigger, Count: count})
}

// RoundResolved implements aggregator.Observer.
func (b *Bridge) RoundResolved(roundID string, err error, elapsed time.Duration) {
	b.send(RoundEventMsg{Kind: EventResolved, RoundID: roundID, Err: err, Elapsed: elapsed})
}
