package aggregator

import (
	"context"

	"github.com/agbru/beaconfix/internal/resolver"
)

// Outcome is the write-once result of a round. Every submitter accepted into
// the same round holds the same *Outcome.
type Outcome struct {
	roundID string
	done    chan struct{}
	result  resolver.Result
	err     error
}

func newOutcome(roundID string) *Outcome {
	return &Outcome{roundID: roundID, done: make(chan struct{})}
}

// RoundID returns the identifier of the round this outcome belongs to.
func (o *Outcome) RoundID() string { return o.roundID }

// Done returns a channel that is closed once the outcome is available.
func (o *Outcome) Done() <-chan struct{} { return o.done }

// Wait blocks until the round is resolved or ctx is done. Abandoning the wait
// does not withdraw the reading from its round.
//
// Returns:
//   - resolver.Result: The shared result on success.
//   - error: The shared round failure, or ctx.Err() if the wait was abandoned.
func (o *Outcome) Wait(ctx context.Context) (resolver.Result, error) {
	select {
	case <-o.done:
		return o.result, o.err
	case <-ctx.Done():
		return resolver.Result{}, ctx.Err()
	}
}

// complete stores the result and releases every waiter. It must be called
// exactly once.
func (o *Outcome) complete(result resolver.Result, err error) {
	o.result, o.err = result, err
	close(o.done)
}
