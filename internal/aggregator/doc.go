// Package aggregator reconciles per-beacon submissions into rounds.
//
// A round opens with its first reading and is sealed exactly once, either by
// its third reading or when the round timeout elapses. A dedicated watcher
// goroutine then resolves the sealed snapshot outside the lock, publishes the
// shared Outcome and clears the round so the next one can open. Readings that
// arrive between sealing and clearing are rejected with a CapacityError and
// are never folded into the computation in progress.
//
// Lifecycle:
//
//	EMPTY --first reading--> COLLECTING --3rd reading / timeout--> RESOLVING
//	RESOLVING --outcome written--> EMPTY
package aggregator
