// Package app wires configuration, logging, the resolver and the aggregator
// into the three run modes of the beaconfix binary: serving HTTP (optionally
// with the round monitor), resolving a single request file, and replaying a
// request file as a split round.
package app
