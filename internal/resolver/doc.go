// Package resolver composes trilateration and message fusion into the result
// of a round.
//
// The Resolver interface decouples the round aggregator from the algorithms
// so the aggregator can be tested with a mock, and Service is the production
// implementation.
package resolver
