// Package server exposes the resolver and the round aggregator over HTTP.
//
// Routes:
//
//	POST     /topsecret               resolve three readings at once
//	POST|GET /topsecret_split/{name}  submit one reading and wait for its round
//	GET      /health                  liveness, live round and system sample
//	GET      /metrics                 Prometheus exposition
//
// Every route runs behind the security, correlation and metrics middleware.
// Shutdown stops accepting connections, closes the aggregator so that the
// live round still delivers its outcome to waiting requests, then drains.
package server
