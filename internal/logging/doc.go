// Package logging provides the structured logging interface used by the
// aggregator, the HTTP server and the CLI. It abstracts the underlying
// backend (zerolog for production, the standard library logger for simple
// text output) and can send entries to a rotating log file.
package logging
