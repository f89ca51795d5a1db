// Package cli implements the command-line front end: resolving a request
// file once or replaying it as a split round, presenting the result and
// generating shell completion scripts.
package cli
