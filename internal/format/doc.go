// Package format holds the display formatting shared by the CLI and the
// round monitor.
package format
