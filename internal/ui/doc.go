// Package ui provides theme and color support for the command-line output
// and the round monitor. Themes honour --no-color and the NO_COLOR
// environment variable.
package ui
