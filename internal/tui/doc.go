// Package tui implements the live round monitor shown by "beaconfix --tui".
// It is a bubbletea program with an event log fed by an aggregator observer
// (Bridge), a panel describing the live round and its running outcome
// totals, and a system panel with load sparklines and a chart of recent
// resolution times.
package tui
