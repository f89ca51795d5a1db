package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version, listen address, uptime.
type HeaderModel struct {
	startTime time.Time
	version   string
	addr      string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, addr string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		addr:      addr,
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Beaconfix Round Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	left := titleStyle.Render(titleText)
	if h.addr != "" {
		left += pipe + versionStyle.Render("listening on "+h.addr)
	}
	uptime := time.Since(h.startTime).Truncate(time.Second)
	left += pipe + elapsedStyle.Render(fmt.Sprintf("Uptime: %s", uptime))

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
