package tui

import "strings"

// FooterModel renders the key help and the monitor status.
type FooterModel struct {
	paused  bool
	stopped bool
	width   int
}

// NewFooterModel creates a footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetStopped marks the server as shutting down.
func (f *FooterModel) SetStopped(s bool) { f.stopped = s }

// View renders the footer.
func (f FooterModel) View() string {
	keys := []struct{ key, desc string }{
		{"q", "quit"},
		{"space", "pause"},
		{"r", "clear"},
		{"↑↓", "scroll"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k.key)+" "+footerDescStyle.Render(k.desc))
	}

	var status string
	switch {
	case f.stopped:
		status = statusDoneStyle.Render("STOPPING")
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("SERVING")
	}
	return " " + status + "  " + strings.Join(parts, footerDescStyle.Render("  "))
}
