package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/format"
	"github.com/agbru/beaconfix/internal/metrics"
)

// maxEventEntries bounds the event log; older entries are discarded.
const maxEventEntries = 500

// EventLogModel is the scrollable log of round events.
type EventLogModel struct {
	entries []string
	// offset is the number of lines scrolled up from the newest entry.
	offset int
	keymap KeyMap
	width  int
	height int
}

// NewEventLogModel creates an empty event log.
func NewEventLogModel() EventLogModel {
	return EventLogModel{keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (l *EventLogModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Len returns the number of stored entries.
func (l EventLogModel) Len() int { return len(l.entries) }

// Reset clears the log.
func (l *EventLogModel) Reset() {
	l.entries = nil
	l.offset = 0
}

// Add appends a formatted event.
func (l *EventLogModel) Add(ev RoundEventMsg) {
	l.entries = append(l.entries, formatEvent(ev))
	if len(l.entries) > maxEventEntries {
		l.entries = l.entries[len(l.entries)-maxEventEntries:]
	}
	// Keep the view anchored while the user is scrolled back.
	if l.offset > 0 {
		l.offset = min(l.offset+1, l.maxOffset())
	}
}

// Update handles scroll keys.
func (l *EventLogModel) Update(msg tea.KeyMsg) {
	page := max(l.visibleLines()-1, 1)
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.offset++
	case key.Matches(msg, l.keymap.Down):
		l.offset--
	case key.Matches(msg, l.keymap.PageUp):
		l.offset += page
	case key.Matches(msg, l.keymap.PageDown):
		l.offset -= page
	}
	l.offset = min(max(l.offset, 0), l.maxOffset())
}

func (l EventLogModel) visibleLines() int {
	// Borders and the title line.
	return max(l.height-3, 1)
}

func (l EventLogModel) maxOffset() int {
	return max(len(l.entries)-l.visibleLines(), 0)
}

// View renders the log at its configured height.
func (l EventLogModel) View() string {
	return l.renderToHeight(l.height)
}

// renderToHeight renders the log so that its outer height equals h.
func (l EventLogModel) renderToHeight(h int) string {
	visible := max(h-3, 1)
	end := len(l.entries) - l.offset
	start := max(end-visible, 0)

	var b strings.Builder
	title := "Round Events"
	if l.offset > 0 {
		title += fmt.Sprintf(" (scrolled %d)", l.offset)
	}
	b.WriteString(panelTitleStyle.Render(title))
	for _, line := range l.entries[start:end] {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(h-2, 0)).
		Render(b.String())
}

// formatEvent renders one event as a log line.
func formatEvent(ev RoundEventMsg) string {
	ts := logTimeStyle.Render(ev.Time.Format("15:04:05"))
	round := ""
	if ev.RoundID != "" {
		round = logRoundStyle.Render("["+shortID(ev.RoundID)+"]") + " "
	}

	var text string
	switch ev.Kind {
	case EventOpened:
		text = logInfoStyle.Render("round opened")
	case EventAccepted:
		text = logInfoStyle.Render(fmt.Sprintf("%s accepted (%d/%d)", ev.Beacon, ev.Count, aggregator.Capacity))
	case EventRejected:
		text = logWarningStyle.Render(fmt.Sprintf("%s rejected: %v", ev.Beacon, ev.Err))
	case EventSealed:
		text = logInfoStyle.Render(fmt.Sprintf("sealed by %s (%d/%d)", ev.Trigger, ev.Count, aggregator.Capacity))
	case EventResolved:
		elapsed := format.FormatExecutionDuration(ev.Elapsed)
		if ev.Err == nil {
			text = logSuccessStyle.Render("resolved in " + elapsed)
		} else {
			text = logErrorStyle.Render(fmt.Sprintf("%s after %s: %v", metrics.OutcomeLabel(ev.Err), elapsed, ev.Err))
		}
	default:
		text = logInfoStyle.Render("unknown event")
	}
	return ts + " " + round + text
}

// shortID returns the first segment of a round identifier.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
