package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/format"
	"github.com/agbru/beaconfix/internal/metrics"
)

// RoundModel shows the live round and running totals.
type RoundModel struct {
	snapshot aggregator.Snapshot
	timeout  time.Duration
	// arrived records which beacons have reported in the round named by
	// arrivedRound.
	arrived      map[beacon.ID]bool
	arrivedRound string

	opened   int
	outcomes map[string]int
	last     time.Duration

	width  int
	height int
}

// NewRoundModel creates a round panel for rounds of the given timeout.
func NewRoundModel(timeout time.Duration) RoundModel {
	return RoundModel{
		timeout:  timeout,
		arrived:  make(map[beacon.ID]bool, beacon.Count),
		outcomes: make(map[string]int),
	}
}

// SetSize updates dimensions.
func (r *RoundModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// UpdateSnapshot stores the latest live round state.
func (r *RoundModel) UpdateSnapshot(s aggregator.Snapshot) {
	r.snapshot = s
	if s.RoundID != "" && s.RoundID != r.arrivedRound {
		r.arrivedRound = s.RoundID
		clear(r.arrived)
	}
}

// Observe folds a lifecycle event into the panel.
func (r *RoundModel) Observe(ev RoundEventMsg) {
	switch ev.Kind {
	case EventOpened:
		r.opened++
		r.arrivedRound = ev.RoundID
		clear(r.arrived)
	case EventAccepted:
		if ev.RoundID == r.arrivedRound {
			r.arrived[ev.Beacon] = true
		}
	case EventResolved:
		r.outcomes[metrics.OutcomeLabel(ev.Err)]++
		r.last = ev.Elapsed
	}
}

// Reset clears the running totals.
func (r *RoundModel) Reset() {
	r.opened = 0
	r.last = 0
	clear(r.outcomes)
}

// status describes the live round in one word.
func (r RoundModel) status() string {
	switch {
	case r.snapshot.RoundID == "":
		return statusDoneStyle.Render("IDLE")
	case r.snapshot.Sealed:
		return statusPausedStyle.Render("RESOLVING")
	default:
		return statusRunningStyle.Render("COLLECTING")
	}
}

// slots renders one marker per beacon, filled once it has reported.
func (r RoundModel) slots() string {
	parts := make([]string, 0, beacon.Count)
	for _, id := range beacon.All() {
		if r.snapshot.RoundID != "" && r.arrived[id] {
			parts = append(parts, slotFilledStyle.Render("● "+id.String()))
		} else {
			parts = append(parts, slotEmptyStyle.Render("○ "+id.String()))
		}
	}
	return strings.Join(parts, "  ")
}

// View renders the round panel.
func (r RoundModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Live Round"))
	b.WriteString("  ")
	b.WriteString(r.status())

	row := func(label, value string) {
		b.WriteString("\n ")
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(" ")
		b.WriteString(value)
	}

	if r.snapshot.RoundID != "" {
		row("Round:", metricValueStyle.Render(shortID(r.snapshot.RoundID)))
		row("Readings:", metricValueStyle.Render(fmt.Sprintf("%d/%d", r.snapshot.Readings, aggregator.Capacity))+"  "+r.slots())
		row("Age:", metricValueStyle.Render(format.FormatRoundAge(time.Since(r.snapshot.Opened), r.timeout)))
	} else {
		row("Round:", metricLabelStyle.Render("waiting for a reading"))
	}

	row("Opened:", metricValueStyle.Render(fmt.Sprintf("%d", r.opened)))
	row("Outcomes:", r.outcomeSummary())
	if r.last > 0 {
		row("Last:", metricValueStyle.Render(format.FormatExecutionDuration(r.last)))
	}

	return panelStyle.
		Width(max(r.width-2, 0)).
		Height(max(r.height-2, 0)).
		Render(b.String())
}

func (r RoundModel) outcomeSummary() string {
	labels := []string{
		metrics.OutcomeResolved,
		metrics.OutcomeIncomplete,
		metrics.OutcomeUnsolvable,
		metrics.OutcomeNoMessage,
		metrics.OutcomeError,
	}
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		n := r.outcomes[label]
		if n == 0 && label != metrics.OutcomeResolved {
			continue
		}
		style := logErrorStyle
		if label == metrics.OutcomeResolved {
			style = logSuccessStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s %d", label, n)))
	}
	return strings.Join(parts, metricLabelStyle.Render(" · "))
}
