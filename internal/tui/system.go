package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/beaconfix/internal/metrics"
)

// historySize is the number of samples kept for each chart.
const historySize = 120

// SystemModel displays host load sparklines, process memory and a chart of
// recent resolution latencies relative to the round timeout.
type SystemModel struct {
	sample     metrics.SystemSample
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	latencies  *RingBuffer
	timeout    time.Duration
	width      int
	height     int
}

// NewSystemModel creates a system panel.
func NewSystemModel(timeout time.Duration) SystemModel {
	return SystemModel{
		cpuHistory: NewRingBuffer(historySize),
		memHistory: NewRingBuffer(historySize),
		latencies:  NewRingBuffer(historySize),
		timeout:    timeout,
	}
}

// SetSize updates dimensions.
func (s *SystemModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// UpdateSample records a host and process sample.
func (s *SystemModel) UpdateSample(sample metrics.SystemSample) {
	s.sample = sample
	s.cpuHistory.Push(sample.CPUPercent)
	s.memHistory.Push(sample.MemPercent)
}

// AddLatency records a round resolution time as a share of the round timeout.
func (s *SystemModel) AddLatency(elapsed time.Duration) {
	if s.timeout <= 0 {
		return
	}
	s.latencies.Push(100 * elapsed.Seconds() / s.timeout.Seconds())
}

// Reset clears all histories.
func (s *SystemModel) Reset() {
	s.cpuHistory.Reset()
	s.memHistory.Reset()
	s.latencies.Reset()
}

// View renders the system panel.
func (s SystemModel) View() string {
	inner := max(s.width-4, 10)
	sparkWidth := max(inner-16, 1)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("System"))

	fmt.Fprintf(&b, "\n %s %s %s",
		metricLabelStyle.Render("CPU"),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", s.sample.CPUPercent)),
		cpuSparklineStyle.Render(RenderSparkline(tail(s.cpuHistory.Slice(), sparkWidth))))
	fmt.Fprintf(&b, "\n %s %s %s",
		metricLabelStyle.Render("MEM"),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", s.sample.MemPercent)),
		memSparklineStyle.Render(RenderSparkline(tail(s.memHistory.Slice(), sparkWidth))))
	fmt.Fprintf(&b, "\n %s %s %s %s %s %s",
		metricLabelStyle.Render("Heap:"), metricValueStyle.Render(formatBytes(s.sample.HeapAlloc)+" / "+formatBytes(s.sample.Sys)),
		metricLabelStyle.Render("GC:"), metricValueStyle.Render(fmt.Sprintf("%d", s.sample.NumGC)),
		metricLabelStyle.Render("Goroutines:"), metricValueStyle.Render(fmt.Sprintf("%d", s.sample.Goroutines)))

	// Title, three metric lines and borders leave the rest for the chart.
	if rows := s.height - 7; rows > 0 {
		b.WriteString("\n ")
		b.WriteString(metricLabelStyle.Render("Resolution time (% of timeout)"))
		for _, line := range RenderBrailleChart(s.latencies.Slice(), inner, rows) {
			b.WriteString("\n ")
			b.WriteString(latencyChartStyle.Render(line))
		}
	}

	return panelStyle.
		Width(max(s.width-2, 0)).
		Height(max(s.height-2, 0)).
		Render(b.String())
}

// tail returns the last n values.
func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
