package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/config"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/metrics"
)

// RoundSource exposes the live round state to the monitor.
type RoundSource interface {
	Snapshot() aggregator.Snapshot
	Timeout() time.Duration
}

// Layout constants for the round monitor.
const (
	headerHeight            = 1
	footerHeight            = 1
	minBodyHeight           = 8
	EventsPanelWidthPercent = 55
	RoundPanelHeight        = 9
	tickInterval            = 500 * time.Millisecond
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// eventsWidth returns the width allocated to the event log.
func (l LayoutManager) eventsWidth() int {
	return l.width * EventsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.eventsWidth()
}

// roundHeight returns the height allocated to the round panel.
func (l LayoutManager) roundHeight() int {
	return min(RoundPanelHeight, l.bodyHeight()/2)
}

// systemHeight returns the height allocated to the system panel.
func (l LayoutManager) systemHeight() int {
	return l.bodyHeight() - l.roundHeight()
}

// Model is the root bubbletea model of the round monitor.
type Model struct {
	header HeaderModel
	events EventLogModel
	round  RoundModel
	system SystemModel
	footer FooterModel

	keymap KeyMap

	LayoutManager

	ctx     context.Context
	source  RoundSource
	sampler *metrics.SystemSampler
	paused  bool
	stopped bool
}

// NewModel creates a monitor model for the given round source.
func NewModel(ctx context.Context, source RoundSource, cfg config.AppConfig, version string) Model {
	timeout := source.Timeout()
	return Model{
		header:  NewHeaderModel(version, cfg.Addr),
		events:  NewEventLogModel(),
		round:   NewRoundModel(timeout),
		system:  NewSystemModel(timeout),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ctx:     ctx,
		source:  source,
		sampler: metrics.NewSystemSampler(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleRoundCmd(m.source),
		sampleSysStatsCmd(m.sampler),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case RoundEventMsg:
		// Totals stay accurate while paused; only the log is frozen.
		m.round.Observe(msg)
		if msg.Kind == EventResolved {
			m.system.AddLatency(msg.Elapsed)
		}
		if !m.paused {
			m.events.Add(msg)
		}
		return m, nil

	case TickMsg:
		if m.stopped {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleRoundCmd(m.source), sampleSysStatsCmd(m.sampler), tickCmd())

	case RoundSnapshotMsg:
		m.round.UpdateSnapshot(aggregator.Snapshot(msg))
		return m, nil

	case SysStatsMsg:
		m.system.UpdateSample(metrics.SystemSample(msg))
		return m, nil

	case ContextCancelledMsg:
		m.stopped = true
		m.footer.SetStopped(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stopped = true
		m.footer.SetStopped(true)
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.events.Reset()
		m.round.Reset()
		m.system.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.events.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire monitor.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.round.View(), m.system.View())
	events := m.events.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, events, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.events.SetSize(m.eventsWidth(), m.bodyHeight())
	m.round.SetSize(m.rightWidth(), m.roundHeight())
	m.system.SetSize(m.rightWidth(), m.systemHeight())
}

// Run shows the monitor until the user quits or ctx ends, then returns the
// exit code. The bridge is attached for the lifetime of the program; the
// caller stops serving once Run returns.
func Run(ctx context.Context, source RoundSource, bridge *Bridge, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, source, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	bridge.ref.SetProgram(p)
	defer bridge.ref.SetProgram(nil)

	if _, err := p.Run(); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleRoundCmd reads the live round state.
func sampleRoundCmd(source RoundSource) tea.Cmd {
	return func() tea.Msg {
		return RoundSnapshotMsg(source.Snapshot())
	}
}

// sampleSysStatsCmd reads host and process statistics.
func sampleSysStatsCmd(sampler *metrics.SystemSampler) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sampler.Sample())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
