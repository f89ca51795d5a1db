package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv selects a theme by name when colors are enabled.
const ThemeEnv = "BEACONFIX_THEME"

// Theme is a set of ANSI escape codes for line-oriented CLI output.
type Theme struct {
	Name      string
	Primary   string // headings, beacon names
	Secondary string // labels, file paths
	Success   string // resolved rounds
	Warning   string // blank placeholders, partial rounds
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// TUITheme is the lipgloss palette of the round monitor.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

const (
	bold      = "\033[1m"
	underline = "\033[4m"
	reset     = "\033[0m"
)

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
	}

	// NoColorTheme emits no escape codes at all.
	NoColorTheme = Theme{Name: "none"}

	// DarkTUITheme is the monitor palette paired with DarkTheme.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// LightTUITheme is the monitor palette paired with LightTheme.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#B34700"),
		Accent:  lipgloss.Color("#CC5500"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#A65E00"),
		Error:   lipgloss.Color("#B71C1C"),
		Dim:     lipgloss.Color("#8A8A8A"),
		Info:    lipgloss.Color("#1F4FBF"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

type themePair struct {
	cli Theme
	tui TUITheme
}

var themes = map[string]themePair{
	"dark":  {DarkTheme, DarkTUITheme},
	"light": {LightTheme, LightTUITheme},
	"none":  {NoColorTheme, NoColorTUITheme},
}

var (
	themeMu sync.RWMutex
	current = themes["dark"]
)

// GetCurrentTheme returns the active CLI theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current.cli
}

// GetCurrentTUITheme returns the monitor palette paired with the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current.tui
}

// SetCurrentTheme activates t. A theme with an unregistered name keeps the
// dark monitor palette. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	pair, ok := themes[t.Name]
	if !ok {
		pair.tui = DarkTUITheme
	}
	pair.cli = t
	current = pair
}

// SetTheme activates a theme by name ("dark", "light" or "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	themeMu.Lock()
	defer themeMu.Unlock()
	current = lookup(name)
}

func lookup(name string) themePair {
	if pair, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return pair
	}
	return themes["dark"]
}

// InitTheme picks the theme for this run. noColor and a set NO_COLOR
// (https://no-color.org/) both disable colors; otherwise BEACONFIX_THEME
// names the theme, defaulting to dark.
func InitTheme(noColor bool) {
	themeMu.Lock()
	defer themeMu.Unlock()

	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		current = themes["none"]
		return
	}
	current = lookup(os.Getenv(ThemeEnv))
}
