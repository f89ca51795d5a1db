package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled, so callers can interpolate them unconditionally.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorRed marks failures.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen marks successes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow marks warnings and durations.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue marks primary values such as coordinates.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta marks informational values such as the recovered message.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan marks secondary labels.
func ColorCyan() string { return GetCurrentTheme().Secondary }
