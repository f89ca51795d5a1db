package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// durationUnits lists display units from the smallest up. A duration is shown
// in the largest unit it reaches, with at most two decimals.
var durationUnits = []struct {
	unit   time.Duration
	suffix string
}{
	{time.Nanosecond, "ns"},
	{time.Microsecond, "\u00b5s"},
	{time.Millisecond, "ms"},
	{time.Second, "s"},
}

// FormatExecutionDuration formats a resolution or round duration for display:
// "850ns", "12.5µs", "3.25ms", "1.5s". From a minute up it falls back to
// time.Duration's own format, rounded to the second.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d >= time.Minute {
		return d.Round(time.Second).String()
	}
	u := durationUnits[0]
	for _, next := range durationUnits[1:] {
		if d < next.unit {
			break
		}
		u = next
	}
	value := strconv.FormatFloat(float64(d)/float64(u.unit), 'f', 2, 64)
	value = strings.TrimRight(strings.TrimRight(value, "0"), ".")
	return value + u.suffix
}

// FormatRoundAge formats how long a round has been collecting against its
// timeout, e.g. "2.5s / 10s". The age is capped at the timeout.
func FormatRoundAge(age, timeout time.Duration) string {
	age = min(max(age, 0), timeout)
	return fmt.Sprintf("%.1fs / %s", age.Seconds(), timeout)
}
