package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/format"
	"github.com/agbru/beaconfix/internal/resolver"
	"github.com/agbru/beaconfix/internal/ui"
)

// blankMarker stands for a word no beacon could recover.
const blankMarker = "_"

// DisplayResult writes a resolved result: the position, the recovered message
// and how long resolution took.
//
// Parameters:
//   - result: The resolved location and message.
//   - elapsed: The resolution duration.
//   - out: The output writer.
func DisplayResult(result resolver.Result, elapsed time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Position: %s(%.4f, %.4f)%s\n",
		ui.ColorBlue(), result.Location.X, result.Location.Y, ui.ColorReset())
	fmt.Fprintf(out, "Message:  %s%s%s\n",
		ui.ColorMagenta(), strings.Join(markBlanks(result.Message), " "), ui.ColorReset())
	fmt.Fprintf(out, "Words:    %d (%d unrecovered)\n", len(result.Message), countBlanks(result.Message))
	fmt.Fprintf(out, "Resolved in %s%s%s.\n",
		ui.ColorYellow(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
}

// markBlanks replaces unrecovered words with blankMarker for display.
func markBlanks(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		if w == "" {
			w = blankMarker
		}
		out[i] = w
	}
	return out
}

func countBlanks(words []string) int {
	n := 0
	for _, w := range words {
		if w == "" {
			n++
		}
	}
	return n
}

// DisplayError writes a failure and returns the exit code it maps to.
//
// Parameters:
//   - err: The resolution or configuration error.
//   - elapsed: Time spent before the failure.
//   - out: The output writer.
//
// Returns:
//   - int: The process exit code.
func DisplayError(err error, elapsed time.Duration, out io.Writer) int {
	var (
		validationErr apperrors.ValidationError
		unsolvableErr apperrors.UnsolvableError
		noMessageErr  apperrors.NoMessageError
		timeoutErr    apperrors.TimeoutError
	)
	label := "Error"
	switch {
	case errors.As(err, &validationErr):
		label = "Invalid readings"
	case errors.As(err, &unsolvableErr):
		label = "Position unresolved"
	case errors.As(err, &noMessageErr):
		label = "Message unrecovered"
	case errors.As(err, &timeoutErr):
		label = "Timed out"
	case errors.Is(err, context.Canceled):
		label = "Canceled"
	}
	fmt.Fprintf(out, "%s%s after %s:%s %v\n",
		ui.ColorRed(), label, format.FormatExecutionDuration(elapsed), ui.ColorReset(), err)
	return apperrors.ExitCode(err)
}
