// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/beaconfix/internal/resolver"
	"github.com/agbru/beaconfix/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints a single line suitable for scripts.
	Quiet bool
}

// fileResult is the JSON document written by WriteResultToFile. It matches
// the HTTP response body with the resolution metadata added.
type fileResult struct {
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Message   string    `json:"message"`
	Mode      string    `json:"mode"`
	Duration  string    `json:"duration"`
	Generated time.Time `json:"generated"`
}

// WriteResultToFile writes a result as JSON to config.OutputFile, creating
// parent directories as needed. It does nothing when no file is configured.
//
// Parameters:
//   - result: The resolved result.
//   - elapsed: The resolution duration.
//   - mode: How the result was obtained ("single" or "split").
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result resolver.Result, elapsed time.Duration, mode string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	doc := fileResult{
		Message:   result.Text(),
		Mode:      mode,
		Duration:  elapsed.String(),
		Generated: time.Now().UTC(),
	}
	doc.Position.X = result.Location.X
	doc.Position.Y = result.Location.Y

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(config.OutputFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats a result as "x y message" on a single line.
func FormatQuietResult(result resolver.Result) string {
	return fmt.Sprintf("%g %g %s", result.Location.X, result.Location.Y, result.Text())
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, result resolver.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result according to config and saves it
// when an output file is configured.
//
// Parameters:
//   - out: The output writer.
//   - result: The resolved result.
//   - elapsed: The resolution duration.
//   - mode: How the result was obtained.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result resolver.Result, elapsed time.Duration, mode string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, elapsed, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, elapsed, mode, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
