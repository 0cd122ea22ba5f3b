// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration], [FormatEquation].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fracalc/internal/orchestration"
	"github.com/agbru/fracalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the sum.
	Quiet bool
	// Verbose adds width and timing details.
	Verbose bool
}

// WriteResultToFile writes an evaluation result to a file: a few "#" header
// lines followed by the equation.
//
// Parameters:
//   - result: A successful evaluation.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.EvaluationResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Fraction Sum Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Width: %d bits\n", result.Width)
	fmt.Fprintf(file, "# Terms: %d\n", len(result.Terms))
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n", FormatEquation(result))

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns the sum alone, suitable for scripting.
func FormatQuietResult(result orchestration.EvaluationResult) string {
	return result.Sum
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result orchestration.EvaluationResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplaySavedFile confirms that the result was written to path.
func DisplaySavedFile(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorPrimary(), path, ui.ColorReset())
}
