package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/fracalc/internal/orchestration"
	"github.com/agbru/fracalc/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatEquation renders the terms and their sum as "a + b = s".
// A result without terms renders as "= s".
func FormatEquation(result orchestration.EvaluationResult) string {
	if len(result.Terms) == 0 {
		return "= " + result.Sum
	}
	return strings.Join(result.Terms, " + ") + " = " + result.Sum
}

// DisplayResult prints the equation with a colored sum and, in verbose mode,
// the width and duration of the evaluation.
//
// Parameters:
//   - result: A successful evaluation.
//   - verbose: Adds the width and timing lines.
//   - out: The output writer.
func DisplayResult(result orchestration.EvaluationResult, verbose bool, out io.Writer) {
	lhs := strings.Join(result.Terms, " + ")
	if lhs != "" {
		fmt.Fprintf(out, "%s%s%s = ", ui.ColorSecondary(), lhs, ui.ColorReset())
	}
	fmt.Fprintf(out, "%s%s%s%s\n",
		ui.ColorBold(), ui.ColorForSign(result.Negative), result.Sum, ui.ColorReset())

	if !verbose {
		return
	}
	fmt.Fprintf(out, "\nWidth:    %d bits\n", result.Width)
	fmt.Fprintf(out, "Terms:    %d\n", len(result.Terms))
	fmt.Fprintf(out, "Duration: %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(result.Duration), ui.ColorReset())
}
