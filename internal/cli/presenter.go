package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/orchestration"
	"github.com/agbru/fracalc/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for evaluation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult displays a successful evaluation, honoring quiet and verbose.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result)
		return
	}
	DisplayResult(result, opts.Verbose, out)
}

// PresentError displays a failed evaluation with a hint matching its kind.
func (CLIResultPresenter) PresentError(err error, duration time.Duration, out io.Writer) {
	switch apperrors.ExitCodeFor(err) {
	case apperrors.ExitErrorTimeout:
		limit := FormatExecutionDuration(duration)
		var timeoutErr apperrors.TimeoutError
		if errors.As(err, &timeoutErr) {
			limit = timeoutErr.Limit.String()
		}
		fmt.Fprintf(out, "%sEvaluation timed out after %s.%s\n",
			ui.ColorYellow(), limit, ui.ColorReset())
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled.%s\n", ui.ColorYellow(), ui.ColorReset())
	case apperrors.ExitErrorArithmetic:
		fmt.Fprintf(out, "%sArithmetic error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}
