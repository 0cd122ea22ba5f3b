package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fracalc/internal/cli"
	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/logging"
	"github.com/agbru/fracalc/internal/metrics"
	"github.com/agbru/fracalc/internal/orchestration"
)

const tracerName = "github.com/agbru/fracalc/internal/app"

// runEvaluate sums the configured terms once and presents the result.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Verbose {
		cli.PrintExecutionConfig(a.Config, out)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "evaluate", trace.WithAttributes(
		attribute.Int("fracalc.terms", len(a.Config.Terms)),
		attribute.Int("fracalc.width", a.Config.Width),
		attribute.Int("fracalc.workers", a.Config.Workers),
	))
	res := orchestration.Evaluate(ctx, a.Config.Terms, orchestration.Options{
		Width:   a.Config.Width,
		Workers: a.Config.Workers,
	})
	if errors.Is(res.Err, context.DeadlineExceeded) {
		res.Err = apperrors.TimeoutError{Operation: "evaluate", Limit: a.Config.Timeout}
	}
	endSpan(span, res)

	a.Recorder.ObserveEvaluation("cli", len(a.Config.Terms), res.Duration, res.Err)

	if res.Err != nil {
		a.Logger.Debug("evaluation failed",
			logging.Err(res.Err),
			logging.String("kind", metrics.ErrorKind(res.Err)),
			logging.Int64("duration_us", res.Duration.Microseconds()),
		)
		a.Presenter.PresentError(res.Err, res.Duration, a.ErrWriter)
		return apperrors.ExitCodeFor(res.Err)
	}
	a.Logger.Info("evaluation finished",
		logging.String("sum", res.Sum),
		logging.Int64("duration_us", res.Duration.Microseconds()),
	)

	a.Presenter.PresentResult(res, orchestration.PresentationOptions{
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}, out)

	return a.saveResultIfNeeded(res, out)
}

func (a *Application) saveResultIfNeeded(res orchestration.EvaluationResult, out io.Writer) int {
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if outputCfg.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteResultToFile(res, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !outputCfg.Quiet {
		cli.DisplaySavedFile(out, outputCfg.OutputFile)
	}
	return apperrors.ExitSuccess
}

func endSpan(span trace.Span, res orchestration.EvaluationResult) {
	defer span.End()
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, metrics.ErrorKind(res.Err))
		return
	}
	span.SetAttributes(
		attribute.String("fracalc.sum", res.Sum),
		attribute.Bool("fracalc.negative", res.Negative),
	)
}
