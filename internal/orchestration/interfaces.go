//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"time"
)

// EvaluationResult encapsulates the outcome of summing a list of terms.
// It serves as the shared domain type between orchestration and presentation layers.
type EvaluationResult struct {
	// Terms holds each input term as the user gave it ("n/d").
	Terms []string
	// Sum is the reduced result. It is empty if an error occurred.
	Sum string
	// Negative reports whether the sum is below zero.
	Negative bool
	// Width is the integer bit size the computation ran at.
	Width int
	// Duration is the time taken to evaluate the terms.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ResultPresenter defines the interface for presenting evaluation results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats without modifying the evaluation logic.
type ResultPresenter interface {
	// PresentResult displays a successful evaluation.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)

	// PresentError displays a failed evaluation.
	PresentError(err error, duration time.Duration, out io.Writer)
}
