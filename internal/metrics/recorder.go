// Package metrics records evaluation counters and latencies with Prometheus
// and exports them in the text exposition format.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/fracalc/internal/errors"
)

// Error kinds used as the "kind" label of fracalc_errors_total.
const (
	KindDivisionByZero = "division_by_zero"
	KindOverflow       = "overflow"
	KindValidation     = "validation"
	KindTimeout        = "timeout"
	KindOther          = "other"
)

// Recorder owns a private registry so that several recorders (one per test,
// for instance) never collide on metric registration.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	terms       prometheus.Counter
	errors      *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder creates a recorder with the fracalc metrics and the Go runtime
// collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fracalc_evaluations_total",
			Help: "Number of evaluations by source (cli, repl, tui) and outcome.",
		}, []string{"source", "outcome"}),
		terms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fracalc_terms_total",
			Help: "Number of terms added across all evaluations.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fracalc_errors_total",
			Help: "Number of failed evaluations by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fracalc_evaluation_duration_seconds",
			Help:    "Wall time of an evaluation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}
	r.registry.MustRegister(
		r.evaluations,
		r.terms,
		r.errors,
		r.duration,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveEvaluation records one evaluation of terms terms.
func (r *Recorder) ObserveEvaluation(source string, terms int, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		r.errors.WithLabelValues(ErrorKind(err)).Inc()
	}
	r.evaluations.WithLabelValues(source, outcome).Inc()
	r.terms.Add(float64(terms))
	r.duration.Observe(d.Seconds())
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric to path atomically, in the format read
// by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return apperrors.WrapError(err, "failed to write metrics file")
	}
	return nil
}

// ErrorKind classifies err for the "kind" label.
func ErrorKind(err error) string {
	var valErr apperrors.ValidationError
	var cfgErr apperrors.ConfigError
	switch {
	case errors.Is(err, apperrors.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, apperrors.ErrOverflow):
		return KindOverflow
	case errors.As(err, &valErr), errors.As(err, &cfgErr):
		return KindValidation
	case apperrors.IsContextError(err):
		return KindTimeout
	default:
		return KindOther
	}
}
