package orchestration

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fracalc/internal/config"
	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/fraction"
	"github.com/agbru/fracalc/internal/numeric"
)

const (
	// MinTermsPerWorker is the smallest chunk handed to a goroutine. Below
	// this, goroutine startup costs more than the additions it saves.
	MinTermsPerWorker = 256

	// ctxCheckInterval is how many additions run between cancellation checks.
	ctxCheckInterval = 64
)

// Options configures an evaluation.
type Options struct {
	// Width selects the integer type: 8, 16, 32 or 64 bits.
	Width int
	// Workers bounds the goroutines used by Sum (0 = one per CPU).
	Workers int
}

// Sum adds terms and returns the result in lowest terms. An empty list sums
// to 0/1.
//
// Terms are split into contiguous chunks of at least MinTermsPerWorker,
// each summed in its own goroutine; the partial sums are then combined in
// chunk order. The first failure cancels the remaining chunks.
//
// Because intermediate values depend on grouping, an input whose exact sum
// fits T may still report ErrOverflow for one worker count and not another.
// A successful result is the same for every worker count.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - terms: The fractions to add.
//   - workers: Upper bound on goroutines (0 = runtime.NumCPU()).
//
// Returns:
//   - fraction.Fraction[T]: The sum.
//   - error: An ArithmeticError or the context error.
func Sum[T numeric.Signed](ctx context.Context, terms []fraction.Fraction[T], workers int) (fraction.Fraction[T], error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunks := min(workers, len(terms)/MinTermsPerWorker)
	if chunks <= 1 {
		return sumSequential(ctx, terms)
	}

	size := (len(terms) + chunks - 1) / chunks
	count := (len(terms) + size - 1) / size
	partials := make([]fraction.Fraction[T], count)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		i := i
		lo := i * size
		hi := min(lo+size, len(terms))
		g.Go(func() error {
			s, err := sumSequential(gctx, terms[lo:hi])
			if err != nil {
				return err
			}
			partials[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fraction.Fraction[T]{}, err
	}
	return sumSequential(ctx, partials)
}

func sumSequential[T numeric.Signed](ctx context.Context, terms []fraction.Fraction[T]) (fraction.Fraction[T], error) {
	acc := fraction.MustNew[T](0, 1)
	for i, term := range terms {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fraction.Fraction[T]{}, err
			}
		}
		next, err := fraction.Add(acc, term)
		if err != nil {
			return fraction.Fraction[T]{}, err
		}
		acc = next
	}
	return acc, nil
}

// Evaluate converts raw terms to fractions of the configured width and sums
// them. Errors are reported in the result rather than returned, the way
// the presentation layer consumes them.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - terms: The raw numerator/denominator pairs.
//   - opts: Width and worker settings.
//
// Returns:
//   - EvaluationResult: The formatted terms, sum, width, duration and error.
func Evaluate(ctx context.Context, terms []config.Term, opts Options) EvaluationResult {
	switch opts.Width {
	case 8:
		return evaluate[int8](ctx, terms, opts)
	case 16:
		return evaluate[int16](ctx, terms, opts)
	case 32:
		return evaluate[int32](ctx, terms, opts)
	default:
		return evaluate[int64](ctx, terms, opts)
	}
}

func evaluate[T numeric.Signed](ctx context.Context, terms []config.Term, opts Options) EvaluationResult {
	start := time.Now()
	res := EvaluationResult{
		Terms: make([]string, len(terms)),
		Width: numeric.BitSize[T](),
	}

	fracs := make([]fraction.Fraction[T], len(terms))
	for i, t := range terms {
		res.Terms[i] = FormatTerm(t)
		f, err := newTerm[T](t, res.Width)
		if err != nil {
			res.Err = apperrors.WrapError(err, "term %d (%s)", i+1, res.Terms[i])
			res.Duration = time.Since(start)
			return res
		}
		fracs[i] = f
	}

	sum, err := Sum(ctx, fracs, opts.Workers)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = apperrors.CalculationError{Cause: err}
		return res
	}
	res.Sum = sum.String()
	res.Negative = sum.IsNegative()
	return res
}

// newTerm narrows a raw term to T and builds the fraction.
func newTerm[T numeric.Signed](t config.Term, width int) (fraction.Fraction[T], error) {
	n, err := numeric.Narrow[T](t.Numerator)
	if err != nil {
		return fraction.Fraction[T]{}, apperrors.ValidationError{
			Field:   "numerator",
			Message: fmt.Sprintf("%d does not fit in %d bits", t.Numerator, width),
		}
	}
	d, err := numeric.Narrow[T](t.Denominator)
	if err != nil {
		return fraction.Fraction[T]{}, apperrors.ValidationError{
			Field:   "denominator",
			Message: fmt.Sprintf("%d does not fit in %d bits", t.Denominator, width),
		}
	}
	return fraction.New(n, d)
}

// FormatTerm renders a raw term exactly as entered.
func FormatTerm(t config.Term) string {
	return fmt.Sprintf("%d/%d", t.Numerator, t.Denominator)
}
