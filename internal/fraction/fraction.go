package fraction

import (
	"errors"
	"strconv"

	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/numeric"
)

// Fraction is a rational number stored as a non-negative numerator and
// denominator plus a separate sign.
//
// Values built by New, MustNew, Default or Add are always in lowest terms
// with a nonzero denominator, and zero always carries a positive sign.
// The zero value Fraction[T]{} is the invalid 0/0; Reduce and Add reject it.
type Fraction[T numeric.Signed] struct {
	numerator   T
	denominator T
	sign        int8
}

// New builds numerator/denominator in lowest terms. The sign of the result
// is the product of the signs of the two inputs.
//
// A zero denominator fails with ErrDivisionByZero. An input equal to the
// most negative value of T fails with ErrOverflow, since its magnitude
// cannot be stored.
func New[T numeric.Signed](numerator, denominator T) (Fraction[T], error) {
	var sign int8 = 1
	if numerator < 0 {
		sign = -sign
	}
	if denominator < 0 {
		sign = -sign
	}

	n, err := numeric.Abs(numerator)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("new", err)
	}
	d, err := numeric.Abs(denominator)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("new", err)
	}

	f := Fraction[T]{numerator: n, denominator: d, sign: sign}
	if err := f.reduce("new"); err != nil {
		return Fraction[T]{}, err
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for literals.
func MustNew[T numeric.Signed](numerator, denominator T) Fraction[T] {
	f, err := New(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the fraction 1/1.
func Default[T numeric.Signed]() Fraction[T] {
	return Fraction[T]{numerator: 1, denominator: 1, sign: 1}
}

// Reduce divides numerator and denominator by their greatest common
// divisor in place. It is idempotent.
func (f *Fraction[T]) Reduce() error {
	return f.reduce("reduce")
}

func (f *Fraction[T]) reduce(op string) error {
	if f.denominator == 0 {
		return apperrors.NewArithmeticError(op, apperrors.ErrDivisionByZero)
	}
	div := numeric.GCD(f.numerator, f.denominator)
	f.numerator /= div
	f.denominator /= div
	if f.numerator == 0 {
		f.sign = 1
	}
	return nil
}

// Add returns a+b in lowest terms.
//
// The operands are cross-multiplied with their signs applied:
//
//	n = sa*|a.n|*|b.d| + sb*|b.n|*|a.d|
//	d = |a.d|*|b.d|
//
// and the pair is handed to New for sign extraction and reduction. Any
// intermediate that does not fit T fails with ErrOverflow.
func Add[T numeric.Signed](a, b Fraction[T]) (Fraction[T], error) {
	if a.denominator == 0 || b.denominator == 0 {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", apperrors.ErrDivisionByZero)
	}

	left, err := numeric.Mul(a.numerator, b.denominator)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", err)
	}
	right, err := numeric.Mul(b.numerator, a.denominator)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", err)
	}
	// Magnitudes are non-negative, so negation cannot overflow.
	if a.sign < 0 {
		left = -left
	}
	if b.sign < 0 {
		right = -right
	}

	n, err := numeric.Add(left, right)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", err)
	}
	d, err := numeric.Mul(a.denominator, b.denominator)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", err)
	}

	// d > 0, so g >= 1 and neither division can overflow. A raw n of MinInt
	// is only an error when it survives reduction.
	g := numeric.GCD(n, d)
	sum, err := New(n/g, d/g)
	if err != nil {
		return Fraction[T]{}, apperrors.NewArithmeticError("add", errorCause(err))
	}
	return sum, nil
}

// Add returns f+g. See the package-level Add.
func (f Fraction[T]) Add(g Fraction[T]) (Fraction[T], error) {
	return Add(f, g)
}

// Numerator returns the stored numerator magnitude.
func (f Fraction[T]) Numerator() T { return f.numerator }

// Denominator returns the stored denominator magnitude.
func (f Fraction[T]) Denominator() T { return f.denominator }

// Sign returns +1 or -1. The zero value reports 0.
func (f Fraction[T]) Sign() int { return int(f.sign) }

// SignedNumerator returns the numerator with the sign folded in.
func (f Fraction[T]) SignedNumerator() T {
	if f.sign < 0 {
		return -f.numerator
	}
	return f.numerator
}

// IsZero reports whether f is a valid fraction equal to zero.
func (f Fraction[T]) IsZero() bool {
	return f.numerator == 0 && f.denominator != 0
}

// IsNegative reports whether f is strictly below zero.
func (f Fraction[T]) IsNegative() bool {
	return f.sign < 0 && f.numerator != 0
}

// String formats f as "n/d", with a leading "-" for negative values.
func (f Fraction[T]) String() string {
	buf := make([]byte, 0, 24)
	if f.IsNegative() {
		buf = append(buf, '-')
	}
	buf = strconv.AppendInt(buf, int64(f.numerator), 10)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, int64(f.denominator), 10)
	return string(buf)
}

// errorCause strips an ArithmeticError down to its failure kind so that
// re-wrapping does not stack operation names.
func errorCause(err error) error {
	var ae apperrors.ArithmeticError
	if errors.As(err, &ae) {
		return ae.Cause
	}
	return err
}
