// Package fraction implements a fixed-width rational number type.
//
// A Fraction keeps its numerator and denominator as non-negative magnitudes
// and records the overall sign separately. Every constructor reduces to
// lowest terms, so two fractions with equal value have identical fields.
//
// Arithmetic never wraps silently: a zero denominator reports
// apperrors.ErrDivisionByZero and an intermediate that does not fit the
// integer type reports apperrors.ErrOverflow, both inside an
// apperrors.ArithmeticError.
//
//	half := fraction.MustNew[int64](1, 2)
//	third := fraction.MustNew[int64](1, 3)
//	sum, err := half.Add(third) // 5/6
package fraction
