// Package numeric provides the integer helpers fractions are built on:
// a constraint over fixed-width signed integers, Euclid's gcd, and checked
// arithmetic that reports wrap-around instead of silently producing a
// wrong value.
package numeric

import (
	apperrors "github.com/agbru/fracalc/internal/errors"
)

// Signed is satisfied by every fixed-width signed integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm. Both inputs are expected to be non-negative magnitudes.
// GCD(0, n) is n and GCD(0, 0) is 0, so callers dividing by the result
// must rule out the double-zero case first.
func GCD[T Signed](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// Abs returns |x|. The most negative value of T has no positive
// counterpart and yields ErrOverflow.
func Abs[T Signed](x T) (T, error) {
	if x >= 0 {
		return x, nil
	}
	if -x < 0 {
		return 0, apperrors.ErrOverflow
	}
	return -x, nil
}

// Add returns a+b or ErrOverflow if the sum wraps.
func Add[T Signed](a, b T) (T, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, apperrors.ErrOverflow
	}
	return c, nil
}

// Mul returns a*b or ErrOverflow if the product wraps.
func Mul[T Signed](a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	// MinValue / -1 wraps back to MinValue, so the division check alone
	// misses it; the sign check catches that case.
	if c/b != a || ((a < 0) == (b < 0)) != (c > 0) {
		return 0, apperrors.ErrOverflow
	}
	return c, nil
}

// Narrow converts v to T, failing with ErrOverflow when v is out of range.
func Narrow[T Signed](v int64) (T, error) {
	t := T(v)
	if int64(t) != v {
		return 0, apperrors.ErrOverflow
	}
	return t, nil
}

// BitSize reports the width of T in bits.
func BitSize[T Signed]() int {
	var top T = 1
	bits := 1
	for top<<1 > 0 {
		top <<= 1
		bits++
	}
	return bits + 1
}
