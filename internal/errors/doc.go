// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// arithmetic, validation, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that carry a cause implement Unwrap() to support errors.Is()
// and errors.As(). Arithmetic failures are always one of the sentinels
// ErrDivisionByZero or ErrOverflow, wrapped in an ArithmeticError.
package apperrors
