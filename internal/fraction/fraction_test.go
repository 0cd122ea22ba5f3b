package fraction

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/fracalc/internal/errors"
)

// fields is a shorthand for the observable state of a fraction.
type fields struct {
	n, d int64
	sign int
}

func fieldsOf(f Fraction[int64]) fields {
	return fields{f.Numerator(), f.Denominator(), f.Sign()}
}

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n, d int64
		want fields
	}{
		{"already reduced", 1, 2, fields{1, 2, 1}},
		{"reduces on construction", 2, 4, fields{1, 2, 1}},
		{"negative numerator", -3, 6, fields{1, 2, -1}},
		{"negative denominator", 3, -6, fields{1, 2, -1}},
		{"both negative", -3, -6, fields{1, 2, 1}},
		{"zero numerator", 0, 5, fields{0, 1, 1}},
		{"zero over negative", 0, -5, fields{0, 1, 1}},
		{"whole number", 12, 4, fields{3, 1, 1}},
		{"coprime large", math.MaxInt64, 2, fields{math.MaxInt64, 2, 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := New(tt.n, tt.d)
			if err != nil {
				t.Fatalf("New(%d, %d) unexpected error: %v", tt.n, tt.d, err)
			}
			if got := fieldsOf(f); got != tt.want {
				t.Errorf("New(%d, %d) = %+v, want %+v", tt.n, tt.d, got, tt.want)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n, d int64
		kind error
	}{
		{"zero denominator", 1, 0, apperrors.ErrDivisionByZero},
		{"zero over zero", 0, 0, apperrors.ErrDivisionByZero},
		{"min numerator", math.MinInt64, 1, apperrors.ErrOverflow},
		{"min denominator", 1, math.MinInt64, apperrors.ErrOverflow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.n, tt.d)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("New(%d, %d) error = %v, want %v", tt.n, tt.d, err, tt.kind)
			}
			var arithErr apperrors.ArithmeticError
			if !errors.As(err, &arithErr) || arithErr.Op != "new" {
				t.Errorf("expected ArithmeticError with Op \"new\", got %#v", err)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustNew(1, 0) should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, apperrors.ErrDivisionByZero) {
			t.Errorf("panic value = %v, want ErrDivisionByZero", r)
		}
	}()
	MustNew[int64](1, 0)
}

func TestReduce(t *testing.T) {
	t.Parallel()

	f := MustNew[int64](2, 4)
	if err := f.Reduce(); err != nil {
		t.Fatalf("Reduce() unexpected error: %v", err)
	}
	if f.Numerator() != 1 || f.Denominator() != 2 {
		t.Errorf("Reduce() = %d/%d, want 1/2", f.Numerator(), f.Denominator())
	}

	// Reducing a value that is already in lowest terms changes nothing.
	before := f
	if err := f.Reduce(); err != nil {
		t.Fatalf("second Reduce() unexpected error: %v", err)
	}
	if f != before {
		t.Errorf("Reduce() is not idempotent: %v then %v", before, f)
	}
}

func TestReduce_UnreducedLiteral(t *testing.T) {
	t.Parallel()

	f := Fraction[int32]{numerator: 18, denominator: 12, sign: -1}
	if err := f.Reduce(); err != nil {
		t.Fatalf("Reduce() unexpected error: %v", err)
	}
	if f.Numerator() != 3 || f.Denominator() != 2 || f.Sign() != -1 {
		t.Errorf("Reduce() = %v (sign %d), want -3/2", f, f.Sign())
	}
}

func TestReduce_ZeroValue(t *testing.T) {
	t.Parallel()

	var f Fraction[int64]
	err := f.Reduce()
	if !errors.Is(err, apperrors.ErrDivisionByZero) {
		t.Fatalf("Reduce() on zero value error = %v, want ErrDivisionByZero", err)
	}
	var arithErr apperrors.ArithmeticError
	if !errors.As(err, &arithErr) || arithErr.Op != "reduce" {
		t.Errorf("expected Op \"reduce\", got %#v", err)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	f := Default[int64]()
	if got := fieldsOf(f); got != (fields{1, 1, 1}) {
		t.Errorf("Default() = %+v, want 1/1 positive", got)
	}
	if f.String() != "1/1" {
		t.Errorf("Default().String() = %q, want %q", f.String(), "1/1")
	}
}

// TestAdd covers the corrected addition rule: operands are cross-multiplied
// in numerator/denominator order and their signs are honored. The literal
// 1/3 + 2/3 case gives 1/1 under either rule; 1/2 + 2/3 = 7/6 is the case
// that distinguishes a swapped numerator/denominator.
func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		a, b   Fraction[int64]
		want   string
		fields fields
	}{
		{"thirds sum to one", MustNew[int64](1, 3), MustNew[int64](2, 3), "1/1", fields{1, 1, 1}},
		{"half plus two thirds", MustNew[int64](1, 2), MustNew[int64](2, 3), "7/6", fields{7, 6, 1}},
		{"negative plus positive", MustNew[int64](-1, 2), MustNew[int64](1, 3), "-1/6", fields{1, 6, -1}},
		{"positive plus negative", MustNew[int64](1, 2), MustNew[int64](1, -3), "1/6", fields{1, 6, 1}},
		{"both negative", MustNew[int64](-1, 4), MustNew[int64](-1, 4), "-1/2", fields{1, 2, -1}},
		{"cancel to zero", MustNew[int64](3, 4), MustNew[int64](-6, 8), "0/1", fields{0, 1, 1}},
		{"zero is identity", MustNew[int64](0, 7), MustNew[int64](5, 9), "5/9", fields{5, 9, 1}},
		{"default plus default", Default[int64](), Default[int64](), "2/1", fields{2, 1, 1}},
		{"unreduced numerator at min", MustNew[int64](-1, 2), MustNew[int64](math.MinInt64/2+1, 2), "-2305843009213693952/1", fields{2305843009213693952, 1, -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Add(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Add(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			}
			if got.String() != tt.want {
				t.Errorf("Add(%v, %v) = %v, want %s", tt.a, tt.b, got, tt.want)
			}
			if fieldsOf(got) != tt.fields {
				t.Errorf("Add(%v, %v) fields = %+v, want %+v", tt.a, tt.b, fieldsOf(got), tt.fields)
			}

			// The method form and swapped operands agree.
			viaMethod, err := tt.b.Add(tt.a)
			if err != nil || viaMethod != got {
				t.Errorf("%v.Add(%v) = %v, %v; want %v", tt.b, tt.a, viaMethod, err, got)
			}
		})
	}
}

func TestAdd_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b Fraction[int8]
		kind error
	}{
		{"zero value left", Fraction[int8]{}, MustNew[int8](1, 2), apperrors.ErrDivisionByZero},
		{"zero value right", MustNew[int8](1, 2), Fraction[int8]{}, apperrors.ErrDivisionByZero},
		{"denominator product overflows", MustNew[int8](1, 16), MustNew[int8](1, 15), apperrors.ErrOverflow},
		{"cross product overflows", MustNew[int8](100, 3), MustNew[int8](100, 7), apperrors.ErrOverflow},
		{"numerator sum overflows", MustNew[int8](100, 1), MustNew[int8](100, 1), apperrors.ErrOverflow},
		{"negative sum hits min", MustNew[int8](-64, 1), MustNew[int8](-64, 1), apperrors.ErrOverflow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Add(tt.a, tt.b)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Add(%v, %v) error = %v, want %v", tt.a, tt.b, err, tt.kind)
			}
			var arithErr apperrors.ArithmeticError
			if !errors.As(err, &arithErr) || arithErr.Op != "add" {
				t.Errorf("expected Op \"add\", got %#v", err)
			}
		})
	}
}

// TestAdd_ReducesBeforeRange checks that an intermediate numerator equal to
// the minimum value of T is accepted when the reduced sum fits.
func TestAdd_ReducesBeforeRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b Fraction[int8]
		want string
	}{
		{"reduces away min", MustNew[int8](-1, 2), MustNew[int8](-63, 2), "-32/1"},
		{"odd halves", MustNew[int8](-3, 2), MustNew[int8](-61, 2), "-32/1"},
		{"min over four", MustNew[int8](-31, 4), MustNew[int8](-1, 4), "-8/1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Add(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Add(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			}
			if got.String() != tt.want {
				t.Errorf("Add(%v, %v) = %v, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		f    Fraction[int64]
		want string
	}{
		{MustNew[int64](1, 2), "1/2"},
		{MustNew[int64](-1, 2), "-1/2"},
		{MustNew[int64](4, -8), "-1/2"},
		{MustNew[int64](0, -3), "0/1"},
		{MustNew[int64](math.MaxInt64, 1), "9223372036854775807/1"},
		{Fraction[int64]{}, "0/0"},
	}

	for _, tt := range tests {
		tt := tt
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	neg := MustNew[int16](-6, 4)
	if neg.SignedNumerator() != -3 {
		t.Errorf("SignedNumerator() = %d, want -3", neg.SignedNumerator())
	}
	if !neg.IsNegative() || neg.IsZero() {
		t.Errorf("IsNegative/IsZero = %v/%v for %v", neg.IsNegative(), neg.IsZero(), neg)
	}

	zero := MustNew[int16](0, 9)
	if !zero.IsZero() || zero.IsNegative() {
		t.Errorf("IsZero/IsNegative = %v/%v for %v", zero.IsZero(), zero.IsNegative(), zero)
	}

	var invalid Fraction[int16]
	if invalid.IsZero() {
		t.Error("zero value 0/0 should not report IsZero")
	}
	if invalid.Sign() != 0 {
		t.Errorf("zero value Sign() = %d, want 0", invalid.Sign())
	}
}

func TestWidths(t *testing.T) {
	t.Parallel()

	if got := MustNew[int8](-100, 50).String(); got != "-2/1" {
		t.Errorf("int8: got %s", got)
	}
	if got := MustNew[int32](1<<20, 1<<10).String(); got != "1024/1" {
		t.Errorf("int32: got %s", got)
	}
	sum, err := MustNew(1, 6).Add(MustNew(1, 3))
	if err != nil || sum.String() != "1/2" {
		t.Errorf("int: got %v, %v", sum, err)
	}
}
