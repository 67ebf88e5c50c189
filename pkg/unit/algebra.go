package unit

import (
	"fmt"
	"math"
)

// rootTolerance bounds |1/e - round(1/e)| for e to count as a reciprocal integer.
const rootTolerance = 1e-10

// Multiply returns a*b.
func Multiply(a, b Unit) (Unit, error) {
	if a.Offset != 0 || b.Offset != 0 {
		return Unit{}, fmt.Errorf("multiply %s by %s: %w", a.Name(), b.Name(), ErrNonAffineCombination)
	}
	dims, err := a.Dimensions.Add(b.Dimensions)
	if err != nil {
		return Unit{}, fmt.Errorf("multiply %s by %s: %w", a.Name(), b.Name(), err)
	}
	return Unit{
		Dimensions: dims,
		Factor:     a.Factor * b.Factor,
		Names:      Merge(a.Names, b.Names),
	}, nil
}

// Divide returns a/b.
func Divide(a, b Unit) (Unit, error) {
	if a.Offset != 0 || b.Offset != 0 {
		return Unit{}, fmt.Errorf("divide %s by %s: %w", a.Name(), b.Name(), ErrNonAffineCombination)
	}
	dims, err := a.Dimensions.Sub(b.Dimensions)
	if err != nil {
		return Unit{}, fmt.Errorf("divide %s by %s: %w", a.Name(), b.Name(), err)
	}
	return Unit{
		Dimensions: dims,
		Factor:     a.Factor / b.Factor,
		Names:      Difference(a.Names, b.Names),
	}, nil
}

// ReverseDivide returns b/a.
func ReverseDivide(a, b Unit) (Unit, error) {
	return Divide(b, a)
}

// Scale returns u*k. The scalar becomes a dimensionless name term, so
// Scale(s, 60) is named "s*60".
func Scale(u Unit, k float64) (Unit, error) {
	if u.Offset != 0 {
		return Unit{}, fmt.Errorf("multiply %s by %s: %w", u.Name(), FormatNumber(k), ErrNonAffineCombination)
	}
	return Unit{
		Dimensions: u.Dimensions,
		Factor:     u.Factor * k,
		Names:      u.Names.With(FormatNumber(k), 1),
	}, nil
}

// DivideScalar returns u/k.
func DivideScalar(u Unit, k float64) (Unit, error) {
	if u.Offset != 0 {
		return Unit{}, fmt.Errorf("divide %s by %s: %w", u.Name(), FormatNumber(k), ErrNonAffineCombination)
	}
	return Unit{
		Dimensions: u.Dimensions,
		Factor:     u.Factor / k,
		Names:      u.Names.With(FormatNumber(k), -1),
	}, nil
}

// ScalarDivide returns k/u.
func ScalarDivide(k float64, u Unit) (Unit, error) {
	if u.Offset != 0 {
		return Unit{}, fmt.Errorf("divide %s by %s: %w", FormatNumber(k), u.Name(), ErrNonAffineCombination)
	}
	dims, err := u.Dimensions.Scale(-1)
	if err != nil {
		return Unit{}, fmt.Errorf("divide %s by %s: %w", FormatNumber(k), u.Name(), err)
	}
	return Unit{
		Dimensions: dims,
		Factor:     k / u.Factor,
		Names:      Difference(NewNames(FormatNumber(k)), u.Names),
	}, nil
}

// Power returns u**e. Integer exponents scale dimensions and names; their
// magnitude, and that of every resulting exponent, is bounded by MaxExponent. A
// non-integer e is accepted only when 1/e is within rootTolerance of an
// integer r that divides every dimension exponent, in which case the r-th
// root is taken. When the names do not divide evenly they are replaced by a
// synthetic name: the numeric factor (if not 1) followed by the base symbols
// of the reduced dimensions.
func Power(u Unit, e float64) (Unit, error) {
	if u.Offset != 0 {
		return Unit{}, fmt.Errorf("raise %s to %s: %w", u.Name(), FormatNumber(e), ErrNonAffineCombination)
	}
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return Unit{}, fmt.Errorf("raise %s to %v: %w", u.Name(), e, ErrIllegalExponent)
	}
	if math.Abs(e) > MaxExponent {
		return Unit{}, fmt.Errorf("raise %s to %s: exponent out of range: %w", u.Name(), FormatNumber(e), ErrIllegalExponent)
	}
	if e == math.Trunc(e) {
		return powerInt(u, int(e))
	}

	inv := 1 / e
	if math.Abs(inv) > MaxExponent {
		return Unit{}, fmt.Errorf("raise %s to %s: root out of range: %w", u.Name(), FormatNumber(e), ErrIllegalExponent)
	}
	r := int(math.Floor(inv + 0.5))
	if r == 0 || math.Abs(inv-float64(r)) >= rootTolerance {
		return Unit{}, fmt.Errorf("raise %s to %s: only integer and inverse integer exponents are allowed: %w",
			u.Name(), FormatNumber(e), ErrIllegalExponent)
	}
	dims, ok := u.Dimensions.Root(r)
	if !ok {
		return Unit{}, fmt.Errorf("raise %s to %s: dimensions %v are not divisible by %d: %w",
			u.Name(), FormatNumber(e), u.Dimensions, r, ErrIllegalExponent)
	}

	factor := math.Pow(u.Factor, e)
	names, ok := u.Names.Root(r)
	if !ok {
		names = syntheticNames(factor, dims)
	}
	return Unit{Dimensions: dims, Factor: factor, Names: names}, nil
}

func powerInt(u Unit, n int) (Unit, error) {
	dims, err := u.Dimensions.Scale(n)
	if err != nil {
		return Unit{}, fmt.Errorf("raise %s to %d: %w", u.Name(), n, err)
	}
	if !scalable(u.Names.maxAbs(), n) {
		return Unit{}, fmt.Errorf("raise %s to %d: name power out of range: %w", u.Name(), n, ErrIllegalExponent)
	}
	return Unit{
		Dimensions: dims,
		Factor:     math.Pow(u.Factor, float64(n)),
		Names:      u.Names.Scale(n),
	}, nil
}

func syntheticNames(factor float64, dims Dimensions) Names {
	var names Names
	if factor != 1 {
		names = names.With(FormatNumber(factor), 1)
	}
	for i, p := range dims {
		names = names.With(BaseSymbols[i], p)
	}
	return names
}

// Compare orders two units of identical dimension by factor, returning -1, 0
// or 1.
func Compare(a, b Unit) (int, error) {
	if a.Dimensions != b.Dimensions {
		return 0, fmt.Errorf("compare %s with %s: %w", a.Name(), b.Name(), ErrIncompatibleDimensions)
	}
	switch {
	case a.Factor < b.Factor:
		return -1, nil
	case a.Factor > b.Factor:
		return 1, nil
	default:
		return 0, nil
	}
}
