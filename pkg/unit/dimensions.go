package unit

import (
	"fmt"
	"math"
	"strings"
)

// NumBaseDimensions is the length of every dimension vector.
const NumBaseDimensions = 9

// Indexes into a Dimensions vector.
const (
	Length = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminosity
	Angle
	SolidAngle
)

// BaseSymbols are the SI symbols of the base dimensions, in vector order.
var BaseSymbols = [NumBaseDimensions]string{"m", "kg", "s", "A", "K", "mol", "cd", "rad", "sr"}

// Dimensions holds one integer exponent per base dimension.
type Dimensions [NumBaseDimensions]int

// MaxExponent bounds the magnitude of every dimension exponent.
const MaxExponent = math.MaxInt32

// Add returns the elementwise sum.
func (d Dimensions) Add(o Dimensions) (Dimensions, error) {
	var out Dimensions
	for i := range d {
		out[i] = d[i] + o[i]
	}
	return out, out.check()
}

// Sub returns the elementwise difference.
func (d Dimensions) Sub(o Dimensions) (Dimensions, error) {
	var out Dimensions
	for i := range d {
		out[i] = d[i] - o[i]
	}
	return out, out.check()
}

// Scale multiplies every exponent by n.
func (d Dimensions) Scale(n int) (Dimensions, error) {
	var out Dimensions
	if !scalable(d.maxAbs(), n) {
		return out, fmt.Errorf("scale dimensions %s by %d: exponent out of range: %w", d, n, ErrIllegalExponent)
	}
	for i := range d {
		out[i] = d[i] * n
	}
	return out, nil
}

func (d Dimensions) check() error {
	if d.maxAbs() > MaxExponent {
		return fmt.Errorf("dimension exponent out of range: %w", ErrIllegalExponent)
	}
	return nil
}

func (d Dimensions) maxAbs() int {
	m := 0
	for _, p := range d {
		m = max(m, absInt(p))
	}
	return m
}

// scalable reports whether m*|n| stays within MaxExponent. Inputs are
// assumed to be within int range; n is checked before any multiplication.
func scalable(m, n int) bool {
	if n < -MaxExponent || n > MaxExponent || m > MaxExponent {
		return false
	}
	return m == 0 || absInt(n) <= MaxExponent/m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Root divides every exponent by r. The second result is false when some
// exponent is not a multiple of r.
func (d Dimensions) Root(r int) (Dimensions, bool) {
	var out Dimensions
	if r == 0 {
		return out, false
	}
	for i := range d {
		if d[i]%r != 0 {
			return out, false
		}
		out[i] = d[i] / r
	}
	return out, true
}

// IsZero reports whether every exponent is zero.
func (d Dimensions) IsZero() bool {
	return d == Dimensions{}
}

// Sum returns the sum of all exponents.
func (d Dimensions) Sum() int {
	total := 0
	for _, p := range d {
		total += p
	}
	return total
}

// String renders the vector in base symbols, e.g. "m*kg/s**2".
func (d Dimensions) String() string {
	var num, den []string
	for i, p := range d {
		switch {
		case p == 1:
			num = append(num, BaseSymbols[i])
		case p > 1:
			num = append(num, fmt.Sprintf("%s**%d", BaseSymbols[i], p))
		case p == -1:
			den = append(den, BaseSymbols[i])
		case p < -1:
			den = append(den, fmt.Sprintf("%s**%d", BaseSymbols[i], -p))
		}
	}
	s := "1"
	if len(num) > 0 {
		s = strings.Join(num, "*")
	}
	for _, sym := range den {
		s += "/" + sym
	}
	return s
}
