package unit

import (
	"fmt"
	"strings"
)

// Metadata is display-only documentation attached to registered units.
type Metadata struct {
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Unit is a physical unit: Factor relative to the SI base units, an additive
// Offset applied before scaling (temperature-like units only) and the
// exponent of each base dimension.
type Unit struct {
	Dimensions Dimensions
	Factor     float64
	Offset     float64
	Names      Names

	// Prefixed marks units generated by the prefix expander; Base then points
	// at the unscaled unit. Provenance only, ignored by the algebra.
	Prefixed bool
	Base     *Unit

	Meta Metadata
}

// New returns a unit named symbol with the given factor and dimensions.
func New(symbol string, factor float64, dims Dimensions) Unit {
	return Unit{
		Dimensions: dims,
		Factor:     factor,
		Names:      NewNames(symbol),
	}
}

// Dimensionless returns the unit 1 scaled by factor.
func Dimensionless(factor float64) Unit {
	return Unit{Factor: factor}
}

// WithName returns a copy whose names are replaced by the single entry
// {name: 1}.
func (u Unit) WithName(name string) Unit {
	u.Names = NewNames(name)
	return u
}

// IsDimensionless reports whether every dimension exponent is zero.
func (u Unit) IsDimensionless() bool {
	return u.Dimensions.IsZero()
}

// IsAngle reports whether u is a planar angle: the angle exponent is 1 and
// every other exponent is 0.
func (u Unit) IsAngle() bool {
	return u.Dimensions == Dimensions{Angle: 1}
}

// Name renders the canonical name: positive powers joined with "*", each
// negative power after a "/", and "**p" for magnitudes above one.
func (u Unit) Name() string {
	var num, den strings.Builder
	for _, sym := range u.Names.order {
		p := u.Names.powers[sym]
		switch {
		case p > 0:
			if num.Len() > 0 {
				num.WriteByte('*')
			}
			num.WriteString(sym)
			if p > 1 {
				fmt.Fprintf(&num, "**%d", p)
			}
		case p < 0:
			den.WriteByte('/')
			den.WriteString(sym)
			if p < -1 {
				fmt.Fprintf(&den, "**%d", -p)
			}
		}
	}
	if num.Len() == 0 {
		return "1" + den.String()
	}
	return num.String() + den.String()
}

// Display renders Name with the display aliases applied.
func (u Unit) Display() string {
	return displayReplacer.Replace(u.Name())
}

// String implements fmt.Stringer using Display.
func (u Unit) String() string {
	return u.Display()
}

// GoString implements fmt.GoStringer.
func (u Unit) GoString() string {
	return fmt.Sprintf("<Unit %s factor=%g dims=%v>", u.Name(), u.Factor, u.Dimensions)
}

var (
	displayReplacer   = strings.NewReplacer("**", "^", "mu", "µ", "deg", "°")
	normalizeReplacer = strings.NewReplacer("^", "**", "µ", "mu", "μ", "mu", "°", "deg")
)

// Normalize maps display aliases back to parseable text: it trims
// whitespace and replaces "^" with "**", the micro sign with "mu" and the
// degree sign with "deg".
func Normalize(text string) string {
	return normalizeReplacer.Replace(strings.TrimSpace(text))
}
