package unit

import "fmt"

// ConversionFactorTo returns the multiplicative factor converting values in u
// to values in other.
func (u Unit) ConversionFactorTo(other Unit) (float64, error) {
	if u.Dimensions != other.Dimensions {
		return 0, fmt.Errorf("convert %s to %s: %w", u.Name(), other.Name(), ErrIncompatibleDimensions)
	}
	if u.Offset != other.Offset && u.Factor != other.Factor {
		return 0, fmt.Errorf("convert %s to %s: %w", u.Name(), other.Name(), ErrNonExpressibleConversion)
	}
	return u.Factor / other.Factor, nil
}

// ConversionTupleTo returns (scale, offset) such that (x + offset) * scale
// converts x from u to other.
//
// With (s1, d1) and (s2, d2) the tuples of u and other relative to the base
// units, x goes to base as (x+d1)*s1 and back as y/s2 - d2, which reduces to
// (x + d1 - d2*s2/s1) * s1/s2.
func (u Unit) ConversionTupleTo(other Unit) (scale, offset float64, err error) {
	if u.Dimensions != other.Dimensions {
		return 0, 0, fmt.Errorf("convert %s to %s: %w", u.Name(), other.Name(), ErrIncompatibleDimensions)
	}
	scale = u.Factor / other.Factor
	offset = u.Offset - other.Offset*other.Factor/u.Factor
	return scale, offset, nil
}

// ConvertValue converts x expressed in from into to.
func ConvertValue(x float64, from, to Unit) (float64, error) {
	scale, offset, err := from.ConversionTupleTo(to)
	if err != nil {
		return 0, err
	}
	return (x + offset) * scale, nil
}
