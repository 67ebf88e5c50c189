package unit

// Term is an operand of a unit expression: either a Unit or a plain Scalar.
// The interface is sealed; only this package provides implementations.
type Term interface {
	isTerm()
}

// Scalar is a dimensionless plain number appearing in an expression, such as
// the 180 in "pi*rad/180".
type Scalar float64

func (Unit) isTerm()   {}
func (Scalar) isTerm() {}

// AsUnit returns the Unit held by t.
func AsUnit(t Term) (Unit, bool) {
	u, ok := t.(Unit)
	return u, ok
}

// AsScalar returns the number held by t.
func AsScalar(t Term) (float64, bool) {
	s, ok := t.(Scalar)
	return float64(s), ok
}
