package unit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		names    Names
		expected string
	}{
		{Names{}, "1"},
		{NewNames("m"), "m"},
		{Names{}.With("m", 1).With("s", -1), "m/s"},
		{Names{}.With("m", 1).With("kg", 1).With("s", -2), "m*kg/s**2"},
		{Names{}.With("s", -1), "1/s"},
		{Names{}.With("m", 2).With("A", -1).With("s", -3), "m**2/A/s**3"},
		{Names{}.With("m", 1).With("m", -1), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			u := Unit{Names: tt.names}
			assert.Equal(t, tt.expected, u.Name())
		})
	}
}

func TestDisplayAndNormalize(t *testing.T) {
	u := Unit{Names: Names{}.With("mum", 1).With("s", -2)}
	assert.Equal(t, "mum/s**2", u.Name())
	assert.Equal(t, "µm/s^2", u.Display())
	assert.Equal(t, "µm/s^2", u.String())
	assert.Equal(t, u.Name(), Normalize(u.Display()))

	deg := Unit{Names: NewNames("deg")}
	assert.Equal(t, "°", deg.Display())
	assert.Equal(t, "deg", Normalize(" ° "))
	assert.Equal(t, "mum", Normalize("μm"))
	assert.Equal(t, "N/m**2", Normalize("  N/m^2\t"))
}

func TestPredicates(t *testing.T) {
	assert.True(t, Dimensionless(3).IsDimensionless())
	assert.False(t, metre.IsDimensionless())

	assert.True(t, radian.IsAngle())
	assert.False(t, metre.IsAngle())
	assert.False(t, New("x", 1, Dimensions{Length: 1, Angle: 1, Time: -1}).IsAngle())
	assert.False(t, New("sr", 1, Dimensions{SolidAngle: 1}).IsAngle())
}

func TestWithName(t *testing.T) {
	n := mustUnit(t)(Multiply(metre, kilogram)).WithName("Nm")
	assert.Equal(t, "Nm", n.Name())
	assert.Equal(t, Dimensions{Length: 1, Mass: 1}, n.Dimensions)
}

func TestNames_MergeDifference(t *testing.T) {
	a := Names{}.With("m", 1).With("s", -1)
	b := Names{}.With("s", 1).With("kg", 2)

	merged := Merge(a, b)
	assert.Equal(t, []string{"m", "kg"}, merged.Symbols())
	assert.Equal(t, 2, merged.Power("kg"))
	assert.Equal(t, 0, merged.Power("s"))

	diff := Difference(a, b)
	assert.Equal(t, []string{"m", "s", "kg"}, diff.Symbols())
	assert.Equal(t, -2, diff.Power("s"))
	assert.Equal(t, -2, diff.Power("kg"))

	// operands untouched
	assert.Equal(t, -1, a.Power("s"))
	assert.Equal(t, 2, b.Len())
}

func TestNames_Root(t *testing.T) {
	n := Names{}.With("m", 4).With("s", -2)
	r, ok := n.Root(2)
	assert.True(t, ok)
	assert.True(t, r.Equal(Names{}.With("m", 2).With("s", -1)))

	_, ok = n.Root(3)
	assert.False(t, ok)
	_, ok = n.Root(0)
	assert.False(t, ok)
}

func TestDimensions(t *testing.T) {
	force := Dimensions{Length: 1, Mass: 1, Time: -2}
	assert.Equal(t, "m*kg/s**2", force.String())
	assert.Equal(t, "1", Dimensions{}.String())
	assert.Equal(t, 0, force.Sum())

	r, ok := Dimensions{Length: 2, Time: -4}.Root(2)
	assert.True(t, ok)
	assert.Equal(t, Dimensions{Length: 1, Time: -2}, r)

	_, ok = force.Root(2)
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "60", FormatNumber(60))
	assert.Equal(t, "-2", FormatNumber(-2))
	assert.Equal(t, "0.001", FormatNumber(0.001))
	assert.Equal(t, "1e-06", FormatNumber(1e-6))
	assert.Equal(t, "3.141592653589793", FormatNumber(math.Pi))
}

func TestAsUnit(t *testing.T) {
	var term Term = metre
	u, ok := AsUnit(term)
	assert.True(t, ok)
	assert.Equal(t, "m", u.Name())

	_, ok = AsUnit(Scalar(2))
	assert.False(t, ok)

	v, ok := AsScalar(Scalar(2))
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}
