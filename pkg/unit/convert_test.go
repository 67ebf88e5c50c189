package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fahrenheit = Unit{
	Dimensions: Dimensions{Temperature: 1},
	Factor:     5.0 / 9.0,
	Offset:     459.67,
	Names:      NewNames("degF"),
}

var kelvin = New("K", 1, Dimensions{Temperature: 1})

func TestConversionFactorTo(t *testing.T) {
	f, err := kilometre.ConversionFactorTo(metre)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, f)

	f, err = metre.ConversionFactorTo(kilometre)
	require.NoError(t, err)
	assert.InDelta(t, 0.001, f, 1e-15)

	_, err = metre.ConversionFactorTo(second)
	require.ErrorIs(t, err, ErrIncompatibleDimensions)
	assert.Contains(t, err.Error(), "convert m to s")
}

func TestConversionFactorTo_Reciprocal(t *testing.T) {
	speed := mustUnit(t)(Divide(kilometre, second))
	metrePerSecond := mustUnit(t)(Divide(metre, second))
	pairs := [][2]Unit{
		{kilometre, metre},
		{speed, metrePerSecond},
		{celsius, kelvin},
	}
	for _, p := range pairs {
		ab, err := p[0].ConversionFactorTo(p[1])
		require.NoError(t, err)
		ba, err := p[1].ConversionFactorTo(p[0])
		require.NoError(t, err)
		assert.InDelta(t, 1.0, ab*ba, 1e-12)
	}
}

func TestConversionFactorTo_NonExpressible(t *testing.T) {
	_, err := fahrenheit.ConversionFactorTo(kelvin)
	require.ErrorIs(t, err, ErrNonExpressibleConversion)
	assert.Contains(t, err.Error(), "degF")
	assert.Contains(t, err.Error(), "K")

	// Same factor, different offset: still a pure scale.
	f, err := celsius.ConversionFactorTo(kelvin)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestConversionTupleTo(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Unit
		value      float64
		expected   float64
		wantScale  float64
		wantOffset float64
	}{
		{"km to m", kilometre, metre, 2.5, 2500, 1000, 0},
		{"celsius to kelvin", celsius, kelvin, 0, 273.15, 1, 273.15},
		{"kelvin to celsius", kelvin, celsius, 273.15, 0, 1, -273.15},
		{"fahrenheit to kelvin", fahrenheit, kelvin, 32, 273.15, 5.0 / 9.0, 459.67},
		{"fahrenheit to celsius", fahrenheit, celsius, 212, 100, 5.0 / 9.0, 459.67 - 273.15*9.0/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, offset, err := tt.from.ConversionTupleTo(tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScale, scale, 1e-12)
			assert.InDelta(t, tt.wantOffset, offset, 1e-9)

			got, err := ConvertValue(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestConversionTupleTo_Incompatible(t *testing.T) {
	_, _, err := celsius.ConversionTupleTo(metre)
	require.ErrorIs(t, err, ErrIncompatibleDimensions)

	_, err = ConvertValue(1, metre, kilogram)
	require.ErrorIs(t, err, ErrIncompatibleDimensions)
}
