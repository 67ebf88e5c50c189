package registry

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/physical-quantities/units/pkg/unit"
)

type baseEntry struct {
	name    string
	factor  float64
	dims    unit.Dimensions
	comment string
	url     string
	prefix  PrefixRange
}

type derivedEntry struct {
	name       string
	expression string
	comment    string
	url        string
	prefix     PrefixRange
}

// Prefixing of mass is driven off the gram so that mg, mug, ... exist while
// kg stays the coherent base unit.
var baseUnits = []baseEntry{
	{"kg", 1, unit.Dimensions{unit.Mass: 1}, "Kilogram", "https://en.wikipedia.org/wiki/Kilogram", PrefixNone},
	{"m", 1, unit.Dimensions{unit.Length: 1}, "Metre", "https://en.wikipedia.org/wiki/Metre", Engineering},
	{"g", 0.001, unit.Dimensions{unit.Mass: 1}, "Gram", "https://en.wikipedia.org/wiki/Gram", Engineering},
	{"s", 1, unit.Dimensions{unit.Time: 1}, "Second", "https://en.wikipedia.org/wiki/Second", Engineering},
	{"A", 1, unit.Dimensions{unit.Current: 1}, "Ampere", "https://en.wikipedia.org/wiki/Ampere", Engineering},
	{"K", 1, unit.Dimensions{unit.Temperature: 1}, "Kelvin", "https://en.wikipedia.org/wiki/Kelvin", Engineering},
	{"mol", 1, unit.Dimensions{unit.Amount: 1}, "Mole", "https://en.wikipedia.org/wiki/Mole_(unit)", Engineering},
	{"cd", 1, unit.Dimensions{unit.Luminosity: 1}, "Candela", "https://en.wikipedia.org/wiki/Candela", Engineering},
	{"rad", 1, unit.Dimensions{unit.Angle: 1}, "Radian", "https://en.wikipedia.org/wiki/Radian", Engineering},
	{"sr", 1, unit.Dimensions{unit.SolidAngle: 1}, "Steradian", "https://en.wikipedia.org/wiki/Steradian", Engineering},
}

var derivedUnits = []derivedEntry{
	{"Hz", "1/s", "Hertz", "https://en.wikipedia.org/wiki/Hertz", Engineering},
	{"N", "m*kg/s**2", "Newton", "https://en.wikipedia.org/wiki/Newton_(unit)", Engineering},
	{"Pa", "N/m**2", "Pascal", "https://en.wikipedia.org/wiki/Pascal_(unit)", Engineering},
	{"J", "N*m", "Joule", "https://en.wikipedia.org/wiki/Joule", Engineering},
	{"W", "J/s", "Watt", "https://en.wikipedia.org/wiki/Watt", Engineering},
	{"C", "s*A", "Coulomb", "https://en.wikipedia.org/wiki/Coulomb", Engineering},
	{"V", "W/A", "Volt", "https://en.wikipedia.org/wiki/Volt", Engineering},
	{"F", "C/V", "Farad", "https://en.wikipedia.org/wiki/Farad", Engineering},
	{"Ohm", "V/A", "Ohm", "https://en.wikipedia.org/wiki/Ohm", Engineering},
	{"S", "A/V", "Siemens", "https://en.wikipedia.org/wiki/Siemens_(unit)", Engineering},
	{"Wb", "V*s", "Weber", "https://en.wikipedia.org/wiki/Weber_(unit)", Engineering},
	{"T", "Wb/m**2", "Tesla", "https://en.wikipedia.org/wiki/Tesla_(unit)", Engineering},
	{"H", "Wb/A", "Henry", "https://en.wikipedia.org/wiki/Henry_(unit)", Engineering},
	{"lm", "cd*sr", "Lumen", "https://en.wikipedia.org/wiki/Lumen_(unit)", Engineering},
	{"lx", "lm/m**2", "Lux", "https://en.wikipedia.org/wiki/Lux", Engineering},
}

// Registered after the pi constant, which their expressions reference.
var angleAndTimeUnits = []derivedEntry{
	{"deg", "pi*rad/180", "Degree", "https://en.wikipedia.org/wiki/Degree_(angle)", PrefixNone},
	{"arcmin", "pi*rad/180/60", "Minute of arc", "https://en.wikipedia.org/wiki/Minute_and_second_of_arc", PrefixNone},
	{"arcsec", "pi*rad/180/3600", "Second of arc", "https://en.wikipedia.org/wiki/Minute_and_second_of_arc", PrefixNone},
	{"min", "60*s", "Minute", "https://en.wikipedia.org/wiki/Minute", PrefixNone},
	{"h", "60*60*s", "Hour", "https://en.wikipedia.org/wiki/Hour", PrefixNone},
}

// Bootstrap populates the registry with the built-in units and moves it to
// PhaseLive. It runs at most once; later calls return the first result.
func (r *Registry) Bootstrap() error {
	r.bootOnce.Do(func() {
		r.bootErr = r.bootstrap()
	})
	return r.bootErr
}

func (r *Registry) bootstrap() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range baseUnits {
		u := unit.New(e.name, e.factor, e.dims)
		if _, err := r.addUnitLocked(e.name, Definition{Unit: &u, Comment: e.comment, URL: e.url}); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		if err := r.addPrefixedLocked(e.name, e.prefix); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}

	if err := r.addDerivedLocked(derivedUnits); err != nil {
		return err
	}

	if err := r.checkNameLocked("pi"); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	r.constants["pi"] = math.Pi

	if err := r.addDerivedLocked(angleAndTimeUnits); err != nil {
		return err
	}

	r.phase = PhaseLive
	r.logger.Info("unit registry bootstrapped",
		zap.Int("units", len(r.units)),
		zap.Int("constants", len(r.constants)),
	)
	return nil
}

func (r *Registry) addDerivedLocked(entries []derivedEntry) error {
	for _, e := range entries {
		def := Definition{Expression: e.expression, Comment: e.comment, URL: e.url}
		if _, err := r.addUnitLocked(e.name, def); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		if err := r.addPrefixedLocked(e.name, e.prefix); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}
