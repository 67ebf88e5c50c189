package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/physical-quantities/units/pkg/unit"
)

// PrefixRange selects a set of SI scaling prefixes.
type PrefixRange string

const (
	// PrefixNone registers no prefixed variants.
	PrefixNone PrefixRange = "none"
	// Engineering covers tera (1e12) down to atto (1e-18).
	Engineering PrefixRange = "engineering"
	// Full covers yotta (1e24) down to yocto (1e-24).
	Full PrefixRange = "full"
)

// Prefix is a scaling prefix such as "k" for 1e3.
type Prefix struct {
	Symbol string
	Value  float64
}

var fullPrefixes = []Prefix{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"mu", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21},
	{"y", 1e-24},
}

var engineeringPrefixes = []Prefix{
	{"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"mu", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18},
}

// ParsePrefixRange parses a range name. The empty string means PrefixNone.
func ParsePrefixRange(s string) (PrefixRange, error) {
	switch PrefixRange(s) {
	case "", PrefixNone:
		return PrefixNone, nil
	case Engineering:
		return Engineering, nil
	case Full:
		return Full, nil
	default:
		return "", fmt.Errorf("registry: unknown prefix range %q (want none, engineering or full)", s)
	}
}

// Prefixes returns the prefixes of the range, largest first.
func (p PrefixRange) Prefixes() []Prefix {
	var src []Prefix
	switch p {
	case Engineering:
		src = engineeringPrefixes
	case Full:
		src = fullPrefixes
	default:
		return nil
	}
	out := make([]Prefix, len(src))
	copy(out, src)
	return out
}

// AddPrefixed registers prefix+name for every prefix in rng, scaling the
// base unit's factor by the prefix value. Names already registered are
// skipped, so repeated calls are harmless.
func (r *Registry) AddPrefixed(name string, rng PrefixRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addPrefixedLocked(name, rng)
}

func (r *Registry) addPrefixedLocked(name string, rng PrefixRange) error {
	base, ok := r.units[name]
	if !ok {
		return &unit.UnknownUnitError{Token: name, Suggestions: r.suggestLocked(name)}
	}

	added := 0
	for _, prefix := range rng.Prefixes() {
		prefixed := prefix.Symbol + name
		if r.existsLocked(prefixed) {
			continue
		}
		scaled, err := unit.Scale(base, prefix.Value)
		if err != nil {
			return fmt.Errorf("prefix %q: %w", name, err)
		}
		if _, err := r.addUnitLocked(prefixed, Definition{Unit: &scaled, Prefixed: true, Base: &base}); err != nil {
			return err
		}
		added++
	}

	r.logger.Debug("prefixed units registered",
		zap.String("base", name),
		zap.String("range", string(rng)),
		zap.Int("added", added),
	)
	return nil
}
