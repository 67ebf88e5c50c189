package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/expr"
	"github.com/physical-quantities/units/internal/expr/lexer"
	"github.com/physical-quantities/units/pkg/unit"
)

// Definition describes a unit to register. Exactly one of Unit or
// Expression should be set; Unit wins when both are.
type Definition struct {
	Unit       *unit.Unit
	Expression string

	// Offset, when non-zero, replaces the offset of the evaluated unit. It
	// is the only way to define an affine unit from an expression, e.g.
	// degC as "K" with offset 273.15.
	Offset float64

	Comment string
	URL     string

	Prefixed bool
	Base     *unit.Unit
}

// AddUnit registers name. An Expression is evaluated against the current
// registry contents; the resulting unit is renamed to {name: 1} and carries
// the definition's metadata. Redefining an existing name fails with
// unit.ErrDuplicateUnit.
func (r *Registry) AddUnit(name string, def Definition) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addUnitLocked(name, def)
}

// Define registers name and, unless rng is empty or PrefixNone, its
// prefixed variants, under one write lock.
func (r *Registry) Define(name string, def Definition, rng PrefixRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.addUnitLocked(name, def); err != nil {
		return err
	}
	if rng == "" || rng == PrefixNone {
		return nil
	}
	return r.addPrefixedLocked(name, rng)
}

func (r *Registry) addUnitLocked(name string, def Definition) (string, error) {
	if err := r.checkNameLocked(name); err != nil {
		return "", fmt.Errorf("add unit: %w", err)
	}

	var u unit.Unit
	switch {
	case def.Unit != nil:
		u = *def.Unit
	case def.Expression != "":
		evaluated, err := expr.EvaluateUnit(def.Expression, tableScope{r})
		if err != nil {
			return "", fmt.Errorf("add unit %q: %w", name, err)
		}
		u = evaluated
	default:
		return "", fmt.Errorf("add unit %q: no unit or expression given: %w", name, unit.ErrInvalidExpression)
	}

	u = u.WithName(name)
	if def.Offset != 0 {
		u.Offset = def.Offset
	}
	u.Meta = unit.Metadata{Comment: def.Comment, URL: def.URL}
	u.Prefixed = def.Prefixed
	u.Base = nil
	if def.Prefixed && def.Base != nil {
		base := *def.Base
		u.Base = &base
	}

	r.units[name] = u
	r.order = append(r.order, name)

	r.logger.Debug("unit registered",
		zap.String("name", name),
		zap.Stringer("dimensions", u.Dimensions),
		zap.Float64("factor", u.Factor),
		zap.Float64("offset", u.Offset),
		zap.Bool("prefixed", u.Prefixed),
	)
	return name, nil
}

func isIdentifier(name string) bool {
	return lexer.IsIdentifier(name)
}
