// Package expr evaluates restricted unit expressions.
//
// An expression is normalized (see unit.Normalize), parsed with the bounded
// grammar of the parser package and folded into a unit.Term by combining
// Scope lookups with the unit algebra. Nothing else can be expressed: there
// is no attribute access, no function call and no side effect.
package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/physical-quantities/units/internal/expr/lexer"
	"github.com/physical-quantities/units/internal/expr/parser"
	"github.com/physical-quantities/units/pkg/unit"
)

// Scope resolves identifiers to units or named constants.
type Scope interface {
	LookupTerm(name string) (unit.Term, bool)
}

// Suggester is optionally implemented by a Scope to propose names close to
// an unknown identifier.
type Suggester interface {
	Suggest(name string) []string
}

// Compile normalizes and parses text.
func Compile(text string) (parser.Node, error) {
	normalized := unit.Normalize(text)
	node, errs := parser.ParseString(normalized)
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse %q: %s: %w", text, errs[0].Error(), unit.ErrInvalidExpression)
	}
	return node, nil
}

// EvaluateString compiles text and evaluates it in scope.
func EvaluateString(text string, scope Scope) (unit.Term, error) {
	node, err := Compile(text)
	if err != nil {
		return nil, err
	}
	return Evaluate(node, scope, text)
}

// EvaluateUnit is EvaluateString for callers that need a unit; a plain
// number result fails with unit.ErrNotAUnit.
func EvaluateUnit(text string, scope Scope) (unit.Unit, error) {
	term, err := EvaluateString(text, scope)
	if err != nil {
		return unit.Unit{}, err
	}
	u, ok := unit.AsUnit(term)
	if !ok {
		return unit.Unit{}, fmt.Errorf("evaluate %q: %w", text, unit.ErrNotAUnit)
	}
	return u, nil
}

// Evaluate folds node into a term. source is only used in error messages.
func Evaluate(node parser.Node, scope Scope, source string) (unit.Term, error) {
	e := evaluator{scope: scope, source: source}
	return e.eval(node)
}

type evaluator struct {
	scope  Scope
	source string
}

func (e *evaluator) eval(node parser.Node) (unit.Term, error) {
	switch n := node.(type) {
	case *parser.NumberLit:
		return unit.Scalar(n.Value), nil
	case *parser.Ident:
		return e.lookup(n.Name)
	case *parser.Negate:
		operand, err := e.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		return e.negate(operand)
	case *parser.Binary:
		left, err := e.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return nil, err
		}
		var result unit.Term
		switch n.Op {
		case lexer.TOKEN_STAR:
			result, err = multiply(left, right)
		case lexer.TOKEN_SLASH:
			result, err = e.divide(left, right)
		case lexer.TOKEN_DOUBLE_STAR:
			result, err = e.power(left, right)
		default:
			return nil, fmt.Errorf("evaluate %q: unsupported operator %s: %w", e.source, n.Op, unit.ErrInvalidExpression)
		}
		if err != nil {
			return nil, err
		}
		return e.finite(result)
	default:
		return nil, fmt.Errorf("evaluate %q: unsupported node %T: %w", e.source, node, unit.ErrInvalidExpression)
	}
}

func (e *evaluator) lookup(name string) (unit.Term, error) {
	if term, ok := e.scope.LookupTerm(name); ok {
		return term, nil
	}
	unknown := &unit.UnknownUnitError{Token: name, Expression: e.source}
	if s, ok := e.scope.(Suggester); ok {
		unknown.Suggestions = s.Suggest(name)
	}
	return nil, unknown
}

func (e *evaluator) negate(t unit.Term) (unit.Term, error) {
	if s, ok := unit.AsScalar(t); ok {
		return unit.Scalar(-s), nil
	}
	u, _ := unit.AsUnit(t)
	return nil, fmt.Errorf("evaluate %q: cannot negate unit %s: %w", e.source, u.Name(), unit.ErrInvalidExpression)
}

func multiply(left, right unit.Term) (unit.Term, error) {
	ls, lScalar := unit.AsScalar(left)
	rs, rScalar := unit.AsScalar(right)
	lu, _ := unit.AsUnit(left)
	ru, _ := unit.AsUnit(right)

	switch {
	case lScalar && rScalar:
		return unit.Scalar(ls * rs), nil
	case rScalar:
		return unit.Scale(lu, rs)
	case lScalar:
		return unit.Scale(ru, ls)
	default:
		return unit.Multiply(lu, ru)
	}
}

func (e *evaluator) divide(left, right unit.Term) (unit.Term, error) {
	ls, lScalar := unit.AsScalar(left)
	rs, rScalar := unit.AsScalar(right)
	lu, _ := unit.AsUnit(left)
	ru, _ := unit.AsUnit(right)

	if rScalar && rs == 0 {
		return nil, fmt.Errorf("evaluate %q: division by zero: %w", e.source, unit.ErrInvalidExpression)
	}

	switch {
	case lScalar && rScalar:
		return unit.Scalar(ls / rs), nil
	case rScalar:
		return unit.DivideScalar(lu, rs)
	case lScalar:
		return unit.ScalarDivide(ls, ru)
	default:
		return unit.Divide(lu, ru)
	}
}

func (e *evaluator) power(base, exponent unit.Term) (unit.Term, error) {
	exp, ok := unit.AsScalar(exponent)
	if !ok {
		u, _ := unit.AsUnit(exponent)
		return nil, fmt.Errorf("evaluate %q: exponent %s is not a number: %w", e.source, u.Name(), unit.ErrIllegalExponent)
	}
	if s, ok := unit.AsScalar(base); ok {
		return unit.Scalar(math.Pow(s, exp)), nil
	}
	u, _ := unit.AsUnit(base)
	return unit.Power(u, exp)
}

// finite rejects scalars and unit factors that overflowed to ±Inf or became
// NaN, so no conversion is ever computed from them.
func (e *evaluator) finite(t unit.Term) (unit.Term, error) {
	if s, ok := unit.AsScalar(t); ok {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("evaluate %q: value is not finite: %w", e.source, unit.ErrInvalidExpression)
		}
		return t, nil
	}
	u, _ := unit.AsUnit(t)
	if math.IsNaN(u.Factor) || math.IsInf(u.Factor, 0) || u.Factor == 0 {
		return nil, fmt.Errorf("evaluate %q: factor of %s is not a finite non-zero number: %w",
			e.source, u.Name(), unit.ErrInvalidExpression)
	}
	return t, nil
}

// IsUnknownUnit reports whether err was caused by an unresolved identifier
// and returns its details.
func IsUnknownUnit(err error) (*unit.UnknownUnitError, bool) {
	var unknown *unit.UnknownUnitError
	if errors.As(err, &unknown) {
		return unknown, true
	}
	return nil, false
}
