package unit

import (
	"errors"
	"fmt"
	"strings"
)

// Every message is prefixed with "unit: ". Operations wrap these sentinels with
// fmt.Errorf("context: %w", ErrX) so the offending symbols appear in the message
// while callers still match with errors.Is.
var (
	// ErrIncompatibleDimensions is returned when comparing or converting units
	// whose dimension vectors differ.
	ErrIncompatibleDimensions = errors.New("unit: incompatible dimensions")

	// ErrNonAffineCombination is returned when multiply, divide or power is
	// applied to a unit carrying a non-zero offset.
	ErrNonAffineCombination = errors.New("unit: cannot combine units with non-zero offset")

	// ErrIllegalExponent is returned for fractional exponents that are not an
	// exact reciprocal integer, or whose root does not divide the dimensions.
	ErrIllegalExponent = errors.New("unit: illegal exponent")

	// ErrUnknownUnit is returned when an expression names a unit that is not
	// registered.
	ErrUnknownUnit = errors.New("unit: unknown unit")

	// ErrDuplicateUnit is returned when a name is registered twice.
	ErrDuplicateUnit = errors.New("unit: unit already defined")

	// ErrNonExpressibleConversion is returned when both offset and factor
	// differ, so no pure multiplicative factor exists.
	ErrNonExpressibleConversion = errors.New("unit: conversion cannot be expressed as a multiplicative factor")

	// ErrNotAUnit is returned when an expression evaluates to a plain number.
	ErrNotAUnit = errors.New("unit: expression is not a unit")

	// ErrInvalidExpression is returned for syntax errors in unit expressions.
	ErrInvalidExpression = errors.New("unit: invalid expression")
)

// UnknownUnitError reports an identifier that could not be resolved. It
// unwraps to ErrUnknownUnit.
type UnknownUnitError struct {
	Token       string
	Expression  string
	Suggestions []string
}

// Error implements the error interface
func (e *UnknownUnitError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", ErrUnknownUnit.Error(), e.Token)
	if e.Expression != "" && e.Expression != e.Token {
		fmt.Fprintf(&b, " in %q", e.Expression)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// Unwrap returns ErrUnknownUnit.
func (e *UnknownUnitError) Unwrap() error {
	return ErrUnknownUnit
}
