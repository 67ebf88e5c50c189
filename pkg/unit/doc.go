// Package unit implements the algebra of physical units.
//
// A Unit is a scale factor relative to the SI base units, an optional additive
// offset (affine units such as temperature scales), and a Dimensions vector of
// nine integer exponents over the base dimensions:
//
//	length, mass, time, current, temperature, amount of substance,
//	luminous intensity, planar angle, solid angle
//
// Units are values. Every operation returns a freshly built Unit and never
// modifies its operands, so a Unit obtained from a registry can be shared
// freely between goroutines.
//
// The package provides:
//
//   - Multiply, Divide, ReverseDivide and Power over units, plus the scalar
//     forms used when a plain number appears in a unit expression.
//   - ConversionFactorTo and ConversionTupleTo for scale-only and affine
//     conversions between units of identical dimension.
//   - Name and Display for canonical textual rendering, and Normalize to map
//     display aliases back to parseable text.
//
// All failures are reported through the sentinel errors in errors.go and are
// matched with errors.Is.
package unit
