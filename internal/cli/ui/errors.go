// Package ui renders command output: coloured error reports and tables.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/physical-quantities/units/internal/store"
	"github.com/physical-quantities/units/pkg/registry"
	"github.com/physical-quantities/units/pkg/unit"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ UNKNOWN UNIT: Ohn
//	   unit: unknown unit "Ohn" in "kOhn*A"
//
//	   Did you mean: Ohm?
//
//	   → See all units: units list
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// UnitError formats any error returned by the registry, the unit algebra or
// the store, with a heading and help lines chosen from the error kind.
func UnitError(err error, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Problem: err.Error(),
		NoColor: noColor,
	}

	var unknown *unit.UnknownUnitError
	switch {
	case errors.As(err, &unknown):
		opts.Context = "unknown unit: " + unknown.Token
		opts.Suggestions = unknown.Suggestions
		opts.HelpCommands = []string{"See all units: units list --prefixed"}
	case errors.Is(err, unit.ErrInvalidExpression):
		opts.Context = "invalid expression"
		opts.HelpCommands = []string{"Expressions use names, numbers, *, /, ** and parentheses, e.g. kg*m/s**2"}
	case errors.Is(err, unit.ErrIllegalExponent):
		opts.Context = "illegal exponent"
		opts.HelpCommands = []string{"Exponents must be numbers; fractional ones must be exact roots, e.g. (m**2)**0.5"}
	case errors.Is(err, unit.ErrIncompatibleDimensions):
		opts.Context = "incompatible units"
		opts.HelpCommands = []string{"Compare dimensions: units show <unit>"}
	case errors.Is(err, unit.ErrNonExpressibleConversion):
		opts.Context = "offset conversion"
		opts.Consequence = "A single factor cannot express a conversion between units with different offsets."
		opts.HelpCommands = []string{"Convert a value instead: units convert <value> <from> <to>"}
	case errors.Is(err, unit.ErrNonAffineCombination):
		opts.Context = "offset unit in expression"
		opts.Consequence = "Units with an offset (such as degC) can only be used on their own."
	case errors.Is(err, unit.ErrNotAUnit):
		opts.Context = "not a unit"
	case errors.Is(err, unit.ErrDuplicateUnit), errors.Is(err, store.ErrExists):
		opts.Context = "already defined"
		opts.HelpCommands = []string{"Inspect the existing definition: units show <name>"}
	case errors.Is(err, registry.ErrInvalidName):
		opts.Context = "invalid name"
		opts.HelpCommands = []string{"Names start with a letter or _ and contain only letters, digits and _"}
	}
	return FormatError(opts)
}
