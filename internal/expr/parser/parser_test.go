package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) Node {
	t.Helper()
	node, errs := ParseString(source)
	require.Empty(t, errs, "parse %q", source)
	require.NotNil(t, node)
	return node
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"m", "m"},
		{"m*kg/s**2", "((m * kg) / (s ** 2))"},
		{"N/m**2", "(N / (m ** 2))"},
		{"pi*rad/180/60", "(((pi * rad) / 180) / 60)"},
		{"60*60*s", "((60 * 60) * s)"},
		{"m**2**3", "(m ** (2 ** 3))"},
		{"m**-2", "(m ** (-2))"},
		{"m**-2**2", "(m ** (-(2 ** 2)))"},
		{"-2**2*m", "((-(2 ** 2)) * m)"},
		{"-m**2", "(-(m ** 2))"},
		{"(-2)**2*m", "(((-2) ** 2) * m)"},
		{"(m/s)**2", "((m / s) ** 2)"},
		{"1/s", "(1 / s)"},
		{"kg*(m/s)", "(kg * (m / s))"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			node := mustParse(t, tt.source)
			assert.Equal(t, tt.expected, node.String())
		})
	}
}

func TestParse_NodeTypes(t *testing.T) {
	node := mustParse(t, "2*m")
	bin, ok := node.(*Binary)
	require.True(t, ok)
	assert.Equal(t, 2, bin.Pos())

	num, ok := bin.Left.(*NumberLit)
	require.True(t, ok)
	assert.Equal(t, 2.0, num.Value)

	ident, ok := bin.Right.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "m", ident.Name)
	assert.Equal(t, 3, ident.Pos())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{"", "empty expression"},
		{"m*", "expected a unit"},
		{"(m/s", "expected ')'"},
		{"m s", "unexpected token"},
		{"2m", "unexpected token"},
		{"m)", "unexpected token"},
		{"*m", "expected a unit"},
		{"m+s", "unexpected character"},
		{"m.x", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			node, errs := ParseString(tt.source)
			assert.Nil(t, node)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.message)
		})
	}
}

func TestParse_ErrorNamesToken(t *testing.T) {
	_, errs := ParseString("m*/s")
	require.NotEmpty(t, errs)
	assert.Equal(t, 3, errs[0].Column)
	assert.Contains(t, errs[0].Error(), "near '/'")
}

func TestParse_DepthLimit(t *testing.T) {
	deep := strings.Repeat("(", MaxDepth+1) + "m" + strings.Repeat(")", MaxDepth+1)
	_, errs := ParseString(deep)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "nested too deeply")

	shallow := strings.Repeat("(", 10) + "m" + strings.Repeat(")", 10)
	mustParse(t, shallow)
}
