package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a lexer and scan tokens
func scanSource(source string) ([]Token, []LexError) {
	return New(source).ScanTokens()
}

func tokensToTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestLexer_Operators(t *testing.T) {
	tokens, errs := scanSource("( ) * ** / -")
	require.Empty(t, errs)

	assert.Equal(t, []TokenType{
		TOKEN_LPAREN, TOKEN_RPAREN,
		TOKEN_STAR, TOKEN_DOUBLE_STAR,
		TOKEN_SLASH, TOKEN_MINUS,
		TOKEN_EOF,
	}, tokensToTypes(tokens))
}

func TestLexer_UnitExpression(t *testing.T) {
	tokens, errs := scanSource("m*kg/s**2")
	require.Empty(t, errs)

	assert.Equal(t, []TokenType{
		TOKEN_IDENTIFIER, TOKEN_STAR, TOKEN_IDENTIFIER, TOKEN_SLASH,
		TOKEN_IDENTIFIER, TOKEN_DOUBLE_STAR, TOKEN_NUMBER, TOKEN_EOF,
	}, tokensToTypes(tokens))

	assert.Equal(t, "kg", tokens[2].Lexeme)
	assert.Equal(t, 3, tokens[2].Column)
	assert.Equal(t, 2.0, tokens[6].Value)
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		source string
		value  float64
	}{
		{"60", 60},
		{"0.001", 0.001},
		{".5", 0.5},
		{"1e-06", 1e-6},
		{"2.5E3", 2500},
		{"3.141592653589793", 3.141592653589793},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, errs := scanSource(tt.source)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, TOKEN_NUMBER, tokens[0].Type)
			assert.Equal(t, tt.value, tokens[0].Value)
		})
	}
}

func TestLexer_Identifiers(t *testing.T) {
	tokens, errs := scanSource("Ohm mum _x k9")
	require.Empty(t, errs)
	require.Len(t, tokens, 5)
	for i, want := range []string{"Ohm", "mum", "_x", "k9"} {
		assert.Equal(t, TOKEN_IDENTIFIER, tokens[i].Type)
		assert.Equal(t, want, tokens[i].Lexeme)
	}
}

func TestLexer_RejectsCodeConstructs(t *testing.T) {
	sources := []string{
		"m.__class__",
		"open('x')",
		"m, s",
		"m + s",
		"\"m\"",
		"m[0]",
		"µm",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			_, errs := scanSource(source)
			require.NotEmpty(t, errs)
		})
	}
}

func TestLexer_ErrorDetails(t *testing.T) {
	_, errs := scanSource("m+s")
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Column)
	assert.Equal(t, "+", errs[0].Lexeme)
	assert.Contains(t, errs[0].Error(), "'+'")

	_, errs = scanSource("1e")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "exponent")
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("km"))
	assert.True(t, IsIdentifier("arcsec"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("2m"))
	assert.False(t, IsIdentifier("m/s"))
	assert.False(t, IsIdentifier("k m"))
}
