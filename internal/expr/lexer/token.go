package lexer

import "fmt"

// TokenType represents the type of a token in a unit expression
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR

	// Literals
	TOKEN_IDENTIFIER // m, kg, Ohm, pi
	TOKEN_NUMBER     // 60, 0.001, 1e-06

	// Operators
	TOKEN_STAR        // *
	TOKEN_DOUBLE_STAR // **
	TOKEN_SLASH       // /
	TOKEN_MINUS       // -

	// Delimiters
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
)

// TokenTypeNames maps token types to their string representations
var TokenTypeNames = map[TokenType]string{
	TOKEN_EOF:         "EOF",
	TOKEN_ERROR:       "ERROR",
	TOKEN_IDENTIFIER:  "IDENTIFIER",
	TOKEN_NUMBER:      "NUMBER",
	TOKEN_STAR:        "STAR",
	TOKEN_DOUBLE_STAR: "DOUBLE_STAR",
	TOKEN_SLASH:       "SLASH",
	TOKEN_MINUS:       "MINUS",
	TOKEN_LPAREN:      "LPAREN",
	TOKEN_RPAREN:      "RPAREN",
}

// String returns the string representation of a TokenType
func (t TokenType) String() string {
	if name, ok := TokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Token represents a single lexical token
type Token struct {
	Type   TokenType // The type of the token
	Lexeme string    // The raw text of the token
	Value  float64   // The parsed value (TOKEN_NUMBER only)
	Column int       // Column number (1-indexed, in bytes)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TOKEN_NUMBER {
		return fmt.Sprintf("%s '%s' (%v) at %d", t.Type, t.Lexeme, t.Value, t.Column)
	}
	return fmt.Sprintf("%s '%s' at %d", t.Type, t.Lexeme, t.Column)
}

// LexError represents a lexical error
type LexError struct {
	Message string
	Column  int
	Lexeme  string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Column, e.Message)
}
