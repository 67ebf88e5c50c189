package parser

import (
	"fmt"

	"github.com/physical-quantities/units/internal/expr/lexer"
)

// ParseError represents an error encountered during parsing
type ParseError struct {
	Message string
	Column  int
	Token   lexer.Token
}

// Error implements the error interface
func (e ParseError) Error() string {
	if e.Token.Type == lexer.TOKEN_EOF {
		return fmt.Sprintf("column %d: %s (at end of expression)", e.Column, e.Message)
	}
	return fmt.Sprintf("column %d: %s (near '%s')", e.Column, e.Message, e.Token.Lexeme)
}

// NewParseError creates a new parse error
func NewParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Message: message,
		Column:  token.Column,
		Token:   token,
	}
}

func fromLexError(e lexer.LexError) ParseError {
	return ParseError{
		Message: e.Message,
		Column:  e.Column,
		Token: lexer.Token{
			Type:   lexer.TOKEN_ERROR,
			Lexeme: e.Lexeme,
			Column: e.Column,
		},
	}
}
