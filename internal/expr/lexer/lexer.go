// Package lexer tokenizes unit expressions such as "N/m**2" or
// "pi*rad/180".
//
// Only identifiers, decimal numbers, the operators *, ** , / and unary -, and
// parentheses are recognised. Anything else is reported as a LexError, so the
// token stream can never express attribute access, calls or strings.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Lexer tokenizes a unit expression.
//
// Lexer instances are not safe for concurrent use; create one per expression
// via New.
type Lexer struct {
	source  string     // Expression text
	start   int        // Start position of current token
	current int        // Current position in source
	tokens  []Token    // Collected tokens
	errors  []LexError // Collected errors
}

// New creates a new Lexer for the given expression
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		tokens: make([]Token, 0, len(source)/2+1),
	}
}

// ScanTokens tokenizes the entire expression and returns tokens and errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Column: l.current + 1,
	})

	return l.tokens, l.errors
}

// scanToken processes the next token
func (l *Lexer) scanToken() {
	c := l.advance()

	switch {
	case c == '(':
		l.addToken(TOKEN_LPAREN)
	case c == ')':
		l.addToken(TOKEN_RPAREN)
	case c == '/':
		l.addToken(TOKEN_SLASH)
	case c == '-':
		l.addToken(TOKEN_MINUS)
	case c == '*':
		if l.match('*') {
			l.addToken(TOKEN_DOUBLE_STAR)
		} else {
			l.addToken(TOKEN_STAR)
		}
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		// Ignore whitespace
	case isDigit(c) || (c == '.' && isDigit(l.peek())):
		l.number()
	case isAlpha(c):
		l.identifier()
	default:
		r, size := utf8.DecodeRuneInString(l.source[l.start:])
		l.current = l.start + size
		l.addError(fmt.Sprintf("unexpected character %q", r))
	}
}

// number scans a decimal literal with optional fraction and exponent
func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.addError("invalid number: expected digits after exponent")
			return
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.source[l.start:l.current]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.addError(fmt.Sprintf("invalid number literal %s", lexeme))
		return
	}
	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_NUMBER,
		Lexeme: lexeme,
		Value:  value,
		Column: l.start + 1,
	})
}

// identifier scans a unit or constant name
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(TOKEN_IDENTIFIER)
}

// Helper methods

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) addToken(tokenType TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: l.source[l.start:l.current],
		Column: l.start + 1,
	})
}

func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Column:  l.start + 1,
		Lexeme:  l.source[l.start:l.current],
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// IsIdentifier reports whether s is a single well-formed identifier, i.e. a
// name that can be referenced from an expression.
func IsIdentifier(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlphaNumeric(s[i]) {
			return false
		}
	}
	return true
}
