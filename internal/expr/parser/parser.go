// Package parser builds expression trees from unit-expression tokens using
// recursive descent.
//
// Grammar (from lowest to highest precedence):
//
//	expression → term
//	term       → unary ( ( "*" | "/" ) unary )*     [left-associative]
//	unary      → "-" unary | power
//	power      → primary ( "**" unary )?            [right-associative]
//	primary    → NUMBER | IDENTIFIER | "(" expression ")"
//
// The unary minus only exists so that negative exponents such as m**-2 can
// be written.
package parser

import (
	"github.com/physical-quantities/units/internal/expr/lexer"
)

// MaxDepth bounds expression nesting.
const MaxDepth = 64

// Parser transforms a stream of tokens into an expression tree
type Parser struct {
	tokens  []lexer.Token
	current int
	depth   int
	errors  []ParseError
}

// New creates a new parser for the given token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		errors: make([]ParseError, 0),
	}
}

// Parse parses a complete expression. It stops at the first error.
func (p *Parser) Parse() (Node, []ParseError) {
	if p.check(lexer.TOKEN_EOF) {
		p.error(p.peek(), "empty expression")
		return nil, p.errors
	}

	node := p.parseExpression()
	if len(p.errors) > 0 {
		return nil, p.errors
	}

	if !p.isAtEnd() {
		p.error(p.peek(), "unexpected token after expression")
		return nil, p.errors
	}

	return node, nil
}

// ParseString lexes and parses source.
func ParseString(source string) (Node, []ParseError) {
	tokens, lexErrs := lexer.New(source).ScanTokens()
	if len(lexErrs) > 0 {
		errs := make([]ParseError, len(lexErrs))
		for i, e := range lexErrs {
			errs[i] = fromLexError(e)
		}
		return nil, errs
	}
	return New(tokens).Parse()
}

// parseExpression is the entry point for expression parsing
func (p *Parser) parseExpression() Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		p.error(p.peek(), "expression nested too deeply")
		return nil
	}
	return p.parseTerm()
}

// parseTerm handles multiplication and division
func (p *Parser) parseTerm() Node {
	expr := p.parseUnary()
	if expr == nil {
		return nil
	}

	for p.match(lexer.TOKEN_STAR, lexer.TOKEN_SLASH) {
		operator := p.previous()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		expr = &Binary{
			Op:     operator.Type,
			Left:   expr,
			Right:  right,
			Column: operator.Column,
		}
	}

	return expr
}

// parsePower handles exponentiation (right-associative). The exponent may
// carry a sign, the base may not: -2**2 is -(2**2).
func (p *Parser) parsePower() Node {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	if p.match(lexer.TOKEN_DOUBLE_STAR) {
		operator := p.previous()
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > MaxDepth {
			p.error(operator, "expression nested too deeply")
			return nil
		}
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return &Binary{
			Op:     lexer.TOKEN_DOUBLE_STAR,
			Left:   expr,
			Right:  right,
			Column: operator.Column,
		}
	}

	return expr
}

// parseUnary handles a leading minus
func (p *Parser) parseUnary() Node {
	if p.match(lexer.TOKEN_MINUS) {
		operator := p.previous()
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > MaxDepth {
			p.error(operator, "expression nested too deeply")
			return nil
		}
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &Negate{Operand: operand, Column: operator.Column}
	}

	return p.parsePower()
}

// parsePrimary handles literals, names and parenthesised expressions
func (p *Parser) parsePrimary() Node {
	token := p.peek()

	switch {
	case p.match(lexer.TOKEN_NUMBER):
		return &NumberLit{Value: token.Value, Lexeme: token.Lexeme, Column: token.Column}
	case p.match(lexer.TOKEN_IDENTIFIER):
		return &Ident{Name: token.Lexeme, Column: token.Column}
	case p.match(lexer.TOKEN_LPAREN):
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.match(lexer.TOKEN_RPAREN) {
			p.error(p.peek(), "expected ')' after expression")
			return nil
		}
		return expr
	default:
		p.error(token, "expected a unit, number or '('")
		return nil
	}
}

// Token stream navigation

// peek returns the current token without advancing
func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

// advance consumes the current token and returns it
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check returns true if the current token matches the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// isAtEnd returns true if we've reached the end of the token stream
func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// error records a parse error
func (p *Parser) error(token lexer.Token, message string) {
	p.errors = append(p.errors, NewParseError(message, token))
}
