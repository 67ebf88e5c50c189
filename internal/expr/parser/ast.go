package parser

import (
	"fmt"

	"github.com/physical-quantities/units/internal/expr/lexer"
)

// Node is a node of a unit expression tree.
type Node interface {
	// Pos returns the 1-indexed column the node starts at.
	Pos() int
	String() string
}

// NumberLit is a decimal literal.
type NumberLit struct {
	Value  float64
	Lexeme string
	Column int
}

// Ident is a registry name or named constant.
type Ident struct {
	Name   string
	Column int
}

// Binary is a*b, a/b or a**b.
type Binary struct {
	Op     lexer.TokenType // TOKEN_STAR, TOKEN_SLASH or TOKEN_DOUBLE_STAR
	Left   Node
	Right  Node
	Column int
}

// Negate is a unary minus, as in m**-2.
type Negate struct {
	Operand Node
	Column  int
}

func (n *NumberLit) Pos() int { return n.Column }
func (n *Ident) Pos() int     { return n.Column }
func (n *Binary) Pos() int    { return n.Column }
func (n *Negate) Pos() int    { return n.Column }

func (n *NumberLit) String() string { return n.Lexeme }
func (n *Ident) String() string     { return n.Name }
func (n *Negate) String() string    { return "(-" + n.Operand.String() + ")" }

func (n *Binary) String() string {
	op := "?"
	switch n.Op {
	case lexer.TOKEN_STAR:
		op = "*"
	case lexer.TOKEN_SLASH:
		op = "/"
	case lexer.TOKEN_DOUBLE_STAR:
		op = "**"
	}
	return fmt.Sprintf("(%s %s %s)", n.Left, op, n.Right)
}
