// Package ast defines the Abstract Syntax Tree node types produced by the
// parser: a tagged-variant tree with source positions, visitable by the
// evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/xd/internal/lexer"
)

// Node is the base interface implemented by every AST node, including
// Program and Block.
type Node interface {
	TokenLiteral() string
	String() string
}

// Positioned is implemented by every Node except Program and Block, which
// carry no single source position of their own.
type Positioned interface {
	Node
	Pos() lexer.Position
}

// Statement is a node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the AST: the whole source file or REPL entry.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Block is a brace-delimited statement list. Like Program, it carries no
// position: a Block introduces no new scope, so it is purely a grouping,
// not a frame boundary.
type Block struct {
	Statements []Statement
}

func (b *Block) TokenLiteral() string {
	if len(b.Statements) > 0 {
		return b.Statements[0].TokenLiteral()
	}
	return ""
}

func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// Identifier nodes appear both as a bare name ("x") and, via a non-nil
// Parent, as the tail of a dot-chain attribute access ("x.length").
type Identifier struct {
	Token  lexer.Token // the IDENTIFIER token
	Name   string
	Parent Expr // non-nil for "<parent>.Name"
}

func (i *Identifier) exprNode()            {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string {
	if i.Parent != nil {
		return i.Parent.String() + "." + i.Name
	}
	return i.Name
}

// FunctionCall nodes appear both as a top-level call ("f(a, b)") and, via a
// non-nil Parent, as a dot-chain method call ("s.toUpper()").
type FunctionCall struct {
	Token  lexer.Token // the identifier token naming the function or method
	Name   string
	Args   []Expr
	Parent Expr
}

func (f *FunctionCall) exprNode()            {}
func (f *FunctionCall) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionCall) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionCall) String() string {
	var args []string
	for _, a := range f.Args {
		args = append(args, a.String())
	}
	prefix := ""
	if f.Parent != nil {
		prefix = f.Parent.String() + "."
	}
	return prefix + f.Name + "(" + strings.Join(args, ", ") + ")"
}

// LiteralKind tags the subtype carried by a Literal node.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
)

// Literal is a constant value appearing directly in source.
type Literal struct {
	Token     lexer.Token
	Kind      LiteralKind
	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	StringVal string
}

func (l *Literal) exprNode()            {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case LitInt:
		return l.Token.Literal
	case LitFloat:
		return l.Token.Literal
	case LitBool:
		if l.BoolVal {
			return "true"
		}
		return "false"
	case LitString:
		return "\"" + l.StringVal + "\""
	}
	return ""
}

// Operator enumerates the binary/unary operators the parser can produce.
type Operator int

const (
	OpOr Operator = iota
	OpAnd
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpAdd
	OpMinus
	OpMult
	OpDiv
	OpNot
)

func (o Operator) String() string {
	switch o {
	case OpOr:
		return "||"
	case OpAnd:
		return "&&"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEq:
		return "<="
	case OpGreaterEq:
		return ">="
	case OpAdd:
		return "+"
	case OpMinus:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpNot:
		return "!"
	}
	return "?"
}

// BinaryOperation is a two-operand expression.
type BinaryOperation struct {
	Token lexer.Token // the operator token
	Op    Operator
	Left  Expr
	Right Expr
}

func (b *BinaryOperation) exprNode()            {}
func (b *BinaryOperation) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOperation) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryOperation) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryOperation is a single-operand prefix expression ("-x", "!x").
type UnaryOperation struct {
	Token lexer.Token
	Op    Operator
	Right Expr
}

func (u *UnaryOperation) exprNode()            {}
func (u *UnaryOperation) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOperation) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryOperation) String() string {
	return "(" + u.Op.String() + u.Right.String() + ")"
}
