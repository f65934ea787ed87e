package ast

import (
	"strings"

	"github.com/cwbudde/xd/internal/lexer"
)

// FunctionDefinition declares a named, top-level function.
type FunctionDefinition struct {
	Token      lexer.Token // the 'function' token
	Name       string
	Parameters []*Identifier
	Block      *Block
}

func (f *FunctionDefinition) statementNode()       {}
func (f *FunctionDefinition) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDefinition) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDefinition) String() string {
	var params []string
	for _, p := range f.Parameters {
		params = append(params, p.Name)
	}
	return "function " + f.Name + "(" + strings.Join(params, ", ") + ") " + f.Block.String()
}

// VariableDeclaration is a `value name [= expr]` statement.
type VariableDeclaration struct {
	Token     lexer.Token // the 'value' token
	Name      string
	ValueExpr Expr // nil when uninitialized
}

func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	if v.ValueExpr != nil {
		return "value " + v.Name + " = " + v.ValueExpr.String()
	}
	return "value " + v.Name
}

// Assignment is a `name = expr` statement.
type Assignment struct {
	Token     lexer.Token // the identifier token
	Name      string
	ValueExpr Expr
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return a.Name + " = " + a.ValueExpr.String()
}

// IfStatement is a condition + single block, with no "else" in this
// language.
type IfStatement struct {
	Token     lexer.Token // the 'if' token
	Condition Expr
	Block     *Block
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	return "if " + s.Condition.String() + " " + s.Block.String()
}

// WhileStatement is a condition + block, re-evaluated each iteration.
type WhileStatement struct {
	Token     lexer.Token // the 'while' token
	Condition Expr
	Block     *Block
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "while " + s.Condition.String() + " " + s.Block.String()
}

// ForeachStatement binds Variable to each character of the Iterable string
// in turn, running Block once per character.
type ForeachStatement struct {
	Token    lexer.Token // the 'foreach' token
	Variable string
	Iterable Expr
	Block    *Block
}

func (s *ForeachStatement) statementNode()       {}
func (s *ForeachStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForeachStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *ForeachStatement) String() string {
	return "foreach " + s.Variable + " in " + s.Iterable.String() + " " + s.Block.String()
}

// ReturnStatement unwinds the current function call with an optional value.
type ReturnStatement struct {
	Token     lexer.Token // the 'return' token
	ValueExpr Expr        // nil for a bare "return"
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.ValueExpr != nil {
		return "return " + s.ValueExpr.String()
	}
	return "return"
}

// ExprStatement wraps a bare expression used as a statement — in practice
// only a FunctionCall, since a bare identifier on its own line is always
// parsed as either a call or an assignment.
type ExprStatement struct {
	Token lexer.Token
	Expr  Expr
}

func (e *ExprStatement) statementNode()       {}
func (e *ExprStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExprStatement) String() string       { return e.Expr.String() }
