package parser

import (
	"testing"

	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/xderrors"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	prog := parseProgram(t, "value x = 1 - 2 - 3")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin := decl.ValueExpr.(*ast.BinaryOperation)
	if bin.Op != ast.OpMinus {
		t.Fatalf("outer op = %v, want -", bin.Op)
	}
	inner, ok := bin.Left.(*ast.BinaryOperation)
	if !ok || inner.Op != ast.OpMinus {
		t.Fatalf("expected (1 - 2) as left operand, got %#v", bin.Left)
	}
	if lit, ok := inner.Left.(*ast.Literal); !ok || lit.IntVal != 1 {
		t.Fatalf("innermost left should be 1, got %#v", inner.Left)
	}
}

func TestPrecedence(t *testing.T) {
	// 1 + 2 * 3 == 7 && x  ->  ((1 + (2*3)) == 7) && x
	prog := parseProgram(t, "value r = 1 + 2 * 3 == 7 && x")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	and := decl.ValueExpr.(*ast.BinaryOperation)
	if and.Op != ast.OpAnd {
		t.Fatalf("outermost should be &&, got %v", and.Op)
	}
	eq, ok := and.Left.(*ast.BinaryOperation)
	if !ok || eq.Op != ast.OpEq {
		t.Fatalf("left of && should be ==, got %#v", and.Left)
	}
	sum, ok := eq.Left.(*ast.BinaryOperation)
	if !ok || sum.Op != ast.OpAdd {
		t.Fatalf("left of == should be +, got %#v", eq.Left)
	}
	mul, ok := sum.Right.(*ast.BinaryOperation)
	if !ok || mul.Op != ast.OpMult {
		t.Fatalf("right of + should be *, got %#v", sum.Right)
	}
}

func TestDotChainParentage(t *testing.T) {
	prog := parseProgram(t, "value r = a.b.c()")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	call, ok := decl.ValueExpr.(*ast.FunctionCall)
	if !ok || call.Name != "c" {
		t.Fatalf("expected FunctionCall(c), got %#v", decl.ValueExpr)
	}
	b, ok := call.Parent.(*ast.Identifier)
	if !ok || b.Name != "b" {
		t.Fatalf("expected parent Identifier(b), got %#v", call.Parent)
	}
	a, ok := b.Parent.(*ast.Identifier)
	if !ok || a.Name != "a" {
		t.Fatalf("expected grandparent Identifier(a), got %#v", b.Parent)
	}
}

func TestUnexpectedRBraceAtTopLevel(t *testing.T) {
	p := New(lexer.New("}"))
	_, err := p.ParseProgram()
	if err == nil || err.Kind != xderrors.KindUnexpectedToken {
		t.Fatalf("expected UnexpectedToken, got %v", err)
	}
}

func TestDoubleUnaryMinusIsParseError(t *testing.T) {
	p := New(lexer.New("value x = --1"))
	_, err := p.ParseProgram()
	if err == nil || err.Kind != xderrors.KindExpectedExpression {
		t.Fatalf("expected ExpectedExpression for stacked unary, got %v", err)
	}
}

func TestEqualityIsNonAssociative(t *testing.T) {
	p := New(lexer.New("value x = 1 == 2 == 3"))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("chained equality should be a parse error")
	}
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	prog := parseProgram(t, "function add(a, b) { return a + b }")
	fn := prog.Statements[0].(*ast.FunctionDefinition)
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("got %#v", fn)
	}
	ret := fn.Block.Statements[0].(*ast.ReturnStatement)
	if ret.ValueExpr == nil {
		t.Fatalf("expected return value")
	}
}

func TestForeachGrammar(t *testing.T) {
	prog := parseProgram(t, `foreach c in "ab" { print(c) }`)
	fe := prog.Statements[0].(*ast.ForeachStatement)
	if fe.Variable != "c" {
		t.Fatalf("got variable %q", fe.Variable)
	}
	if _, ok := fe.Iterable.(*ast.Literal); !ok {
		t.Fatalf("expected string literal iterable, got %#v", fe.Iterable)
	}
}

func TestMissingInKeyword(t *testing.T) {
	p := New(lexer.New(`foreach c "ab" { }`))
	_, err := p.ParseProgram()
	if err == nil || err.Kind != xderrors.KindExpectedIn {
		t.Fatalf("expected ExpectedIn, got %v", err)
	}
}

func TestAssignmentOrCallRequired(t *testing.T) {
	p := New(lexer.New("x + 1"))
	_, err := p.ParseProgram()
	if err == nil || err.Kind != xderrors.KindExpectedAssignOrCall {
		t.Fatalf("expected ExpectedAssignOrCall, got %v", err)
	}
}

func TestBlockDoesNotRequireElse(t *testing.T) {
	prog := parseProgram(t, "if x { print(x) }")
	ifs := prog.Statements[0].(*ast.IfStatement)
	if len(ifs.Block.Statements) != 1 {
		t.Fatalf("got %#v", ifs.Block)
	}
}
