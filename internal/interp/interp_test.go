package interp

import (
	"bytes"
	"testing"

	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/parser"
	"github.com/cwbudde/xd/internal/xderrors"
)

// run parses and executes src against a fresh Evaluator, returning whatever
// it wrote to stdout.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	var buf bytes.Buffer
	ev := New(&buf)
	runErr := ev.Run(prog)
	return buf.String(), runErr
}

func asXdError(t *testing.T, err error) *xderrors.XdError {
	t.Helper()
	xe, ok := err.(*xderrors.XdError)
	if !ok {
		t.Fatalf("expected *xderrors.XdError, got %T (%v)", err, err)
	}
	return xe
}

func TestAssignmentAndReassignment(t *testing.T) {
	out, err := run(t, "value x = 5\nx = x + 1\nprint(x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "6\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionCallAndAddition(t *testing.T) {
	out, err := run(t, "function f(a,b){ return a+b }\nprint(f(3,4))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEarlyReturn(t *testing.T) {
	out, err := run(t, "function f(){ if 1 { return 1 } return 2 }\nprint(f())")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "print(1 / 0)")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindDivisionByZero {
		t.Fatalf("got %v", xe)
	}
}

func TestForeachPrintsEachChar(t *testing.T) {
	out, err := run(t, `foreach c in "ab" { print(c) }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a\nb\n" {
		t.Fatalf("got %q", out)
	}
}

func TestForeachVariablePersistsAfterLoop(t *testing.T) {
	out, err := run(t, `foreach c in "ab" { }
print(c)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "b\n" {
		t.Fatalf("loop variable should persist with the last char, got %q", out)
	}
}

func TestStringLengthAttribute(t *testing.T) {
	out, err := run(t, `print("hello".length)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringToUpperAndToLower(t *testing.T) {
	out, err := run(t, `print("hello".toUpper(), "HI".toLower())`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "HELLO hi\n" {
		t.Fatalf("got %q", out)
	}
}

func TestToUpperOnNonStringIsUnexpectedMethod(t *testing.T) {
	_, err := run(t, "print(42.toUpper())")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindUnexpectedMethod {
		t.Fatalf("got %v", xe)
	}
}

func TestUnknownAttributeOnStringIsUnexpectedAttribute(t *testing.T) {
	_, err := run(t, `value x = "hi"
print(x.foo)`)
	if xe := asXdError(t, err); xe.Kind != xderrors.KindUnexpectedAttribute {
		t.Fatalf("got %v", xe)
	}
}

func TestShortCircuitAndDoesNotCallRight(t *testing.T) {
	out, err := run(t, `function boom(){ print("called") return true }
print(0 && boom())`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "0\n" {
		t.Fatalf("right side of && should not run when left is falsy, got %q", out)
	}
}

func TestShortCircuitOrDoesNotCallRight(t *testing.T) {
	out, err := run(t, `function boom(){ print("called") return true }
print(1 || boom())`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("right side of || should not run when left is truthy, got %q", out)
	}
}

func TestRecursionLimit(t *testing.T) {
	_, err := run(t, "function f(){ return f() }\nprint(f())")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindRecursionLimit {
		t.Fatalf("got %v", xe)
	}
}

func TestDuplicateFunctionDeclaration(t *testing.T) {
	_, err := run(t, "function foo(){ return 1 }\nfunction foo(){ return 2 }")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindDuplicateFunDeclaration {
		t.Fatalf("got %v", xe)
	}
}

func TestDuplicateVariableDeclaration(t *testing.T) {
	_, err := run(t, "value x = 1\nvalue x = 2")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindDuplicateVarDeclaration {
		t.Fatalf("got %v", xe)
	}
}

func TestIntFloatEqualityIsTypeBinary(t *testing.T) {
	_, err := run(t, "print(1 == 1.0)")
	if xe := asXdError(t, err); xe.Kind != xderrors.KindTypeBinary {
		t.Fatalf("got %v", xe)
	}
}

func TestRelationalAllowsMixedNumericTypes(t *testing.T) {
	out, err := run(t, "print(1 < 1.5)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "true\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringRepetition(t *testing.T) {
	out, err := run(t, `print("ab" * 3)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ababab\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDivisionAlwaysProducesFloat(t *testing.T) {
	out, err := run(t, "print(4 / 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2.0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEndToEndScenario1(t *testing.T) {
	out, err := run(t, "value x = 5\nprint(x)")
	if err != nil || out != "5\n" {
		t.Fatalf("got %q, %v", out, err)
	}
}

func TestEndToEndScenario2(t *testing.T) {
	out, err := run(t, "function add(a,b){return a+b}\nprint(add(3,4))")
	if err != nil || out != "7\n" {
		t.Fatalf("got %q, %v", out, err)
	}
}

func TestEndToEndScenario3(t *testing.T) {
	// Statements inside the block are separated by a newline rather than a
	// ';', since the grammar's block_statement list has no separator token
	// (see DESIGN.md).
	out, err := run(t, "value x=3\nwhile x>0{print(x)\nx=x-1}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3\n2\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEndToEndScenario4(t *testing.T) {
	out, err := run(t, `foreach c in "abc"{print(c)}`)
	if err != nil || out != "a\nb\nc\n" {
		t.Fatalf("got %q, %v", out, err)
	}
}

func TestEndToEndScenario5(t *testing.T) {
	out, err := run(t, `print(int("12"), float("1.5"), bool(0), str(7), "hi".toUpper(), "HI".toLower(), "abcd".length)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "12 1.5 false 7 HI hi 4\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEndToEndScenario6(t *testing.T) {
	out, err := run(t, "value x=5+3*2\nprint(x)\nprint(9/2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "11\n4.5\n" {
		t.Fatalf("got %q", out)
	}
}
