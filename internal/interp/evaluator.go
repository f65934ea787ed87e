// Package interp is the tree-walking evaluator: a single visitor over the
// AST holding the Environment, the most-recent result, the return signal,
// and the recursion counter.
package interp

import (
	"io"
	"log"

	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/interp/builtins"
	"github.com/cwbudde/xd/internal/interp/runtime"
	"github.com/cwbudde/xd/internal/srcpos"
	"github.com/cwbudde/xd/internal/xderrors"
)

// maxRecursionDepth bounds user function call nesting, not loop iterations.
const maxRecursionDepth = 80

// Evaluator executes a parsed Program or a single REPL-line Program against
// a persistent Environment. The CLI keeps one Evaluator alive across REPL
// lines so definitions accumulate.
type Evaluator struct {
	env            *runtime.Environment
	recursionDepth int
	returnFlag     bool
	returnValue    runtime.Value
	trace          *log.Logger
}

// New creates an Evaluator with a fresh global scope and the builtin
// registry installed. out is where `print` writes.
func New(out io.Writer) *Evaluator {
	env := runtime.NewEnvironment()
	builtins.Register(env, out)
	return &Evaluator{env: env}
}

// WithTrace enables step-by-step diagnostics of every top-level statement
// and user function call, written to w via the standard library's log
// package rather than a structured logger, since this is an internal
// developer-facing concern, not a production log stream.
func (e *Evaluator) WithTrace(w io.Writer) *Evaluator {
	e.trace = log.New(w, "", log.LstdFlags)
	return e
}

func (e *Evaluator) tracef(format string, args ...any) {
	if e.trace != nil {
		e.trace.Printf(format, args...)
	}
}

// Run executes prog against the Evaluator's environment: every top-level
// FunctionDefinition is registered first (in source order), permitting
// forward references between functions, then the remaining top-level
// statements execute in source order.
func (e *Evaluator) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		fn, ok := stmt.(*ast.FunctionDefinition)
		if !ok {
			continue
		}
		if !e.env.DeclareFunction(fn.Name, &runtime.FunctionRef{Def: fn}) {
			return xderrors.New(xderrors.KindDuplicateFunDeclaration, fn.Pos(),
				"function %q already declared", fn.Name)
		}
	}

	for _, stmt := range prog.Statements {
		if _, ok := stmt.(*ast.FunctionDefinition); ok {
			continue
		}
		e.tracef("exec %T at %s", stmt, posOf(stmt))
		if err := e.execStmt(stmt); err != nil {
			return err
		}
		if e.returnFlag {
			// A bare `return` at the program root is effectively ignored.
			e.returnFlag = false
			e.returnValue = nil
		}
	}
	return nil
}

// posOf returns node's source position, or a zero position for the rare
// node kinds (Program, Block) that carry none.
func posOf(node ast.Node) srcpos.Position {
	if p, ok := node.(ast.Positioned); ok {
		return p.Pos()
	}
	return srcpos.Position{}
}
