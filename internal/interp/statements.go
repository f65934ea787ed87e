package interp

import (
	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/interp/runtime"
	"github.com/cwbudde/xd/internal/xderrors"
)

// execBlock runs statements in order, stopping early once returnFlag is set.
// A Block never introduces a new scope — this is the one non-obvious
// scoping rule: if/while/foreach bodies share the enclosing frame.
func (e *Evaluator) execBlock(block *ast.Block) error {
	for _, stmt := range block.Statements {
		if err := e.execStmt(stmt); err != nil {
			return err
		}
		if e.returnFlag {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) execStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return e.execVariableDeclaration(s)
	case *ast.Assignment:
		return e.execAssignment(s)
	case *ast.IfStatement:
		return e.execIf(s)
	case *ast.WhileStatement:
		return e.execWhile(s)
	case *ast.ForeachStatement:
		return e.execForeach(s)
	case *ast.ReturnStatement:
		return e.execReturn(s)
	case *ast.ExprStatement:
		_, err := e.evalExpr(s.Expr)
		return err
	case *ast.FunctionDefinition:
		// Only reachable if a function_def appears where the grammar
		// otherwise forbids it; Run() already registers all of these, so
		// re-encountering one here is a no-op.
		return nil
	default:
		return xderrors.New(xderrors.KindUnexpectedType, posOf(stmt), "unhandled statement %T", stmt)
	}
}

// execVariableDeclaration evaluates the initializer if present (else Null),
// then declares the name in the current scope.
func (e *Evaluator) execVariableDeclaration(s *ast.VariableDeclaration) error {
	var val runtime.Value = runtime.Null
	if s.ValueExpr != nil {
		v, err := e.evalExpr(s.ValueExpr)
		if err != nil {
			return err
		}
		val = v
	}
	if !e.env.DeclareVariable(s.Name, val) {
		return xderrors.New(xderrors.KindDuplicateVarDeclaration, s.Pos(),
			"variable %q already declared in this scope", s.Name)
	}
	return nil
}

// execAssignment evaluates the right-hand side, then assigns to the
// existing binding.
func (e *Evaluator) execAssignment(s *ast.Assignment) error {
	val, err := e.evalExpr(s.ValueExpr)
	if err != nil {
		return err
	}
	if !e.env.SetVariable(s.Name, val) {
		return xderrors.New(xderrors.KindUndefinedVar, s.Pos(), "undefined variable %q", s.Name)
	}
	return nil
}

// execIf evaluates the condition for truthiness; the block runs only when
// it holds, and the return flag propagates upward automatically through
// execBlock's early exit.
func (e *Evaluator) execIf(s *ast.IfStatement) error {
	cond, err := e.evalExpr(s.Condition)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return e.execBlock(s.Block)
	}
	return nil
}

// execWhile re-evaluates the condition before every iteration, exiting on a
// falsy condition or a return flag set inside the body.
func (e *Evaluator) execWhile(s *ast.WhileStatement) error {
	for {
		cond, err := e.evalExpr(s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := e.execBlock(s.Block); err != nil {
			return err
		}
		if e.returnFlag {
			return nil
		}
	}
}

// execForeach iterates the iterable string one Unicode scalar at a time,
// updating the loop variable if it already exists in the current scope or
// declaring it otherwise; the variable persists, holding the last iterated
// character, after the loop ends (see DESIGN.md).
func (e *Evaluator) execForeach(s *ast.ForeachStatement) error {
	iterable, err := e.evalExpr(s.Iterable)
	if err != nil {
		return err
	}
	str, ok := iterable.(*runtime.StringValue)
	if !ok {
		return xderrors.New(xderrors.KindUnexpectedType, s.Pos(),
			"foreach iterable must be a String, got %s", iterable.Type())
	}

	bind := func(ch rune) {
		v := &runtime.StringValue{Value: string(ch)}
		if !e.env.SetVariable(s.Variable, v) {
			e.env.DeclareVariable(s.Variable, v)
		}
	}

	for _, ch := range str.Value {
		bind(ch)
		if err := e.execBlock(s.Block); err != nil {
			return err
		}
		if e.returnFlag {
			return nil
		}
	}
	return nil
}

// execReturn evaluates the optional expression (else Null), then sets the
// one-shot return signal.
func (e *Evaluator) execReturn(s *ast.ReturnStatement) error {
	var val runtime.Value = runtime.Null
	if s.ValueExpr != nil {
		v, err := e.evalExpr(s.ValueExpr)
		if err != nil {
			return err
		}
		val = v
	}
	e.returnValue = val
	e.returnFlag = true
	return nil
}
