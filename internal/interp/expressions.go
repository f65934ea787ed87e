package interp

import (
	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/interp/builtins"
	"github.com/cwbudde/xd/internal/interp/runtime"
	"github.com/cwbudde/xd/internal/xderrors"
)

func (e *Evaluator) evalExpr(expr ast.Expr) (runtime.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(ex), nil
	case *ast.Identifier:
		return e.evalIdentifier(ex)
	case *ast.FunctionCall:
		return e.evalFunctionCall(ex)
	case *ast.BinaryOperation:
		return e.evalBinary(ex)
	case *ast.UnaryOperation:
		return e.evalUnary(ex)
	default:
		return nil, xderrors.New(xderrors.KindUnexpectedType, posOf(expr), "unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalLiteral(l *ast.Literal) runtime.Value {
	switch l.Kind {
	case ast.LitInt:
		return &runtime.IntegerValue{Value: l.IntVal}
	case ast.LitFloat:
		return &runtime.FloatValue{Value: l.FloatVal}
	case ast.LitBool:
		return &runtime.BoolValue{Value: l.BoolVal}
	case ast.LitString:
		return &runtime.StringValue{Value: l.StringVal}
	default:
		return runtime.Null
	}
}

// evalIdentifier resolves a bare name via get_variable, or — when Parent is
// non-nil and Name is "length" on a String parent — the string's character
// count. Any other dotted attribute is UnexpectedAttribute.
func (e *Evaluator) evalIdentifier(id *ast.Identifier) (runtime.Value, error) {
	if id.Parent == nil {
		v, ok := e.env.GetVariable(id.Name)
		if !ok {
			return nil, xderrors.New(xderrors.KindUndefinedVar, id.Pos(), "undefined variable %q", id.Name)
		}
		return v, nil
	}

	parent, err := e.evalExpr(id.Parent)
	if err != nil {
		return nil, err
	}
	str, ok := parent.(*runtime.StringValue)
	if ok && id.Name == "length" {
		return &runtime.IntegerValue{Value: int64(len([]rune(str.Value)))}, nil
	}
	return nil, xderrors.New(xderrors.KindUnexpectedAttribute, id.Pos(),
		"unexpected attribute %q", id.Name)
}

// evalFunctionCall evaluates a function call. A call with a non-nil Parent
// is a dot-chain method call, handled entirely by evalMethodCall without
// consulting the global function table — so toUpper/toLower remain
// unreachable as plain calls.
func (e *Evaluator) evalFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	if call.Parent != nil {
		return e.evalMethodCall(call)
	}

	callee, ok := e.env.GetFunction(call.Name)
	if !ok {
		return nil, xderrors.New(xderrors.KindUndefinedFunction, call.Pos(), "undefined function %q", call.Name)
	}

	args := make([]runtime.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *runtime.BuiltinRef:
		v, err := fn.Fn(args)
		if err != nil {
			return nil, xderrors.New(xderrors.KindUnexpectedType, call.Pos(), "%s", err.Error())
		}
		return v, nil
	case *runtime.FunctionRef:
		return e.callUserFunction(fn, call, args)
	default:
		return nil, xderrors.New(xderrors.KindUndefinedFunction, call.Pos(), "undefined function %q", call.Name)
	}
}

// evalMethodCall validates that Name is toUpper/toLower and that the parent
// evaluates to a String; anything else is UnexpectedMethod.
func (e *Evaluator) evalMethodCall(call *ast.FunctionCall) (runtime.Value, error) {
	parent, err := e.evalExpr(call.Parent)
	if err != nil {
		return nil, err
	}

	if call.Name != "toUpper" && call.Name != "toLower" {
		return nil, xderrors.New(xderrors.KindUnexpectedMethod, call.Pos(), "unexpected method %q", call.Name)
	}
	str, ok := parent.(*runtime.StringValue)
	if !ok {
		return nil, xderrors.New(xderrors.KindUnexpectedMethod, call.Pos(),
			"method %q is not defined on %s", call.Name, parent.Type())
	}
	if len(call.Args) != 0 {
		return nil, xderrors.New(xderrors.KindInvalidArgsCount, call.Pos(),
			"%s() expects 0 arguments, got %d", call.Name, len(call.Args))
	}

	if call.Name == "toUpper" {
		return &runtime.StringValue{Value: builtins.ToUpper(str.Value)}, nil
	}
	return &runtime.StringValue{Value: builtins.ToLower(str.Value)}, nil
}

// callUserFunction performs the arity check, recursion-depth check, frame
// push/pop, and return-state save/restore for a user-defined function call.
func (e *Evaluator) callUserFunction(fn *runtime.FunctionRef, call *ast.FunctionCall, args []runtime.Value) (runtime.Value, error) {
	params := fn.Def.Parameters
	if len(args) != len(params) {
		return nil, xderrors.New(xderrors.KindInvalidArgsCount, call.Pos(),
			"%s() expects %d argument(s), got %d", fn.Def.Name, len(params), len(args))
	}

	e.tracef("call %s(%d args) at %s, depth %d", fn.Def.Name, len(args), call.Pos(), e.recursionDepth+1)
	e.recursionDepth++
	if e.recursionDepth > maxRecursionDepth {
		e.recursionDepth--
		return nil, xderrors.New(xderrors.KindRecursionLimit, call.Pos(),
			"recursion limit of %d exceeded", maxRecursionDepth)
	}
	defer func() { e.recursionDepth-- }()

	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
	}
	e.env.PushFrame(paramNames, args)
	defer e.env.PopFrame()

	savedFlag, savedValue := e.returnFlag, e.returnValue
	e.returnFlag, e.returnValue = false, nil

	err := e.execBlock(fn.Def.Block)

	result := e.returnValue
	if result == nil {
		result = runtime.Null
	}
	e.returnFlag, e.returnValue = savedFlag, savedValue

	if err != nil {
		return nil, err
	}
	return result, nil
}
