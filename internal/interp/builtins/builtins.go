// Package builtins implements the fixed builtin registry: plain functions
// over runtime.Value rather than methods on the evaluator, so the set can
// be registered and tested independently of it.
package builtins

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/xd/internal/interp/runtime"
)

// Register installs the five globally callable builtins — print, int,
// float, bool, str — into env's function table. out is where print writes;
// a persistent REPL and a one-shot file run pass different writers.
//
// toUpper/toLower are deliberately not registered here: they are callable
// only through dot-chain method calls on a string, which the evaluator
// dispatches directly via ToUpper/ToLower below rather than through the
// global function table (so a bare `toUpper("x")` correctly fails with
// UndefinedFunction).
func Register(env *runtime.Environment, out io.Writer) {
	for _, b := range []*runtime.BuiltinRef{
		{Name: "print", Fn: printFn(out)},
		{Name: "int", Fn: intFn},
		{Name: "float", Fn: floatFn},
		{Name: "bool", Fn: boolFn},
		{Name: "str", Fn: strFn},
	} {
		env.DeclareFunction(b.Name, b)
	}
}

func printFn(out io.Writer) runtime.BuiltinFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = runtime.DisplayForm(a)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return runtime.Null, nil
	}
}

// intFn converts an Int, a Float (truncated toward zero), or a decimal
// string to Int; any other type is UnexpectedType.
func intFn(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("int() expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *runtime.IntegerValue:
		return &runtime.IntegerValue{Value: v.Value}, nil
	case *runtime.FloatValue:
		return &runtime.IntegerValue{Value: int64(v.Value)}, nil
	case *runtime.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int() could not parse %q as an integer", v.Value)
		}
		return &runtime.IntegerValue{Value: n}, nil
	default:
		return nil, fmt.Errorf("int() expects a numeric or string argument, got %s", v.Type())
	}
}

// floatFn converts a numeric value or numeric string to Float; any other
// type is UnexpectedType.
func floatFn(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("float() expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *runtime.IntegerValue:
		return &runtime.FloatValue{Value: float64(v.Value)}, nil
	case *runtime.FloatValue:
		return &runtime.FloatValue{Value: v.Value}, nil
	case *runtime.StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("float() could not parse %q as a float", v.Value)
		}
		return &runtime.FloatValue{Value: f}, nil
	default:
		return nil, fmt.Errorf("float() expects a numeric or string argument, got %s", v.Type())
	}
}

// boolFn implements the standard truthiness rule.
func boolFn(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("bool() expects 1 argument, got %d", len(args))
	}
	return &runtime.BoolValue{Value: runtime.Truthy(args[0])}, nil
}

// strFn returns the display form of v as a String.
func strFn(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str() expects 1 argument, got %d", len(args))
	}
	return &runtime.StringValue{Value: runtime.DisplayForm(args[0])}, nil
}
