package runtime

import "github.com/cwbudde/xd/internal/ast"

// FunctionRef holds a user-defined function, registered by name in the
// global scope's function table. It is never observed as a first-class
// Value by user code.
type FunctionRef struct {
	Def *ast.FunctionDefinition
}

func (f *FunctionRef) Type() string   { return "Function" }
func (f *FunctionRef) String() string { return "function " + f.Def.Name }

// BuiltinFunc is the signature every builtin implements.
type BuiltinFunc func(args []Value) (Value, error)

// BuiltinRef wraps a builtin implementation for storage in the global
// scope's function table alongside FunctionRef.
type BuiltinRef struct {
	Name string
	Fn   BuiltinFunc
}

func (b *BuiltinRef) Type() string   { return "Builtin" }
func (b *BuiltinRef) String() string { return "builtin " + b.Name }

// Callable is implemented by both FunctionRef and BuiltinRef so the
// evaluator's function table can hold either behind one interface.
type Callable interface {
	Value
	isCallable()
}

func (f *FunctionRef) isCallable() {}
func (b *BuiltinRef) isCallable()  {}
