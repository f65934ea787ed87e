package interp

import (
	"strings"

	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/interp/runtime"
	"github.com/cwbudde/xd/internal/xderrors"
)

// numericValue returns v's numeric form if v is Int or Float.
func numericValue(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case *runtime.IntegerValue:
		return float64(n.Value), true
	case *runtime.FloatValue:
		return n.Value, true
	default:
		return 0, false
	}
}

func isString(v runtime.Value) bool {
	_, ok := v.(*runtime.StringValue)
	return ok
}

// evalBinary dispatches a BinaryOperation per the type-coercion rules
// below. && and || short-circuit and return the deciding operand's value,
// not a coerced bool; every other operator evaluates both operands first.
func (e *Evaluator) evalBinary(b *ast.BinaryOperation) (runtime.Value, error) {
	switch b.Op {
	case ast.OpAnd:
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(left) {
			return left, nil
		}
		return e.evalExpr(b.Right)
	case ast.OpOr:
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(left) {
			return left, nil
		}
		return e.evalExpr(b.Right)
	}

	left, err := e.evalExpr(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAdd:
		return e.evalAdd(b, left, right)
	case ast.OpMinus:
		return e.evalSub(b, left, right)
	case ast.OpMult:
		return e.evalMul(b, left, right)
	case ast.OpDiv:
		return e.evalDiv(b, left, right)
	case ast.OpEq:
		return e.evalEquality(b, left, right, false)
	case ast.OpNotEq:
		return e.evalEquality(b, left, right, true)
	case ast.OpLess, ast.OpGreater, ast.OpLessEq, ast.OpGreaterEq:
		return e.evalRelational(b, left, right)
	default:
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(), "unsupported operator %s", b.Op)
	}
}

// evalAdd: if either operand is a String, both coerce to display form and
// concatenate; otherwise numeric addition, preserving Int when both
// operands are Int and promoting to Float otherwise.
func (e *Evaluator) evalAdd(b *ast.BinaryOperation, left, right runtime.Value) (runtime.Value, error) {
	if isString(left) || isString(right) {
		return &runtime.StringValue{Value: runtime.DisplayForm(left) + runtime.DisplayForm(right)}, nil
	}
	if li, ok := left.(*runtime.IntegerValue); ok {
		if ri, ok := right.(*runtime.IntegerValue); ok {
			return &runtime.IntegerValue{Value: li.Value + ri.Value}, nil
		}
	}
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator + requires numeric or string operands, got %s and %s", left.Type(), right.Type())
	}
	return &runtime.FloatValue{Value: lf + rf}, nil
}

// evalSub: numeric only; a String on either side is TypeBinary.
func (e *Evaluator) evalSub(b *ast.BinaryOperation, left, right runtime.Value) (runtime.Value, error) {
	if isString(left) || isString(right) {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(), "operator - does not accept String operands")
	}
	if li, ok := left.(*runtime.IntegerValue); ok {
		if ri, ok := right.(*runtime.IntegerValue); ok {
			return &runtime.IntegerValue{Value: li.Value - ri.Value}, nil
		}
	}
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator - requires numeric operands, got %s and %s", left.Type(), right.Type())
	}
	return &runtime.FloatValue{Value: lf - rf}, nil
}

// evalMul: numeric*numeric, or String*Int / Int*String for string
// repetition. Both-String, or a mixed Float/String pair, is TypeBinary.
func (e *Evaluator) evalMul(b *ast.BinaryOperation, left, right runtime.Value) (runtime.Value, error) {
	ls, lIsStr := left.(*runtime.StringValue)
	rs, rIsStr := right.(*runtime.StringValue)
	li, lIsInt := left.(*runtime.IntegerValue)
	ri, rIsInt := right.(*runtime.IntegerValue)

	switch {
	case lIsStr && rIsInt:
		return &runtime.StringValue{Value: repeatString(ls.Value, ri.Value)}, nil
	case rIsStr && lIsInt:
		return &runtime.StringValue{Value: repeatString(rs.Value, li.Value)}, nil
	case lIsStr || rIsStr:
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator * does not support %s and %s", left.Type(), right.Type())
	}

	if lIsInt && rIsInt {
		return &runtime.IntegerValue{Value: li.Value * ri.Value}, nil
	}
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator * requires numeric operands, got %s and %s", left.Type(), right.Type())
	}
	return &runtime.FloatValue{Value: lf * rf}, nil
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, int(n))
}

// evalDiv always produces a Float, even for Int/Int; a zero right operand
// is DivisionByZero, a non-numeric operand is TypeBinary.
func (e *Evaluator) evalDiv(b *ast.BinaryOperation, left, right runtime.Value) (runtime.Value, error) {
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator / requires numeric operands, got %s and %s", left.Type(), right.Type())
	}
	if rf == 0 {
		return nil, xderrors.New(xderrors.KindDivisionByZero, b.Pos(), "division by zero")
	}
	return &runtime.FloatValue{Value: lf / rf}, nil
}

// evalEquality requires both operands to share the exact same runtime type
// — Int/Float equality is TypeBinary even when numerically equal (extended
// here to Bool and Null for consistency).
func (e *Evaluator) evalEquality(b *ast.BinaryOperation, left, right runtime.Value, negate bool) (runtime.Value, error) {
	var eq bool
	switch l := left.(type) {
	case *runtime.IntegerValue:
		r, ok := right.(*runtime.IntegerValue)
		if !ok {
			return nil, mixedEqualityError(b, left, right)
		}
		eq = l.Value == r.Value
	case *runtime.FloatValue:
		r, ok := right.(*runtime.FloatValue)
		if !ok {
			return nil, mixedEqualityError(b, left, right)
		}
		eq = l.Value == r.Value
	case *runtime.StringValue:
		r, ok := right.(*runtime.StringValue)
		if !ok {
			return nil, mixedEqualityError(b, left, right)
		}
		eq = l.Value == r.Value
	case *runtime.BoolValue:
		r, ok := right.(*runtime.BoolValue)
		if !ok {
			return nil, mixedEqualityError(b, left, right)
		}
		eq = l.Value == r.Value
	case *runtime.NullValue:
		_, ok := right.(*runtime.NullValue)
		if !ok {
			return nil, mixedEqualityError(b, left, right)
		}
		eq = true
	default:
		return nil, mixedEqualityError(b, left, right)
	}
	if negate {
		eq = !eq
	}
	return &runtime.BoolValue{Value: eq}, nil
}

func mixedEqualityError(b *ast.BinaryOperation, left, right runtime.Value) error {
	return xderrors.New(xderrors.KindTypeBinary, b.Pos(),
		"cannot compare %s with %s", left.Type(), right.Type())
}

// evalRelational allows any Int/Float mix (unlike equality), else
// TypeBinary.
func (e *Evaluator) evalRelational(b *ast.BinaryOperation, left, right runtime.Value) (runtime.Value, error) {
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, xderrors.New(xderrors.KindTypeBinary, b.Pos(),
			"operator %s requires numeric operands, got %s and %s", b.Op, left.Type(), right.Type())
	}
	var result bool
	switch b.Op {
	case ast.OpLess:
		result = lf < rf
	case ast.OpGreater:
		result = lf > rf
	case ast.OpLessEq:
		result = lf <= rf
	case ast.OpGreaterEq:
		result = lf >= rf
	}
	return &runtime.BoolValue{Value: result}, nil
}

// evalUnary implements "-x" (numeric only, else TypeUnary) and "!x"
// (truthiness negation, never fails).
func (e *Evaluator) evalUnary(u *ast.UnaryOperation) (runtime.Value, error) {
	v, err := e.evalExpr(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case ast.OpMinus:
		switch n := v.(type) {
		case *runtime.IntegerValue:
			return &runtime.IntegerValue{Value: -n.Value}, nil
		case *runtime.FloatValue:
			return &runtime.FloatValue{Value: -n.Value}, nil
		default:
			return nil, xderrors.New(xderrors.KindTypeUnary, u.Pos(), "unary - requires a numeric operand, got %s", v.Type())
		}
	case ast.OpNot:
		return &runtime.BoolValue{Value: !runtime.Truthy(v)}, nil
	default:
		return nil, xderrors.New(xderrors.KindTypeUnary, u.Pos(), "unsupported unary operator %s", u.Op)
	}
}
