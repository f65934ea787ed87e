// Package xderrors defines the three disjoint error taxonomies produced by
// the xd toolchain (lexer, parser, interpreter) and formats them with source
// context.
package xderrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/xd/internal/srcpos"
)

// Kind identifies a specific error condition within one of the three
// taxonomies. Kind is a plain string, and every Kind value below is a
// distinct string, so Kinds from different taxonomies never compare equal.
type Kind string

// Lexer error kinds.
const (
	KindUnknownToken       Kind = "UnknownToken"
	KindIdentifierTooLong  Kind = "IdentifierTooLong"
	KindIntegerOverflow    Kind = "IntegerOverflow"
	KindFloatOverflow      Kind = "FloatOverflow"
	KindUnterminatedString Kind = "UnterminatedString"
	KindStringTooLong      Kind = "StringTooLong"
	KindInvalidEscape      Kind = "InvalidEscape"
	KindMalformedOperator  Kind = "MalformedOperator"
)

// Parser error kinds.
const (
	KindUnexpectedToken        Kind = "UnexpectedToken"
	KindExpectedLParen         Kind = "ExpectedLParen"
	KindExpectedRParen         Kind = "ExpectedRParen"
	KindExpectedLBrace         Kind = "ExpectedLBrace"
	KindExpectedRBrace         Kind = "ExpectedRBrace"
	KindExpectedFunctionName   Kind = "ExpectedFunctionName"
	KindExpectedVariableName   Kind = "ExpectedVariableName"
	KindExpectedLoopVariable   Kind = "ExpectedLoopVariable"
	KindExpectedIn             Kind = "ExpectedIn"
	KindExpectedExpression     Kind = "ExpectedExpression"
	KindExpectedParameter      Kind = "ExpectedParameter"
	KindExpectedArgument       Kind = "ExpectedArgument"
	KindExpectedIdentifierDot  Kind = "ExpectedIdentifierAfterDot"
	KindExpectedAssignOrCall   Kind = "ExpectedAssignOrCall"
)

// Interpreter error kinds.
const (
	KindDuplicateFunDeclaration Kind = "DuplicateFunDeclaration"
	KindDuplicateVarDeclaration Kind = "DuplicateVarDeclaration"
	KindUndefinedFunction       Kind = "UndefinedFunction"
	KindUndefinedVar            Kind = "UndefinedVar"
	KindDivisionByZero          Kind = "DivisionByZero"
	KindTypeBinary              Kind = "TypeBinary"
	KindTypeUnary               Kind = "TypeUnary"
	KindUnexpectedType          Kind = "UnexpectedType"
	KindUnexpectedMethod        Kind = "UnexpectedMethod"
	KindUnexpectedAttribute     Kind = "UnexpectedAttribute"
	KindInvalidArgsCount        Kind = "InvalidArgsCount"
	KindRecursionLimit          Kind = "RecursionLimit"
)

// XdError is a single diagnostic carrying an optional source position.
type XdError struct {
	Kind    Kind
	Message string
	Pos     *srcpos.Position // nil when no position is available
}

// New constructs an error at a position.
func New(kind Kind, pos srcpos.Position, format string, args ...any) *XdError {
	p := pos
	return &XdError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: &p}
}

// NewNoPos constructs an error with no known position.
func NewNoPos(kind Kind, format string, args ...any) *XdError {
	return &XdError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *XdError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Format renders the error with a source-line excerpt and a caret pointing
// at the offending column.
func (e *XdError) Format(src string, color bool) string {
	var sb strings.Builder

	if e.Pos == nil {
		fmt.Fprintf(&sb, "Error: %s\n", e.Message)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)

	if line := sourceLine(src, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders a batch of errors, one after another, separated by a
// blank line.
func FormatAll(errs []*XdError, src string, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Format(src, color))
		sb.WriteString("\n")
	}
	return sb.String()
}
