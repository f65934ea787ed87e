// Package srcpos defines the source position type shared by the lexer,
// parser, interpreter, and error-formatting packages. It is a leaf package
// so that none of those packages need to import each other just to talk
// about "where" an error happened.
package srcpos

import "fmt"

// Position identifies a location in source text. Lines and columns are
// 1-based; line advances on '\n', column resets to 1 on newline and
// increments on every other consumed character.
type Position struct {
	Line   int
	Column int
}

// String renders a position as "line:column", used in error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
