package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperCaser and lowerCaser perform Unicode-correct case folding, not
// simple byte/rune mapping.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// ToUpper and ToLower back the "x".toUpper()/"x".toLower() dot-chain method
// calls. They are plain string->string helpers rather than BuiltinFuncs
// because the evaluator invokes them directly on the already type-checked
// receiver, never through the global function table.
func ToUpper(s string) string { return upperCaser.String(s) }
func ToLower(s string) string { return lowerCaser.String(s) }
