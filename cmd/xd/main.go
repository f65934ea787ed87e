// Command xd runs the xd scripting language: a REPL, a file interpreter,
// and lexer/parser debug subcommands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/xd/cmd/xd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
