package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/xd/internal/interp"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/parser"
	"github.com/cwbudde/xd/internal/xderrors"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive xd session",
	Long: `Read lines of xd source one at a time, evaluating each against a
single persistent session: value and function declarations from earlier
lines remain visible to later ones. Type /exit to end the session.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl drives the interactive loop: one Evaluator persists across lines
// so each line's top-level value/function declarations accumulate in its
// Environment.
func runRepl() error {
	ev := interp.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Fprint(os.Stdout, "xd> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "/exit" {
			return nil
		}
		if line == "" {
			fmt.Fprint(os.Stdout, "xd> ")
			continue
		}

		if err := evalLine(ev, line); err != nil {
			xe, ok := err.(*xderrors.XdError)
			if ok {
				fmt.Fprint(os.Stderr, xe.Format(line, false))
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		fmt.Fprint(os.Stdout, "xd> ")
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func evalLine(ev *interp.Evaluator, line string) error {
	p := parser.New(lexer.New(line))
	prog, perr := p.ParseProgram()
	if perr != nil {
		return perr
	}
	return ev.Run(prog)
}
