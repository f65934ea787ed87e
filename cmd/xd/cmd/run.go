package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/xd/internal/interp"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/parser"
	"github.com/cwbudde/xd/internal/xderrors"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an xd script",
	Long: `Execute an xd program from a file or an inline expression.

Examples:
  # Run a script file
  xd run script.xd

  # Evaluate inline code
  xd run -e 'print(1+2)'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return runSource(evalExpr, "<eval>")
		}
		if len(args) == 1 {
			return runFile(args[0])
		}
		return fmt.Errorf("either provide a file path or use -e for inline code")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "log each top-level statement and user function call to stderr")
}

func runFile(path string) error {
	if !strings.HasSuffix(path, ".xd") {
		return fmt.Errorf("only .xd files are supported")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return runSource(string(content), path)
}

// runSource lexes, parses, and evaluates src, printing any xd error as a
// formatted diagnostic against stderr.
func runSource(src, filename string) error {
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		return reportXdError(perr, src)
	}

	ev := interp.New(os.Stdout)
	if trace {
		ev.WithTrace(os.Stderr)
	}
	if err := ev.Run(prog); err != nil {
		xe, ok := err.(*xderrors.XdError)
		if !ok {
			return err
		}
		return reportXdError(xe, src)
	}
	return nil
}

// reportXdError prints xe's formatted diagnostic to stderr and returns
// ErrReported so the caller knows not to print the error again.
func reportXdError(xe *xderrors.XdError, src string) error {
	fmt.Fprint(os.Stderr, xe.Format(src, false))
	return ErrReported
}
