package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrReported is returned by a RunE function after it has already written a
// formatted diagnostic to stderr, so main doesn't print the error a second
// time in its own, plainer form.
var ErrReported = errors.New("xd: error already reported")

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "xd",
	Short: "xd scripting language interpreter",
	Long: `xd is a small tree-walking interpreter: values, functions, if/while/
foreach, and a handful of builtins (print, int, float, bool, str,
toUpper, toLower).

Running xd with no subcommand and no file starts the REPL.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(args[0])
		}
		return runRepl()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
