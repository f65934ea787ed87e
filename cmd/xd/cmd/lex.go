package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/xd/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos bool
	lexEval    string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an xd file or expression",
	Long: `Tokenize (lex) xd source and print the resulting tokens, for
debugging the lexer.

Examples:
  xd lex script.xd
  xd lex -e 'value x = 10'
  xd lex --show-pos script.xd`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := sourceFromArgs(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok, lerr := l.NextToken()
		if lerr != nil {
			return lerr
		}
		if lexShowPos {
			fmt.Printf("[%-12s] %q @%s\n", tok.Type, tok.Literal, tok.Pos)
		} else {
			fmt.Printf("[%-12s] %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == lexer.ETX {
			return nil
		}
	}
}

// sourceFromArgs resolves the input source shared by the lex and parse
// debug subcommands: inline -e code or a file argument. Stdin is not read;
// with neither, it returns an error.
func sourceFromArgs(evalCode string, args []string) (string, error) {
	if evalCode != "" {
		return evalCode, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline code")
}
