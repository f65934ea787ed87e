package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEval     string
	parseDumpTree bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse xd source and display the AST",
	Long: `Parse xd source code and display the Abstract Syntax Tree.

Use --dump-tree for a structured, indented node dump instead of the
program's source-like String() rendering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-tree", false, "dump the full AST node tree")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := sourceFromArgs(parseEval, args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	program, perr := p.ParseProgram()
	if perr != nil {
		return perr
	}

	if parseDumpTree {
		dumpASTNode(program, 0)
		return nil
	}
	fmt.Print(program.String())
	return nil
}

// dumpASTNode prints a readable, indented tree of an AST node.
func dumpASTNode(node any, indent int) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Statements))
		for _, s := range n.Statements {
			dumpASTNode(s, indent+1)
		}
	case *ast.Block:
		fmt.Printf("%sBlock (%d statements)\n", pad, len(n.Statements))
		for _, s := range n.Statements {
			dumpASTNode(s, indent+1)
		}
	case *ast.FunctionDefinition:
		var params []string
		for _, p := range n.Parameters {
			params = append(params, p.Name)
		}
		fmt.Printf("%sFunctionDefinition %s(%s)\n", pad, n.Name, strings.Join(params, ", "))
		dumpASTNode(n.Block, indent+1)
	case *ast.VariableDeclaration:
		fmt.Printf("%sVariableDeclaration %s =\n", pad, n.Name)
		if n.ValueExpr != nil {
			dumpASTNode(n.ValueExpr, indent+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment %s =\n", pad, n.Name)
		dumpASTNode(n.ValueExpr, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Block, indent+1)
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Block, indent+1)
	case *ast.ForeachStatement:
		fmt.Printf("%sForeachStatement %s in\n", pad, n.Variable)
		dumpASTNode(n.Iterable, indent+1)
		dumpASTNode(n.Block, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.ValueExpr != nil {
			dumpASTNode(n.ValueExpr, indent+1)
		}
	case *ast.ExprStatement:
		fmt.Printf("%sExprStatement\n", pad)
		dumpASTNode(n.Expr, indent+1)
	case *ast.BinaryOperation:
		fmt.Printf("%sBinaryOperation (%s)\n", pad, n.Op)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryOperation:
		fmt.Printf("%sUnaryOperation (%s)\n", pad, n.Op)
		dumpASTNode(n.Right, indent+1)
	case *ast.FunctionCall:
		prefix := ""
		if n.Parent != nil {
			prefix = n.Parent.String() + "."
		}
		fmt.Printf("%sFunctionCall %s%s\n", pad, prefix, n.Name)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.Identifier:
		if n.Parent != nil {
			fmt.Printf("%sIdentifier %s.%s\n", pad, n.Parent.String(), n.Name)
		} else {
			fmt.Printf("%sIdentifier %s\n", pad, n.Name)
		}
	case *ast.Literal:
		fmt.Printf("%sLiteral %s\n", pad, n.String())
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}
