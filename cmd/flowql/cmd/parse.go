package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse flowql source and print its AST",
	Long: `Parse flowql source code and print the Abstract Syntax Tree.

If no file is provided, reads the config's entryFile when one is set,
and stdin otherwise. Use -e to parse a source
string given directly on the command line instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "expression", "e", "", "parse a source string from the command line")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, name, err := readSource(parseExpr, args)
	if err != nil {
		return err
	}
	file := parser.ParseFile(source, name)
	fmt.Println(ast.Sprint(file))
	return nil
}

func readSource(expr string, args []string) (source, name string, err error) {
	switch {
	case expr != "":
		return expr, "<expression>", nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	case cfg.EntryFile != "":
		data, err := os.ReadFile(cfg.EntryFile)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", cfg.EntryFile, err)
		}
		return string(data), cfg.EntryFile, nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
