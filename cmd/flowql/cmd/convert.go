package cmd

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/clierrors"
	"github.com/cwbudde/flowql/internal/parser"
	"github.com/cwbudde/flowql/internal/semantic"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var convertExpr string
var convertDumpTypes bool

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Parse and lower flowql source into its semantic graph",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertExpr, "expression", "e", "", "parse a source string from the command line")
	convertCmd.Flags().BoolVar(&convertDumpTypes, "dump-types", false, "additionally dump every node's raw MonoType")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, name, err := readSource(convertExpr, args)
	if err != nil {
		return err
	}
	file := parser.ParseFile(source, name)
	for _, e := range clierrors.FromNode(file, source, name) {
		if cfg.Suppressed(e.Message) {
			continue
		}
		fmt.Println(e.Format(false))
	}

	pkg := &ast.Package{BaseNode: ast.BaseNode{Loc: file.Loc}, Package: "main", Files: []*ast.File{file}}
	fresher := semantic.NewFresher(cfg.FresherSeed)
	sp, err := semantic.ConvertWith(pkg, fresher)
	if err != nil {
		exitWithError("conversion failed: %s", err)
	}
	fmt.Println(semantic.Sprint(sp))
	if convertDumpTypes {
		fmt.Printf("%# v\n", pretty.Formatter(sp))
	}
	return nil
}
