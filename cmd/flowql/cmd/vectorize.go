package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/inference"
	"github.com/cwbudde/flowql/internal/parser"
	"github.com/cwbudde/flowql/internal/semantic"
	"github.com/cwbudde/flowql/internal/vectorize"
	"github.com/spf13/cobra"
)

var (
	vectorizeExpr   string
	vectorizeFn     string
	vectorizeParam  string
	vectorizeFields string
)

// vectorizeCmd demonstrates the vectorization pass from the command line.
// The prototype pass takes an already-typed FunctionExpr; since this repo
// has no full program-wide inference engine (§4.6 of the design document
// treats inference as an external collaborator), the command accepts the
// target function's record-parameter shape directly via --fields rather
// than inferring it, the same shortcut this package's unit tests take when
// constructing a FunctionExpr by hand.
var vectorizeCmd = &cobra.Command{
	Use:   "vectorize [file]",
	Short: "Vectorize one function's record parameter and return type",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVectorize,
}

func init() {
	rootCmd.AddCommand(vectorizeCmd)
	vectorizeCmd.Flags().StringVarP(&vectorizeExpr, "expression", "e", "", "parse a source string from the command line")
	vectorizeCmd.Flags().StringVar(&vectorizeFn, "var", "", "top-level variable holding the function to vectorize (required)")
	vectorizeCmd.Flags().StringVar(&vectorizeParam, "param", "r", "name of the record parameter to vectorize")
	vectorizeCmd.Flags().StringVar(&vectorizeFields, "fields", "", "comma-separated name:basicType pairs describing the record parameter and return type, e.g. a:int,b:float")
	_ = vectorizeCmd.MarkFlagRequired("var")
	_ = vectorizeCmd.MarkFlagRequired("fields")
}

func runVectorize(cmd *cobra.Command, args []string) error {
	source, name, err := readSource(vectorizeExpr, args)
	if err != nil {
		return err
	}
	file := parser.ParseFile(source, name)
	pkg := &ast.Package{BaseNode: ast.BaseNode{Loc: file.Loc}, Package: "main", Files: []*ast.File{file}}
	fresher := semantic.NewFresher(cfg.FresherSeed)
	sp, err := semantic.ConvertWith(pkg, fresher)
	if err != nil {
		exitWithError("conversion failed: %s", err)
	}

	fn, err := findFunction(sp, vectorizeFn)
	if err != nil {
		return err
	}
	fn.Typ = buildFunctionType(vectorizeParam, vectorizeFields, fresher)

	env := inference.NewEnv()
	out, err := vectorize.Vectorize(env, fresher, fn, vectorizeParam)
	if err != nil {
		exitWithError("vectorize failed: %s", err)
	}
	fmt.Println(semantic.Sprint(out))
	return nil
}

func findFunction(pkg *semantic.Package, name string) (*semantic.FunctionExpr, error) {
	for _, f := range pkg.Files {
		for _, stmt := range f.Body {
			if va, ok := stmt.(*semantic.VariableAssgn); ok && va.Name == name {
				if fn, ok := va.Init.(*semantic.FunctionExpr); ok {
					return fn, nil
				}
				return nil, fmt.Errorf("%s is not a function literal", name)
			}
		}
	}
	return nil, fmt.Errorf("no top-level variable named %s", name)
}

// buildFunctionType builds a one-parameter FunctionType whose parameter
// (named param) and return value are both the record described by fields.
func buildFunctionType(param, fields string, fresher *semantic.Fresher) semantic.FunctionType {
	record := buildRecordType(fields)
	return semantic.FunctionType{
		Parameters: []*semantic.Parameter{{Kind: semantic.Required, Name: param, Type: record}},
		Return:     record,
	}
}

func buildRecordType(fields string) semantic.RecordType {
	var row semantic.Row = semantic.RowEmpty{}
	pairs := strings.Split(fields, ",")
	for i := len(pairs) - 1; i >= 0; i-- {
		kv := strings.SplitN(strings.TrimSpace(pairs[i]), ":", 2)
		if len(kv) != 2 {
			continue
		}
		row = semantic.RowExtension{
			Head: semantic.RowProperty{Key: kv[0], Value: semantic.BasicType{Kind: semantic.Basic(kv[1])}},
			Tail: row,
		}
	}
	return semantic.RecordType{Row: row}
}
