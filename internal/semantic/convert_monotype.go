package semantic

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
)

var basicKinds = map[string]Basic{
	"bool":     BasicBool,
	"int":      BasicInt,
	"uint":     BasicUint,
	"float":    BasicFloat,
	"string":   BasicString,
	"duration": BasicDuration,
	"time":     BasicTime,
	"regexp":   BasicRegexp,
	"bytes":    BasicBytes,
}

// ConvertMonotype lowers an AST type expression into a semantic MonoType.
// tvars maps a surface type-variable or open-record name to the TypeVar it
// was already assigned; the same name seen twice (e.g. `(x: A) => A`) must
// resolve to the same TypeVar, so callers share one map across an entire
// declaration's type expression. Unseen names mint a fresh TypeVar and
// register it.
func ConvertMonotype(t ast.MonoType, tvars map[string]TypeVar, fresher *Fresher) (MonoType, error) {
	switch mt := t.(type) {
	case *ast.TvarType:
		return Var{TypeVar: resolveTvar(tvars, mt.Name.Name, fresher)}, nil
	case *ast.BasicType:
		kind, ok := basicKinds[mt.Name.Name]
		if !ok {
			return nil, fmt.Errorf("unknown basic type %q", mt.Name.Name)
		}
		return BasicType{Kind: kind}, nil
	case *ast.ArrayType:
		elem, err := ConvertMonotype(mt.Element, tvars, fresher)
		if err != nil {
			return nil, err
		}
		return ArrayType{Element: elem}, nil
	case *ast.RecordType:
		return convertRecordType(mt, tvars, fresher)
	case *ast.FunctionType:
		return convertFunctionType(mt, tvars, fresher)
	default:
		return nil, fmt.Errorf("not supported in semantic analysis")
	}
}

func resolveTvar(tvars map[string]TypeVar, name string, fresher *Fresher) TypeVar {
	if v, ok := tvars[name]; ok {
		return v
	}
	v := fresher.Fresh()
	tvars[name] = v
	return v
}

// convertRecordType folds a RecordType's properties right-to-left over a
// seed row: Row::Empty for a closed record, or the open row's type
// variable for `{ A with ... }`. See DESIGN.md for why right-to-left is the
// chosen fold order.
func convertRecordType(rt *ast.RecordType, tvars map[string]TypeVar, fresher *Fresher) (MonoType, error) {
	var seed Row = RowEmpty{}
	if rt.Tvar != nil {
		seed = RowVar{TypeVar: resolveTvar(tvars, rt.Tvar.Name, fresher)}
	}
	row := seed
	for i := len(rt.Properties) - 1; i >= 0; i-- {
		p := rt.Properties[i]
		val, err := ConvertMonotype(p.MonoType, tvars, fresher)
		if err != nil {
			return nil, err
		}
		row = RowExtension{Head: RowProperty{Key: p.Name.Name, Value: val}, Tail: row}
	}
	return RecordType{Row: row}, nil
}

func convertFunctionType(ft *ast.FunctionType, tvars map[string]TypeVar, fresher *Fresher) (MonoType, error) {
	var out FunctionType
	for _, p := range ft.Parameters {
		val, err := ConvertMonotype(p.MonoType, tvars, fresher)
		if err != nil {
			return nil, err
		}
		name := ""
		if p.Name != nil {
			name = p.Name.Name
		}
		var kind ParameterKind
		switch p.Kind {
		case ast.Required:
			kind = Required
		case ast.Optional:
			kind = Optional
		case ast.Pipe:
			kind = Pipe
		}
		out.Parameters = append(out.Parameters, &Parameter{Kind: kind, Name: name, Type: val})
	}
	ret, err := ConvertMonotype(ft.MonoType, tvars, fresher)
	if err != nil {
		return nil, err
	}
	out.Return = ret
	return out, nil
}
