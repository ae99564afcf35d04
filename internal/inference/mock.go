package inference

import "github.com/cwbudde/flowql/internal/semantic"

// Options configures a MockEngine run. It exists so callers mirror the real
// engine's signature shape; the mock does not currently branch on any
// field.
type Options struct{}

// MockEngine is a minimal stand-in for a real Hindley–Milner solver: it
// resolves each accumulated constraint with a permissive unifier and
// returns the resulting substitution, enough to exercise the vectorization
// pass and its tests without depending on a full inference engine.
type MockEngine struct{}

// InferPkgTypesWithConstraints unifies every constraint in initial,
// returning env unchanged (it is not consulted) and the substitution solving
// them. It stops at the first unsatisfiable constraint.
func (MockEngine) InferPkgTypesWithConstraints(
	pkg *semantic.Package,
	env *Env,
	initial *Constraints,
	fresher *semantic.Fresher,
	opts Options,
) (*Env, *Substitution, error) {
	sub := NewSubstitution()
	for _, c := range initial.List() {
		if err := unify(c.Expected, c.Actual, sub); err != nil {
			return nil, nil, err
		}
	}
	return env, sub, nil
}

// InjectPkgTypes applies sub to every type slot in pkg, mutating the nodes
// in place and returning pkg for convenience.
func InjectPkgTypes(pkg *semantic.Package, sub *Substitution) *semantic.Package {
	semantic.WalkMut(injector{sub}, pkg)
	return pkg
}

// injector is the Visitor that performs the substitution-application walk.
type injector struct {
	sub *Substitution
}

func (injector) Visit(semantic.Node) bool { return true }

func (inj injector) Done(n semantic.Node) {
	switch node := n.(type) {
	case *semantic.IdentifierExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.ArrayExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.ObjectExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.MemberExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.IndexExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.BinaryExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.UnaryExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.CallExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.FunctionExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.DictExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	case *semantic.ExpandExpr:
		node.Typ = inj.sub.Apply(node.Typ)
	}
}
