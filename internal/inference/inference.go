// Package inference is the seam spec.md §4.6 describes: the semantic
// converter seeds type slots with fresh variables and the vectorization pass
// produces constraints and expects a substitution back, but neither
// performs unification itself. This
// package provides that collaborator — a small env/constraint/substitution
// vocabulary plus a MockEngine good enough to drive the vectorization
// prototype and its tests, standing in for a full Hindley–Milner solver.
package inference

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/semantic"
)

// Env is a binding environment: a name resolves to a polytype, represented
// here (mock-engine scope) as a plain MonoType since this package never
// generalizes or instantiates schemes.
type Env struct {
	parent *Env
	vars   map[string]semantic.MonoType
}

// NewEnv returns an empty, parentless environment.
func NewEnv() *Env {
	return &Env{vars: map[string]semantic.MonoType{}}
}

// Child returns a new environment nested under e, so lookups that miss
// locally fall through to e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: map[string]semantic.MonoType{}}
}

// Set binds name to t in this environment's local scope.
func (e *Env) Set(name string, t semantic.MonoType) {
	e.vars[name] = t
}

// Lookup resolves name, searching outward through parent scopes.
func (e *Env) Lookup(name string) (semantic.MonoType, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Constraint is an equality obligation between two monotypes, discovered at
// some source location.
type Constraint struct {
	Expected semantic.MonoType
	Actual   semantic.MonoType
	Loc      ast.SourceLocation
}

// Constraints is an accumulating, mergeable collection of Constraint.
type Constraints struct {
	list []Constraint
}

// NewConstraints returns an empty collection.
func NewConstraints() *Constraints {
	return &Constraints{}
}

// Add appends one equality constraint.
func (c *Constraints) Add(expected, actual semantic.MonoType, loc ast.SourceLocation) {
	c.list = append(c.list, Constraint{Expected: expected, Actual: actual, Loc: loc})
}

// Merge returns a new Constraints holding the summation of c and other.
func (c *Constraints) Merge(other *Constraints) *Constraints {
	out := &Constraints{}
	out.list = append(out.list, c.list...)
	if other != nil {
		out.list = append(out.list, other.list...)
	}
	return out
}

// List returns the accumulated constraints in discovery order.
func (c *Constraints) List() []Constraint {
	return c.list
}

// Substitution maps type variables (and, separately, row variables) to the
// monotypes/rows resolved for them.
type Substitution struct {
	vars map[semantic.TypeVar]semantic.MonoType
	rows map[semantic.TypeVar]semantic.Row
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{
		vars: map[semantic.TypeVar]semantic.MonoType{},
		rows: map[semantic.TypeVar]semantic.Row{},
	}
}

func (s *Substitution) bindVar(v semantic.TypeVar, t semantic.MonoType) {
	s.vars[v] = t
}

func (s *Substitution) bindRow(v semantic.TypeVar, r semantic.Row) {
	s.rows[v] = r
}

// Apply resolves t through the substitution, recursing into compound
// types, until it reaches a fixed point or an unbound variable.
func (s *Substitution) Apply(t semantic.MonoType) semantic.MonoType {
	switch v := t.(type) {
	case semantic.Var:
		if bound, ok := s.vars[v.TypeVar]; ok {
			return s.Apply(bound)
		}
		return v
	case semantic.ArrayType:
		return semantic.ArrayType{Element: s.Apply(v.Element)}
	case semantic.VectorType:
		return semantic.VectorType{Element: s.Apply(v.Element)}
	case semantic.FunctionType:
		params := make([]*semantic.Parameter, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = &semantic.Parameter{Kind: p.Kind, Name: p.Name, Type: s.Apply(p.Type)}
		}
		return semantic.FunctionType{Parameters: params, Return: s.Apply(v.Return)}
	case semantic.RecordType:
		return semantic.RecordType{Row: s.ApplyRow(v.Row)}
	default:
		return t
	}
}

// ApplyRow resolves a Row through the substitution.
func (s *Substitution) ApplyRow(r semantic.Row) semantic.Row {
	switch v := r.(type) {
	case semantic.RowVar:
		if bound, ok := s.rows[v.TypeVar]; ok {
			return s.ApplyRow(bound)
		}
		return v
	case semantic.RowExtension:
		return semantic.RowExtension{
			Head: semantic.RowProperty{Key: v.Head.Key, Value: s.Apply(v.Head.Value)},
			Tail: s.ApplyRow(v.Tail),
		}
	default:
		return r
	}
}

// unify extends sub so that a and b describe the same type, binding
// whichever side is an unbound variable. It is intentionally permissive:
// mismatched concrete shapes record an error but do not panic, consistent
// with this being a mock standing in for a real solver rather than a
// soundness-checked one.
func unify(a, b semantic.MonoType, sub *Substitution) error {
	a = sub.Apply(a)
	b = sub.Apply(b)

	if av, ok := a.(semantic.Var); ok {
		if bv, ok := b.(semantic.Var); ok && bv.TypeVar == av.TypeVar {
			return nil
		}
		sub.bindVar(av.TypeVar, b)
		return nil
	}
	if bv, ok := b.(semantic.Var); ok {
		sub.bindVar(bv.TypeVar, a)
		return nil
	}

	switch av := a.(type) {
	case semantic.BasicType:
		bv, ok := b.(semantic.BasicType)
		if !ok || av.Kind != bv.Kind {
			return fmt.Errorf("cannot unify %v with %v", a, b)
		}
		return nil
	case semantic.ArrayType:
		bv, ok := b.(semantic.ArrayType)
		if !ok {
			return fmt.Errorf("cannot unify %v with %v", a, b)
		}
		return unify(av.Element, bv.Element, sub)
	case semantic.VectorType:
		bv, ok := b.(semantic.VectorType)
		if !ok {
			return fmt.Errorf("cannot unify %v with %v", a, b)
		}
		return unify(av.Element, bv.Element, sub)
	case semantic.FunctionType:
		bv, ok := b.(semantic.FunctionType)
		if !ok || len(av.Parameters) != len(bv.Parameters) {
			return fmt.Errorf("cannot unify %v with %v", a, b)
		}
		for i := range av.Parameters {
			if err := unify(av.Parameters[i].Type, bv.Parameters[i].Type, sub); err != nil {
				return err
			}
		}
		return unify(av.Return, bv.Return, sub)
	case semantic.RecordType:
		bv, ok := b.(semantic.RecordType)
		if !ok {
			return fmt.Errorf("cannot unify %v with %v", a, b)
		}
		return unifyRow(av.Row, bv.Row, sub)
	default:
		return fmt.Errorf("cannot unify %v with %v", a, b)
	}
}

func unifyRow(a, b semantic.Row, sub *Substitution) error {
	a = sub.ApplyRow(a)
	b = sub.ApplyRow(b)

	if av, ok := a.(semantic.RowVar); ok {
		if bv, ok := b.(semantic.RowVar); ok && bv.TypeVar == av.TypeVar {
			return nil
		}
		sub.bindRow(av.TypeVar, b)
		return nil
	}
	if bv, ok := b.(semantic.RowVar); ok {
		sub.bindRow(bv.TypeVar, a)
		return nil
	}

	_, aEmpty := a.(semantic.RowEmpty)
	_, bEmpty := b.(semantic.RowEmpty)
	if aEmpty && bEmpty {
		return nil
	}
	ae, aok := a.(semantic.RowExtension)
	be, bok := b.(semantic.RowExtension)
	if !aok || !bok || ae.Head.Key != be.Head.Key {
		return fmt.Errorf("cannot unify record rows")
	}
	if err := unify(ae.Head.Value, be.Head.Value, sub); err != nil {
		return err
	}
	return unifyRow(ae.Tail, be.Tail, sub)
}
