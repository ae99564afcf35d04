package semantic

// Fresher mints strictly increasing TypeVars. It is threaded explicitly
// through conversion and vectorization rather than kept as package-level
// state, so that two independent compilations (or a compilation and a
// vectorization re-run over a fragment of it) never collide on type-variable
// identity.
type Fresher struct {
	next TypeVar
}

// NewFresher returns a Fresher whose first minted variable is seed.
func NewFresher(seed int) *Fresher {
	return &Fresher{next: TypeVar(seed)}
}

// Fresh mints and returns the next TypeVar.
func (f *Fresher) Fresh() TypeVar {
	v := f.next
	f.next++
	return v
}

// FreshVar mints a TypeVar and wraps it as a MonoType, for direct use in a
// node's type slot.
func (f *Fresher) FreshVar() MonoType {
	return Var{TypeVar: f.Fresh()}
}
