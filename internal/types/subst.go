package types

// Substitution maps type-parameter names to type handles. It is built fresh
// for each projection and never mutated after construction.
type Substitution struct {
	m map[string]Type
}

// NewSubstitution binds d's type parameters positionally to args. A raw
// reference (no args) yields an empty substitution; surplus args are ignored.
func NewSubstitution(d *Decl, args []Type) Substitution {
	if d == nil || len(args) == 0 {
		return Substitution{}
	}
	m := make(map[string]Type, len(d.TypeParams))
	for i, p := range d.TypeParams {
		if i >= len(args) {
			break
		}
		m[p] = args[i]
	}
	return Substitution{m: m}
}

// Lookup returns the handle bound to name.
func (s Substitution) Lookup(name string) (Type, bool) {
	t, ok := s.m[name]
	return t, ok
}

// Len returns the number of bindings.
func (s Substitution) Len() int {
	return len(s.m)
}

// Apply replaces bound type parameters inside t. Unbound parameters are kept.
func (s Substitution) Apply(t Type) Type {
	if len(s.m) == 0 {
		return t
	}
	switch t.Kind {
	case KindParam:
		if v, ok := s.m[t.Name]; ok {
			return v
		}
		return t
	case KindNamed:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return Type{Kind: KindNamed, Name: t.Name, Args: args}
	case KindWildcard:
		if t.Bound == nil {
			return t
		}
		b := s.Apply(*t.Bound)
		return Type{Kind: KindWildcard, Wildcard: t.Wildcard, Bound: &b}
	default:
		return t
	}
}

// unify walks src and its supertypes until it reaches the declaration named
// target, returning the substitution in effect at that point.
func unify(idx Index, src Type, target string) (Substitution, *Decl, bool) {
	if src.Kind != KindNamed {
		return Substitution{}, nil, false
	}
	visited := make(map[string]struct{})
	var walk func(t Type) (Substitution, *Decl, bool)
	walk = func(t Type) (Substitution, *Decl, bool) {
		d, ok := resolve(idx, t.Name)
		if !ok {
			return Substitution{}, nil, false
		}
		if _, seen := visited[d.Name]; seen {
			return Substitution{}, nil, false
		}
		visited[d.Name] = struct{}{}

		s := NewSubstitution(d, erase(d, t.Args))
		if d.Name == target {
			return s, d, true
		}
		for _, sup := range d.Supers {
			if sup.Kind != KindNamed {
				continue
			}
			if rs, rd, found := walk(s.Apply(sup)); found {
				return rs, rd, true
			}
		}
		return Substitution{}, nil, false
	}
	return walk(src)
}

// erase pads args to d's parameter count with the top type, so a raw or
// partially applied reference never leaks d's own parameters into its
// supertypes.
func erase(d *Decl, args []Type) []Type {
	if len(args) >= len(d.TypeParams) {
		return args
	}
	out := make([]Type, len(d.TypeParams))
	copy(out, args)
	for i := len(args); i < len(out); i++ {
		out[i] = Top()
	}
	return out
}

// substituteTypeParameter finds the argument src supplies for the paramIndex-th
// parameter of target. Type variables supplied by the caller are returned as
// is; raw references bind to the top type.
func substituteTypeParameter(idx Index, src Type, target string, paramIndex int) (Type, bool) {
	s, d, ok := unify(idx, src, target)
	if !ok || paramIndex < 0 || paramIndex >= len(d.TypeParams) {
		return Type{}, false
	}
	v, ok := s.Lookup(d.TypeParams[paramIndex])
	if !ok || !v.IsValid() {
		return Type{}, false
	}
	return v, true
}
