package types

// Projection operations used by generation logic and annotation analyzers.
// All of them are pure: unresolved declarations and failed unifications
// degrade to the top type, a raw reference or an unbounded wildcard.

// ExtractElementType returns the argument src supplies for the paramIndex-th
// type parameter of iface. A wildcard argument yields its bound, a type
// variable is returned unchanged and a failed unification or raw reference
// yields the top type.
func ExtractElementType(idx Index, src Type, iface string, paramIndex int) Type {
	elem, ok := substituteTypeParameter(idx, src, iface, paramIndex)
	if !ok {
		return Top()
	}
	if elem.Kind == KindWildcard {
		elem = elem.BoundOrTop()
	}
	if !elem.IsValid() {
		return Top()
	}
	return elem
}

// ExtractIterableElementType is ExtractElementType against java.lang.Iterable<T>.
func ExtractIterableElementType(idx Index, src Type) Type {
	return ExtractElementType(idx, src, IterableName, 0)
}

// ExtractWildcardElementType wraps the element type as `? extends E`. An
// element type equal to the top type collapses to `?`.
func ExtractWildcardElementType(idx Index, src Type, iface string, paramIndex int) Type {
	elem := ExtractElementType(idx, src, iface, paramIndex)
	if elem.IsTop() {
		return MakeUnbounded()
	}
	return MakeExtends(elem)
}

// ExtractIterableWildcardElementType is ExtractWildcardElementType against java.lang.Iterable<T>.
func ExtractIterableWildcardElementType(idx Index, src Type) Type {
	return ExtractWildcardElementType(idx, src, IterableName, 0)
}

// BuildParameterizedType resolves name and applies args to it. An unresolved
// name yields a raw reference to name. Empty args yield a raw reference;
// otherwise args are padded with the top type or truncated to the declared
// parameter count.
func BuildParameterizedType(idx Index, name string, args ...Type) Type {
	d, ok := resolve(idx, name)
	if !ok || len(args) == 0 || len(d.TypeParams) == 0 {
		return MakeRaw(name)
	}
	fitted := make([]Type, len(d.TypeParams))
	for i := range fitted {
		if i < len(args) && args[i].IsValid() {
			fitted[i] = args[i]
			continue
		}
		fitted[i] = Top()
	}
	return Type{Kind: KindNamed, Name: d.Name, Args: fitted}
}

// ExtractDeclaredTypeArguments returns, for each type parameter of src's
// declaration in declared order, the argument src supplies, or the top type
// when there is none. Non-named or unresolved handles yield nil.
func ExtractDeclaredTypeArguments(idx Index, src Type) []Type {
	if src.Kind != KindNamed {
		return nil
	}
	d, ok := resolve(idx, src.Name)
	if !ok {
		return nil
	}
	s := NewSubstitution(d, src.Args)
	out := make([]Type, len(d.TypeParams))
	for i, p := range d.TypeParams {
		v, ok := s.Lookup(p)
		if !ok || !v.IsValid() {
			v = Top()
		}
		out[i] = v
	}
	return out
}

// ProjectOntoCollection builds target<src>: the sole (first) type parameter of
// target is bound to src and any further ones to the top type. An unresolved
// target yields a raw reference.
func ProjectOntoCollection(idx Index, src Type, target string) Type {
	d, ok := resolve(idx, target)
	if !ok || len(d.TypeParams) == 0 {
		return MakeRaw(target)
	}
	args := make([]Type, len(d.TypeParams))
	args[0] = src
	for i := 1; i < len(args); i++ {
		args[i] = Top()
	}
	return Type{Kind: KindNamed, Name: d.Name, Args: args}
}

// ProjectWithReconciliation parameterizes target from src's own type
// arguments. Each target parameter takes the argument of the same-named
// parameter of src's declaration, else the argument at the same position,
// else the top type. Wildcard arguments are replaced by their bounds.
//
// Positional fallback indexes src's bound arguments independently of name
// matches, so one src argument may feed both a name match and a position.
func ProjectWithReconciliation(idx Index, src Type, target string) Type {
	d, ok := resolve(idx, target)
	if !ok {
		return MakeRaw(target)
	}
	if len(d.TypeParams) == 0 {
		return MakeRaw(d.Name)
	}

	byName, byPos := reconcileSources(idx, src)

	args := make([]Type, len(d.TypeParams))
	for i, p := range d.TypeParams {
		mapped, ok := byName[p]
		if !ok && i < len(byPos) {
			mapped, ok = byPos[i], true
		}
		if !ok {
			mapped = Top()
		}
		args[i] = mapped.BoundOrTop()
	}
	return Type{Kind: KindNamed, Name: d.Name, Args: args}
}

func reconcileSources(idx Index, src Type) (map[string]Type, []Type) {
	if src.Kind != KindNamed || len(src.Args) == 0 {
		return nil, nil
	}
	sd, ok := resolve(idx, src.Name)
	if !ok {
		return nil, nil
	}
	s := NewSubstitution(sd, src.Args)
	byName := make(map[string]Type, s.Len())
	byPos := make([]Type, 0, s.Len())
	for _, p := range sd.TypeParams {
		v, ok := s.Lookup(p)
		if !ok || !v.IsValid() {
			continue
		}
		byName[p] = v
		byPos = append(byPos, v)
	}
	return byName, byPos
}

// QualifiedNameOf resolves src and returns its declaration's qualified name.
func QualifiedNameOf(idx Index, src Type) (string, bool) {
	if src.Kind != KindNamed {
		return "", false
	}
	d, ok := resolve(idx, src.Name)
	if !ok {
		return "", false
	}
	return d.Name, true
}

// DefaultReturnLiteral returns the placeholder expression a synthesized
// method body returns for t: "false", "0", "" for void, "null" otherwise.
func DefaultReturnLiteral(t Type) string {
	switch t.Kind {
	case KindPrimitive:
		if t.Prim == PrimBoolean {
			return "false"
		}
		return "0"
	case KindVoid:
		return ""
	default:
		return "null"
	}
}

// IsSubtypeOf reports whether src reaches the declaration named super through
// its supertype graph (src's own declaration included).
func IsSubtypeOf(idx Index, src Type, super string) bool {
	_, _, ok := unify(idx, src, super)
	return ok
}
