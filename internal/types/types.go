package types

import (
	"fmt"
	"slices"
	"strings"
)

// Kind enumerates all supported kinds of type handles.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNamed
	KindParam
	KindWildcard
	KindPrimitive
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNamed:
		return "named"
	case KindParam:
		return "param"
	case KindWildcard:
		return "wildcard"
	case KindPrimitive:
		return "primitive"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// WildcardKind distinguishes `?`, `? extends B` and `? super B`.
type WildcardKind uint8

const (
	WildcardUnbounded WildcardKind = iota
	WildcardExtends
	WildcardSuper
)

func (w WildcardKind) String() string {
	switch w {
	case WildcardUnbounded:
		return "unbounded"
	case WildcardExtends:
		return "extends"
	case WildcardSuper:
		return "super"
	default:
		return fmt.Sprintf("WildcardKind(%d)", w)
	}
}

// Primitive enumerates the primitive value types.
type Primitive uint8

const (
	PrimInvalid Primitive = iota
	PrimBoolean
	PrimByte
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

var primitiveNames = [...]string{
	PrimInvalid: "invalid",
	PrimBoolean: "boolean",
	PrimByte:    "byte",
	PrimChar:    "char",
	PrimShort:   "short",
	PrimInt:     "int",
	PrimLong:    "long",
	PrimFloat:   "float",
	PrimDouble:  "double",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// LookupPrimitive maps a keyword such as "int" to its Primitive.
func LookupPrimitive(name string) (Primitive, bool) {
	for i, n := range primitiveNames {
		if i != int(PrimInvalid) && n == name {
			return Primitive(i), true
		}
	}
	return PrimInvalid, false
}

// Well-known qualified names.
const (
	TopName      = "java.lang.Object"
	IterableName = "java.lang.Iterable"
	StringName   = "java.lang.String"
)

// Type is a compact, immutable descriptor for a type reference.
//
//   - KindNamed: Name is the qualified declaration name, Args the ordered type arguments
//     (empty for a raw reference).
//   - KindParam: Name is the type-parameter name.
//   - KindWildcard: Wildcard selects the form, Bound is set unless unbounded.
//   - KindPrimitive: Prim selects the primitive.
//
// Values are never mutated after construction; helpers that "change" a type return a copy.
type Type struct {
	Kind     Kind
	Name     string
	Args     []Type
	Wildcard WildcardKind
	Bound    *Type
	Prim     Primitive
}

// Descriptor helpers ---------------------------------------------------------

// MakeNamed describes a parameterized (or raw, with no args) reference to a declaration.
func MakeNamed(name string, args ...Type) Type {
	return Type{Kind: KindNamed, Name: name, Args: cloneTypes(args)}
}

// MakeRaw describes a reference without type arguments.
func MakeRaw(name string) Type {
	return Type{Kind: KindNamed, Name: name}
}

// MakeParam describes a reference to a type parameter by name.
func MakeParam(name string) Type {
	return Type{Kind: KindParam, Name: name}
}

// MakeUnbounded describes `?`.
func MakeUnbounded() Type {
	return Type{Kind: KindWildcard, Wildcard: WildcardUnbounded}
}

// MakeExtends describes `? extends bound`.
func MakeExtends(bound Type) Type {
	b := bound
	return Type{Kind: KindWildcard, Wildcard: WildcardExtends, Bound: &b}
}

// MakeSuper describes `? super bound`.
func MakeSuper(bound Type) Type {
	b := bound
	return Type{Kind: KindWildcard, Wildcard: WildcardSuper, Bound: &b}
}

// MakePrimitive describes a primitive value type.
func MakePrimitive(p Primitive) Type {
	return Type{Kind: KindPrimitive, Prim: p}
}

// Void describes the absence of a value.
func Void() Type {
	return Type{Kind: KindVoid}
}

// Top returns the root of the type hierarchy.
func Top() Type {
	return MakeRaw(TopName)
}

// IsTop reports whether t is the top type.
func (t Type) IsTop() bool {
	return t.Kind == KindNamed && t.Name == TopName && len(t.Args) == 0
}

// IsValid reports whether t carries a kind.
func (t Type) IsValid() bool {
	return t.Kind != KindInvalid
}

// IsRaw reports whether t is a named reference without type arguments.
func (t Type) IsRaw() bool {
	return t.Kind == KindNamed && len(t.Args) == 0
}

// BoundOrTop returns the wildcard bound, or the top type for `?`.
// Non-wildcards are returned unchanged.
func (t Type) BoundOrTop() Type {
	if t.Kind != KindWildcard {
		return t
	}
	if t.Bound == nil {
		return Top()
	}
	return *t.Bound
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Name != o.Name || t.Prim != o.Prim || t.Wildcard != o.Wildcard {
		return false
	}
	if (t.Bound == nil) != (o.Bound == nil) {
		return false
	}
	if t.Bound != nil && !t.Bound.Equal(*o.Bound) {
		return false
	}
	return slices.EqualFunc(t.Args, o.Args, Type.Equal)
}

// String renders the type in source syntax.
func (t Type) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Type) write(sb *strings.Builder) {
	switch t.Kind {
	case KindNamed:
		sb.WriteString(t.Name)
		if len(t.Args) == 0 {
			return
		}
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	case KindParam:
		sb.WriteString(t.Name)
	case KindWildcard:
		sb.WriteByte('?')
		if t.Bound == nil || t.Wildcard == WildcardUnbounded {
			return
		}
		sb.WriteByte(' ')
		sb.WriteString(t.Wildcard.String())
		sb.WriteByte(' ')
		t.Bound.write(sb)
	case KindPrimitive:
		sb.WriteString(t.Prim.String())
	case KindVoid:
		sb.WriteString("void")
	default:
		sb.WriteString("<invalid>")
	}
}

func cloneTypes(ts []Type) []Type {
	if len(ts) == 0 {
		return nil
	}
	return slices.Clone(ts)
}
