package ast

import (
	"strings"

	"genmark/internal/source"
)

// Attr is one `name = value` element of an annotation. Array values keep
// their elements in order; a scalar value has a single element.
type Attr struct {
	Name   string
	Values []string
	Loc    source.Span // `name = value` in the model text
	// Removal covers Loc plus one adjoining separator, so deleting it
	// leaves a well-formed attribute list.
	Removal source.Span
}

// Annotation is a generation marker such as @lombok.Singular attached to
// Target.
type Annotation struct {
	Base
	Name   string // qualified
	Attrs  []Attr
	Target Node
}

func (*Annotation) Kind() NodeKind { return KindAnnotation }

func (a *Annotation) String() string {
	return "@" + a.Name
}

// ShortName returns the last segment of the qualified name.
func (a *Annotation) ShortName() string {
	return simpleName(a.Name)
}

// Attr returns the values of the named attribute.
func (a *Annotation) Attr(name string) ([]string, bool) {
	for _, at := range a.Attrs {
		if at.Name == name {
			return at.Values, true
		}
	}
	return nil, false
}

// AttrBool reads a boolean attribute, returning def when it is absent.
func (a *Annotation) AttrBool(name string, def bool) bool {
	v, ok := a.Attr(name)
	if !ok || len(v) != 1 {
		return def
	}
	switch strings.TrimSpace(v[0]) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// Owner returns the type declaration enclosing the annotated node.
func (a *Annotation) Owner() *TypeDecl {
	switch t := a.Target.(type) {
	case *TypeDecl:
		return t
	case *Field:
		return t.Owner
	case *Method:
		return t.Owner
	case *Param:
		if t.Method != nil {
			return t.Method.Owner
		}
	case *LocalVar:
		if t.Method != nil {
			return t.Method.Owner
		}
	}
	return nil
}
