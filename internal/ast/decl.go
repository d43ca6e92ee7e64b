package ast

import (
	"strings"

	"genmark/internal/types"
)

// CtorName is the method name given to constructors.
const CtorName = "<init>"

// File is the root of one declaration model.
type File struct {
	Base
	Path  string
	Types []*TypeDecl
}

func (*File) Kind() NodeKind     { return KindFile }
func (f *File) String() string { return "file " + f.Path }

// TypeDecl is a class-like declaration.
type TypeDecl struct {
	Base
	Name        string // qualified
	TypeParams  []string
	Extends     types.Type // KindInvalid when absent
	Implements  []types.Type
	Annotations []*Annotation
	Fields      []*Field
	Methods     []*Method
	File        *File
}

func (*TypeDecl) Kind() NodeKind     { return KindType }
func (t *TypeDecl) String() string { return "type " + t.Name }

// Self returns the type as seen from inside its own body: every type
// parameter applied as itself.
func (t *TypeDecl) Self() types.Type {
	args := make([]types.Type, len(t.TypeParams))
	for i, p := range t.TypeParams {
		args[i] = types.MakeParam(p)
	}
	return types.MakeNamed(t.Name, args...)
}

// Decl converts t to a symbol-index declaration.
func (t *TypeDecl) Decl() *types.Decl {
	supers := make([]types.Type, 0, 1+len(t.Implements))
	if t.Extends.IsValid() {
		supers = append(supers, t.Extends)
	} else if t.Name != types.TopName {
		supers = append(supers, types.Top())
	}
	supers = append(supers, t.Implements...)
	return types.NewDecl(t.Name, t.TypeParams, supers...)
}

// Constructors returns the constructors in declaration order.
func (t *TypeDecl) Constructors() []*Method {
	var out []*Method
	for _, m := range t.Methods {
		if m.Constructor {
			out = append(out, m)
		}
	}
	return out
}

// MethodsNamed returns the non-constructor methods called name.
func (t *TypeDecl) MethodsNamed(name string) []*Method {
	var out []*Method
	for _, m := range t.Methods {
		if !m.Constructor && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// FieldNamed finds a field by simple name.
func (t *TypeDecl) FieldNamed(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Field is a member variable.
type Field struct {
	Base
	Name        string
	Type        types.Type
	Annotations []*Annotation
	Owner       *TypeDecl
}

func (*Field) Kind() NodeKind     { return KindField }
func (f *Field) String() string { return "field " + f.Name }

// Method is a method or, with Constructor set, a constructor. Synthesized
// marks members produced by code generation rather than written by hand.
type Method struct {
	Base
	Name        string
	Constructor bool
	Synthesized bool
	Params      []*Param
	Returns     types.Type
	Annotations []*Annotation
	Body        []Stmt
	Owner       *TypeDecl
}

func (*Method) Kind() NodeKind { return KindMethod }

func (m *Method) String() string {
	var sb strings.Builder
	if m.Constructor {
		sb.WriteString("constructor ")
		if m.Owner != nil {
			sb.WriteString(simpleName(m.Owner.Name))
		} else {
			sb.WriteString(CtorName)
		}
	} else {
		sb.WriteString("method ")
		sb.WriteString(m.Name)
	}
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.TypeText())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Param is a method parameter or the variable of a for-each header.
type Param struct {
	Base
	Name        string
	Type        types.Type
	Annotations []*Annotation
	Method      *Method
	ForEach     *ForEach // set for a for-each variable
}

func (*Param) Kind() NodeKind     { return KindParam }
func (p *Param) String() string { return "param " + p.Name }

// TypeText renders the declared type.
func (p *Param) TypeText() string {
	if !p.Type.IsValid() {
		return "?"
	}
	return p.Type.String()
}

func simpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
