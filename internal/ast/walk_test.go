package ast

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"genmark/internal/source"
	"genmark/internal/types"
)

func sampleFile() *File {
	singular := &Annotation{Name: "lombok.Singular"}
	return &File{
		Path: "sample.toml",
		Types: []*TypeDecl{{
			Name:        "com.example.Team",
			Annotations: []*Annotation{{Name: "lombok.Builder"}},
			Fields: []*Field{{
				Name:        "members",
				Type:        types.MustParse("java.util.List<java.lang.String>"),
				Annotations: []*Annotation{singular},
			}},
			Methods: []*Method{{
				Name:        CtorName,
				Constructor: true,
				Params:      []*Param{{Name: "id", Type: types.MakePrimitive(types.PrimInt)}},
				Body: []Stmt{
					&Call{Callee: CalleeSuper},
					&LocalVar{Name: "x", Type: types.MakeRaw("val"), Init: ParseExpr("id")},
					&ForEach{
						Var:      &Param{Name: "m", Type: types.MakeRaw("val")},
						Iterable: ParseExpr("members"),
						Body:     []Stmt{&Call{Name: "log", Args: []*Expr{ParseExpr("m")}}},
					},
				},
			}},
		}},
	}
}

func TestInspectDocumentOrder(t *testing.T) {
	f := sampleFile()
	if n := Link(f); n != 12 {
		t.Fatalf("Link() = %d nodes, want 12", n)
	}
	var got []string
	var ids []NodeID
	Inspect(f, func(n Node) bool {
		got = append(got, n.String())
		ids = append(ids, n.ID())
		return true
	})
	want := []string{
		"file sample.toml",
		"type com.example.Team",
		"@lombok.Builder",
		"field members",
		"@lombok.Singular",
		"constructor Team(int)",
		"param id",
		"call super()",
		"local x",
		"foreach m",
		"param m",
		"call log(m)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
	for i, id := range ids {
		if id != NodeID(i+1) {
			t.Errorf("node %d (%s) has id %d", i, got[i], id)
		}
	}
}

func TestInspectInterleavedMembers(t *testing.T) {
	at := func(start uint32) Base { return Base{Loc: source.Span{Start: start, End: start + 1}} }
	td := &TypeDecl{
		Name: "com.example.Mixed",
		Fields: []*Field{
			{Base: at(5), Name: "a"},
			{Base: at(50), Name: "b"},
		},
		Methods: []*Method{
			{Base: at(10), Name: "first"},
			{Base: at(70), Name: "second"},
		},
	}
	Link(&File{Types: []*TypeDecl{td}})
	var got []string
	var last NodeID
	Inspect(td, func(n Node) bool {
		got = append(got, n.String())
		if n.ID() <= last {
			t.Errorf("%s has id %d after %d", n, n.ID(), last)
		}
		last = n.ID()
		return true
	})
	want := []string{"type com.example.Mixed", "field a", "method first()", "field b", "method second()"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inspect order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	f := sampleFile()
	Link(f)
	count := 0
	Inspect(f, func(n Node) bool {
		count++
		return n.Kind() != KindMethod
	})
	if count != 6 {
		t.Errorf("visited %d nodes, want 6", count)
	}
}

func TestLinkParents(t *testing.T) {
	f := sampleFile()
	Link(f)
	team := f.Types[0]
	ctor := team.Methods[0]
	if team.File != f || ctor.Owner != team {
		t.Fatalf("owner pointers not set")
	}
	singular := team.Fields[0].Annotations[0]
	if singular.Target != Node(team.Fields[0]) || singular.Owner() != team {
		t.Errorf("annotation target = %v", singular.Target)
	}
	call := ctor.Body[0].(*Call)
	if call.Method != ctor || !call.IsKeyword() {
		t.Errorf("call not linked to its method")
	}
	loop := ctor.Body[2].(*ForEach)
	if loop.Var.ForEach != loop || loop.Var.Method != ctor {
		t.Errorf("for-each variable not linked")
	}
	inner := loop.Body[0].(*Call)
	if inner.Method != ctor || inner.IsKeyword() {
		t.Errorf("nested call not linked")
	}
}

func TestInspectNilChildren(t *testing.T) {
	f := &File{Types: []*TypeDecl{nil, {Name: "A", Methods: []*Method{nil}}}}
	Link(f)
	n := 0
	Inspect(f, func(Node) bool { n++; return true })
	if n != 2 {
		t.Errorf("visited %d nodes, want 2", n)
	}
	Inspect(nil, func(Node) bool { t.Fatal("visited nil"); return true })
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		in   string
		want ExprKind
	}{
		{"null", ExprNull},
		{" null ", ExprNull},
		{"{1, 2}", ExprArrayInit},
		{"42", ExprLiteral},
		{"-1.5f", ExprLiteral},
		{`"text"`, ExprLiteral},
		{"true", ExprLiteral},
		{"name", ExprIdent},
		{"a.b()", ExprOther},
		{"new ArrayList<>()", ExprOther},
	}
	for _, tt := range tests {
		if got := ParseExpr(tt.in).Kind; got != tt.want {
			t.Errorf("ParseExpr(%q).Kind = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExprIdents(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"x + 1", []string{"x"}},
		{`foo.bar(x, "y z")`, []string{"foo", "x"}},
		{"a . b . c", []string{"a"}},
		{`'x' + "\"q\"" + n2`, []string{"n2"}},
		{"1.5e3 + k", []string{"k"}},
	}
	for _, tt := range tests {
		got := ParseExpr(tt.in).Idents()
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("Idents(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	var nilExpr *Expr
	if nilExpr.Idents() != nil {
		t.Errorf("nil expr should have no idents")
	}
}

func TestAnnotationAttrs(t *testing.T) {
	a := &Annotation{Name: "lombok.EqualsAndHashCode", Attrs: []Attr{
		{Name: "of", Values: []string{"a", "b"}},
		{Name: "callSuper", Values: []string{"true"}},
	}}
	if v, ok := a.Attr("of"); !ok || len(v) != 2 {
		t.Errorf("Attr(of) = %v, %v", v, ok)
	}
	if _, ok := a.Attr("exclude"); ok {
		t.Errorf("Attr(exclude) should be absent")
	}
	if !a.AttrBool("callSuper", false) || a.AttrBool("missing", false) {
		t.Errorf("AttrBool is wrong")
	}
	if a.ShortName() != "EqualsAndHashCode" {
		t.Errorf("ShortName = %q", a.ShortName())
	}
}

func TestTypeDeclDecl(t *testing.T) {
	td := &TypeDecl{
		Name:       "com.example.Bag",
		TypeParams: []string{"E"},
		Implements: []types.Type{types.MakeNamed(types.CollectionName, types.MakeParam("E"))},
	}
	d := td.Decl()
	if len(d.Supers) != 2 || !d.Supers[0].IsTop() {
		t.Fatalf("supers = %v", d.Supers)
	}
	idx := types.Chain{types.NewMapIndex(d), types.JDK()}
	elem := types.ExtractIterableElementType(idx, types.MustParse("com.example.Bag<java.lang.String>"))
	if elem.String() != types.StringName {
		t.Errorf("element type through model decl = %v", elem)
	}
	if got := td.Self().String(); got != "com.example.Bag<E>" {
		t.Errorf("Self() = %q", got)
	}
}
