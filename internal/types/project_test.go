package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var typeCmp = cmp.Comparer(Type.Equal)

func testIndex() Index {
	local := NewMapIndex(
		NewDecl("test.Box", []string{"K", "V"}, Top()),
		NewDecl("test.Pair", []string{"A", "B"}, Top()),
		NewDecl("test.Rev", []string{"V", "K"}, Top()),
		NewDecl("test.Tri", []string{"V", "X", "Y"}, Top()),
		NewDecl("test.Plain", nil, Top()),
		NewDecl("test.StringList", nil, MakeNamed(ListName, MakeRaw(StringName))),
		NewDecl("test.Cycle1", []string{"T"}, MakeNamed("test.Cycle2", MakeParam("T"))),
		NewDecl("test.Cycle2", []string{"T"}, MakeNamed("test.Cycle1", MakeParam("T"))),
	)
	return Chain{local, JDK()}
}

func TestExtractElementType(t *testing.T) {
	idx := testIndex()
	tests := []struct {
		name  string
		src   string
		iface string
		param int
		want  string
	}{
		{"list", "java.util.List<java.lang.String>", IterableName, 0, "java.lang.String"},
		{"array list through supers", "java.util.ArrayList<java.lang.Integer>", IterableName, 0, "java.lang.Integer"},
		{"extends wildcard", "java.util.List<? extends java.lang.Number>", IterableName, 0, "java.lang.Number"},
		{"super wildcard", "java.util.Set<? super java.lang.Integer>", CollectionName, 0, "java.lang.Integer"},
		{"unbounded wildcard", "java.util.List<?>", IterableName, 0, TopName},
		{"raw", "java.util.List", IterableName, 0, TopName},
		{"not iterable", "java.lang.String", IterableName, 0, TopName},
		{"unknown declaration", "my.missing.Type<java.lang.String>", IterableName, 0, TopName},
		{"map value", "java.util.HashMap<java.lang.String, java.lang.Long>", MapName, 1, "java.lang.Long"},
		{"map key", "java.util.SortedMap<java.lang.String, java.lang.Long>", MapName, 0, "java.lang.String"},
		{"index out of range", "java.util.List<java.lang.String>", IterableName, 3, TopName},
		{"negative index", "java.util.List<java.lang.String>", IterableName, -1, TopName},
		{"non-generic subclass", "test.StringList", IterableName, 0, "java.lang.String"},
		{"cycle", "test.Cycle1<java.lang.String>", IterableName, 0, TopName},
		{"nested argument", "java.util.List<java.util.List<java.lang.String>>", IterableName, 0, "java.util.List<java.lang.String>"},
		{"raw through supers", "java.util.ArrayList", IterableName, 0, TopName},
		{"raw map value", "java.util.HashMap", MapName, 1, TopName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractElementType(idx, MustParse(tt.src), tt.iface, tt.param)
			if diff := cmp.Diff(MustParse(tt.want), got, typeCmp); diff != "" {
				t.Errorf("ExtractElementType(%s) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestExtractElementTypeTypeVariables(t *testing.T) {
	idx := testIndex()
	tv := MakeParam("T")
	tests := []struct {
		name  string
		src   string
		iface string
		param int
		want  Type
	}{
		{"list of T", "java.util.List<T>", IterableName, 0, tv},
		{"array list of T", "java.util.ArrayList<T>", IterableName, 0, tv},
		{"extends T", "java.util.List<? extends T>", IterableName, 0, tv},
		{"map value V", "java.util.HashMap<K, V>", MapName, 1, MakeParam("V")},
		{"list of list of T", "java.util.List<java.util.List<T>>", IterableName, 0, MakeNamed(ListName, tv)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := MustParse(tt.src, "T", "K", "V")
			got := ExtractElementType(idx, src, tt.iface, tt.param)
			if diff := cmp.Diff(tt.want, got, typeCmp); diff != "" {
				t.Errorf("ExtractElementType(%s) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}

	list := MakeNamed(ListName, tv)
	if diff := cmp.Diff(MakeExtends(tv), ExtractIterableWildcardElementType(idx, list), typeCmp); diff != "" {
		t.Errorf("wildcard element of List<T> mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Type{tv}, ExtractDeclaredTypeArguments(idx, list), typeCmp); diff != "" {
		t.Errorf("declared arguments of List<T> mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractElementTypeIsTotal(t *testing.T) {
	idx := testIndex()
	odd := []Type{
		{},
		Void(),
		MakePrimitive(PrimInt),
		MakeParam("T"),
		MakeUnbounded(),
		MakeExtends(MakeRaw(ListName)),
		MakeNamed(ListName, Type{}),
		MakeRaw(""),
	}
	for _, src := range odd {
		for _, idxCase := range []Index{idx, nil, Chain{}} {
			got := ExtractElementType(idxCase, src, IterableName, 0)
			if !got.IsValid() {
				t.Fatalf("ExtractElementType(%v) returned an invalid handle", src)
			}
			if !got.IsTop() {
				t.Errorf("ExtractElementType(%v) = %v, want top", src, got)
			}
		}
	}
}

func TestExtractWildcardElementType(t *testing.T) {
	idx := testIndex()
	tests := []struct {
		src  string
		want Type
	}{
		{"java.util.List<java.lang.String>", MakeExtends(MakeRaw(StringName))},
		{"java.util.List<java.lang.Object>", MakeUnbounded()},
		{"java.util.List<?>", MakeUnbounded()},
		{"java.util.List<? extends java.lang.Object>", MakeUnbounded()},
		{"java.util.List", MakeUnbounded()},
		{"java.util.ArrayList", MakeUnbounded()},
		{"java.lang.String", MakeUnbounded()},
	}
	for _, tt := range tests {
		got := ExtractIterableWildcardElementType(idx, MustParse(tt.src))
		if diff := cmp.Diff(tt.want, got, typeCmp); diff != "" {
			t.Errorf("ExtractIterableWildcardElementType(%s) mismatch (-want +got):\n%s", tt.src, diff)
		}
		if got.Kind == KindWildcard && got.Wildcard == WildcardExtends && got.BoundOrTop().IsTop() {
			t.Errorf("ExtractIterableWildcardElementType(%s) produced `? extends Object`", tt.src)
		}
	}
}

func TestBuildParameterizedType(t *testing.T) {
	idx := testIndex()
	str := MakeRaw(StringName)
	tests := []struct {
		name string
		decl string
		args []Type
		want Type
	}{
		{"missing declaration", "my.missing.Type", nil, MakeRaw("my.missing.Type")},
		{"missing declaration with args", "my.missing.Type", []Type{str}, MakeRaw("my.missing.Type")},
		{"list", ListName, []Type{str}, MakeNamed(ListName, str)},
		{"no args is raw", ListName, nil, MakeRaw(ListName)},
		{"padded", MapName, []Type{str}, MakeNamed(MapName, str, Top())},
		{"truncated", ListName, []Type{str, str}, MakeNamed(ListName, str)},
		{"non-generic", StringName, []Type{str}, MakeRaw(StringName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildParameterizedType(idx, tt.decl, tt.args...)
			if diff := cmp.Diff(tt.want, got, typeCmp); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractDeclaredTypeArguments(t *testing.T) {
	idx := testIndex()
	tests := []struct {
		src  Type
		want []Type
	}{
		{MustParse("java.util.Map<java.lang.String, java.lang.Integer>"), []Type{MakeRaw(StringName), MakeRaw("java.lang.Integer")}},
		{MustParse("java.util.Map"), []Type{Top(), Top()}},
		{MustParse("java.util.List<? extends java.lang.String>"), []Type{MakeExtends(MakeRaw(StringName))}},
		{MustParse("test.Plain"), []Type{}},
		{MakePrimitive(PrimInt), nil},
		{MustParse("my.missing.Type<java.lang.String>"), nil},
	}
	for _, tt := range tests {
		got := ExtractDeclaredTypeArguments(idx, tt.src)
		if len(got) != len(tt.want) {
			t.Fatalf("ExtractDeclaredTypeArguments(%v) = %v, want %v", tt.src, got, tt.want)
		}
		if diff := cmp.Diff(tt.want, got, typeCmp); len(tt.want) > 0 && diff != "" {
			t.Errorf("ExtractDeclaredTypeArguments(%v) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestProjectOntoCollection(t *testing.T) {
	idx := testIndex()
	str := MakeRaw(StringName)
	tests := []struct {
		target string
		want   Type
	}{
		{ListName, MakeNamed(ListName, str)},
		{ImmutableListName, MakeNamed(ImmutableListName, str)},
		{MapName, MakeNamed(MapName, str, Top())},
		{"my.missing.Collection", MakeRaw("my.missing.Collection")},
		{"test.Plain", MakeRaw("test.Plain")},
	}
	for _, tt := range tests {
		got := ProjectOntoCollection(idx, str, tt.target)
		if diff := cmp.Diff(tt.want, got, typeCmp); diff != "" {
			t.Errorf("ProjectOntoCollection(%s) mismatch (-want +got):\n%s", tt.target, diff)
		}
	}
}

func TestProjectWithReconciliation(t *testing.T) {
	idx := testIndex()
	str, integer := MakeRaw(StringName), MakeRaw("java.lang.Integer")
	tests := []struct {
		name   string
		src    string
		target string
		want   Type
	}{
		{"positional fallback", "test.Box<java.lang.String, java.lang.Integer>", "test.Pair", MakeNamed("test.Pair", str, integer)},
		{"name match wins over position", "test.Box<java.lang.String, java.lang.Integer>", "test.Rev", MakeNamed("test.Rev", integer, str)},
		{"partial overlap", "test.Box<java.lang.String, java.lang.Integer>", "test.Tri", MakeNamed("test.Tri", integer, integer, Top())},
		{"wildcards unwrap", "test.Box<? extends java.lang.String, ?>", "test.Pair", MakeNamed("test.Pair", str, Top())},
		{"raw source", "test.Box", "test.Pair", MakeNamed("test.Pair", Top(), Top())},
		{"unresolved source", "my.missing.Type<java.lang.String>", "test.Pair", MakeNamed("test.Pair", Top(), Top())},
		{"unresolved target", "test.Box<java.lang.String, java.lang.Integer>", "my.missing.Type", MakeRaw("my.missing.Type")},
		{"map to map", "java.util.HashMap<java.lang.String, java.lang.Integer>", ImmutableMapName, MakeNamed(ImmutableMapName, str, integer)},
		{"list to map", "java.util.List<java.lang.String>", MapName, MakeNamed(MapName, str, Top())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectWithReconciliation(idx, MustParse(tt.src), tt.target)
			if diff := cmp.Diff(tt.want, got, typeCmp); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			for _, a := range got.Args {
				if a.Kind == KindWildcard {
					t.Errorf("projection surfaced wildcard %v", a)
				}
			}
		})
	}
}

func TestQualifiedNameOf(t *testing.T) {
	idx := testIndex()
	if name, ok := QualifiedNameOf(idx, MustParse("java.util.List<java.lang.String>")); !ok || name != ListName {
		t.Errorf("QualifiedNameOf(List<String>) = %q, %v", name, ok)
	}
	if _, ok := QualifiedNameOf(idx, MakeRaw("my.missing.Type")); ok {
		t.Errorf("QualifiedNameOf(missing) should be absent")
	}
	if _, ok := QualifiedNameOf(idx, MakePrimitive(PrimInt)); ok {
		t.Errorf("QualifiedNameOf(int) should be absent")
	}
}

func TestDefaultReturnLiteral(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{MakePrimitive(PrimBoolean), "false"},
		{MakePrimitive(PrimInt), "0"},
		{MakePrimitive(PrimDouble), "0"},
		{MakePrimitive(PrimChar), "0"},
		{Void(), ""},
		{MakeRaw(StringName), "null"},
		{MakeNamed(ListName, MakeRaw(StringName)), "null"},
		{Type{}, "null"},
	}
	for _, tt := range tests {
		if got := DefaultReturnLiteral(tt.t); got != tt.want {
			t.Errorf("DefaultReturnLiteral(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestIsSubtypeOf(t *testing.T) {
	idx := testIndex()
	if !IsSubtypeOf(idx, MustParse("java.util.ArrayList<java.lang.String>"), CollectionName) {
		t.Errorf("ArrayList should reach Collection")
	}
	if IsSubtypeOf(idx, MustParse("java.util.HashMap<java.lang.String, java.lang.String>"), IterableName) {
		t.Errorf("HashMap should not reach Iterable")
	}
}
