package types

import (
	"errors"
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Top(), "java.lang.Object"},
		{MakeNamed("java.util.Map", MakeRaw(StringName), MakeParam("V")), "java.util.Map<java.lang.String, V>"},
		{MakeUnbounded(), "?"},
		{MakeExtends(MakeRaw(StringName)), "? extends java.lang.String"},
		{MakeSuper(MakeParam("T")), "? super T"},
		{MakePrimitive(PrimLong), "long"},
		{Void(), "void"},
		{Type{}, "<invalid>"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		params []string
		want   Type
	}{
		{"java.lang.String", nil, MakeRaw(StringName)},
		{" java.util.List < java.lang.String > ", nil, MakeNamed("java.util.List", MakeRaw(StringName))},
		{"java.util.Map<K, ? extends java.util.List<?>>", []string{"K"},
			MakeNamed("java.util.Map", MakeParam("K"), MakeExtends(MakeNamed("java.util.List", MakeUnbounded())))},
		{"java.util.Set<? super T>", []string{"T"}, MakeNamed("java.util.Set", MakeSuper(MakeParam("T")))},
		{"T", nil, MakeRaw("T")},
		{"int", nil, MakePrimitive(PrimInt)},
		{"void", nil, Void()},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, tt.params...)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("   "); !errors.Is(err, ErrEmptyType) {
		t.Errorf("Parse(blank) error = %v, want ErrEmptyType", err)
	}
	bad := []string{
		"java.util.List<",
		"java.util.List<int>",
		"java.util.List<java.lang.String",
		"java.util.List<java.lang.String>>",
		"java..String",
		"<T>",
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestLookupPrimitive(t *testing.T) {
	if p, ok := LookupPrimitive("boolean"); !ok || p != PrimBoolean {
		t.Errorf("LookupPrimitive(boolean) = %v, %v", p, ok)
	}
	if _, ok := LookupPrimitive("invalid"); ok {
		t.Errorf("LookupPrimitive(invalid) should fail")
	}
	if _, ok := LookupPrimitive("String"); ok {
		t.Errorf("LookupPrimitive(String) should fail")
	}
}

func TestMapIndexChain(t *testing.T) {
	local := NewMapIndex(NewDecl("java.lang.String", []string{"Shadow"}))
	chain := Chain{local, JDK()}
	d, ok := chain.Resolve(StringName)
	if !ok || len(d.TypeParams) != 1 {
		t.Fatalf("first index in chain should win, got %+v", d)
	}
	if _, ok := chain.Resolve(ListName); !ok {
		t.Errorf("chain should fall through to the JDK index")
	}
	if _, ok := chain.Resolve("nope.Nope"); ok {
		t.Errorf("unexpected resolution of unknown name")
	}
	if local.Len() != 1 {
		t.Errorf("Len() = %d, want 1", local.Len())
	}
}

func TestMakeNamedCopiesArgs(t *testing.T) {
	args := []Type{MakeRaw(StringName)}
	n := MakeNamed(ListName, args...)
	args[0] = MakeRaw("java.lang.Integer")
	if n.Args[0].Name != StringName {
		t.Errorf("MakeNamed aliased its argument slice")
	}
}
