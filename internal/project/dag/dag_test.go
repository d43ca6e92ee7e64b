package dag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"genmark/internal/diag"
	"genmark/internal/source"
)

type anchor struct{ name string }

func (a *anchor) Span() source.Span { return source.Span{} }
func (a *anchor) String() string    { return a.name }

func names(idx TypeIndex, ids []TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[id]
	}
	return out
}

func TestBuildIndexIncludesSupers(t *testing.T) {
	idx := BuildIndex([]TypeNode{
		{Name: "b.Sub", Supers: []string{"a.Base", "java.lang.Object"}},
		{Name: "a.Base"},
	})
	want := []string{"a.Base", "b.Sub", "java.lang.Object"}
	if diff := cmp.Diff(want, idx.IDToName); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	for i, name := range want {
		if idx.NameToID[name] != TypeID(i) {
			t.Errorf("NameToID[%q] = %d, want %d", name, idx.NameToID[name], i)
		}
	}
}

func TestToposortOrdersSupertypesFirst(t *testing.T) {
	nodes := []TypeNode{
		{Name: "c.Leaf", Supers: []string{"b.Mid", "java.io.Serializable"}},
		{Name: "b.Mid", Supers: []string{"a.Root"}},
		{Name: "a.Root", Supers: []string{"java.lang.Object"}},
		{Name: "d.Other"},
	}
	idx := BuildIndex(nodes)
	var c diag.Collector
	g, _ := BuildGraph(idx, nodes, &c)
	topo := ToposortKahn(g)
	if topo.Cyclic || len(c.Problems()) != 0 {
		t.Fatalf("unexpected cycle: %+v %+v", topo, c.Problems())
	}
	want := [][]string{{"a.Root", "d.Other"}, {"b.Mid"}, {"c.Leaf"}}
	var got [][]string
	for _, b := range topo.Batches {
		got = append(got, names(idx, b))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestCyclesAreReported(t *testing.T) {
	a, b, self := &anchor{"A"}, &anchor{"B"}, &anchor{"S"}
	nodes := []TypeNode{
		{Name: "x.A", Supers: []string{"x.B"}, Anchor: a},
		{Name: "x.B", Supers: []string{"x.A"}, Anchor: b},
		{Name: "x.S", Supers: []string{"x.S"}, Anchor: self},
	}
	idx := BuildIndex(nodes)
	var c diag.Collector
	g, slots := BuildGraph(idx, nodes, &c)
	topo := ToposortKahn(g)
	ReportCycles(idx, slots, topo, &c)

	if !topo.Cyclic || len(topo.Cycles) != 2 {
		t.Fatalf("topo = %+v", topo)
	}
	got := c.Problems()
	if len(got) != 3 {
		t.Fatalf("got %d problems, want 3", len(got))
	}
	if got[0].Anchor != diag.Anchor(self) || got[0].Message != "type x.S cannot inherit from itself" {
		t.Errorf("self problem = %+v", got[0])
	}
	if got[1].Anchor != diag.Anchor(a) || got[1].Message != "type x.A participates in an inheritance cycle: x.A -> x.B" {
		t.Errorf("cycle problem = %+v", got[1])
	}
	for _, p := range got {
		if p.Code != diag.PrjCyclicType || p.Severity != diag.SevError {
			t.Errorf("problem = %+v", p)
		}
	}
}
