package dag

import (
	"fmt"
	"slices"
	"strings"

	"genmark/internal/diag"
)

// Graph points from each supertype to the types that extend it, so that a
// topological order lists supertypes first. Types referenced but not
// declared (library types) are absent and carry no edges.
type Graph struct {
	Edges   [][]TypeID
	Indeg   []int
	Present []bool
}

// BuildGraph links the declared types. A type naming itself as a supertype
// is reported to r and the edge is dropped.
func BuildGraph(idx TypeIndex, nodes []TypeNode, r diag.Reporter) (Graph, []TypeNode) {
	count := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]TypeID, count),
		Indeg:   make([]int, count),
		Present: make([]bool, count),
	}
	slots := make([]TypeNode, count)
	for _, n := range nodes {
		id, ok := idx.NameToID[n.Name]
		if !ok || g.Present[id] {
			continue
		}
		g.Present[id] = true
		slots[id] = n
	}

	for to := range slots {
		n := &slots[to]
		if !g.Present[to] {
			continue
		}
		seen := make(map[TypeID]struct{}, len(n.Supers))
		for _, super := range n.Supers {
			from, ok := idx.NameToID[super]
			if !ok || !g.Present[from] {
				continue
			}
			if int(from) == to {
				if r != nil {
					r.Report(diag.NewError(diag.PrjCyclicType, n.Anchor,
						fmt.Sprintf("type %s cannot inherit from itself", n.Name)))
				}
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			g.Edges[from] = append(g.Edges[from], TypeID(to))
			g.Indeg[to]++
		}
	}
	for i := range g.Edges {
		if len(g.Edges[i]) > 1 {
			slices.Sort(g.Edges[i])
		}
	}
	return g, slots
}

// ReportCycles reports every type left in an inheritance cycle.
func ReportCycles(idx TypeIndex, slots []TypeNode, topo *Topo, r diag.Reporter) {
	if r == nil || topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, idx.IDToName[id])
	}
	summary := strings.Join(names, " -> ")
	for _, id := range topo.Cycles {
		n := slots[id]
		r.Report(diag.NewError(diag.PrjCyclicType, n.Anchor,
			fmt.Sprintf("type %s participates in an inheritance cycle: %s", n.Name, summary)))
	}
}
