package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []TypeID   // supertypes before subtypes
	Batches [][]TypeID // waves of types whose supertypes are all placed
	Cyclic  bool
	Cycles  []TypeID // types never placed
}

// ToposortKahn orders the present types of g.
func ToposortKahn(g Graph) *Topo {
	count := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]TypeID, 0, count)}

	active := 0
	current := make([]TypeID, 0, count)
	for i := range count {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, toID(i))
		}
	}

	for len(current) > 0 {
		topo.Batches = append(topo.Batches, current)
		var next []TypeID
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		for i := range count {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

func toID(i int) TypeID {
	id, err := safecast.Conv[TypeID](i)
	if err != nil {
		panic(fmt.Errorf("type id overflow: %w", err))
	}
	return id
}
