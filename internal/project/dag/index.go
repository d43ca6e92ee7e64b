// Package dag orders the types of a declaration model by inheritance and
// finds inheritance cycles.
package dag

import (
	"slices"

	"genmark/internal/diag"
)

type TypeID uint32

// TypeNode is one declared type with the qualified names it extends or
// implements.
type TypeNode struct {
	Name   string
	Supers []string
	Anchor diag.Anchor
}

type TypeIndex struct {
	NameToID map[string]TypeID
	IDToName []string
}

// BuildIndex collects declared and referenced names, sorts them and assigns
// ids in that order.
func BuildIndex(nodes []TypeNode) TypeIndex {
	uniq := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Name != "" {
			uniq[n.Name] = struct{}{}
		}
		for _, s := range n.Supers {
			if s != "" {
				uniq[s] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	slices.Sort(names)

	nameToID := make(map[string]TypeID, len(names))
	for i, name := range names {
		nameToID[name] = TypeID(i)
	}
	return TypeIndex{NameToID: nameToID, IDToName: names}
}
