package types

import (
	"slices"
	"sync"
)

// Decl describes a named type declaration: its qualified name, ordered type
// parameters and direct supertypes. Supertypes may reference the declaration's
// own parameters via KindParam handles.
type Decl struct {
	Name       string
	TypeParams []string
	Supers     []Type
}

// NewDecl builds a declaration. Type-parameter names must be unique.
func NewDecl(name string, params []string, supers ...Type) *Decl {
	return &Decl{
		Name:       name,
		TypeParams: slices.Clone(params),
		Supers:     cloneTypes(supers),
	}
}

// ParamIndex returns the position of the named type parameter.
func (d *Decl) ParamIndex(name string) (int, bool) {
	if d == nil {
		return -1, false
	}
	i := slices.Index(d.TypeParams, name)
	return i, i >= 0
}

// Index resolves qualified names to declarations. Resolution failure is a
// normal outcome and is reported through the boolean, never as an error.
type Index interface {
	Resolve(qualifiedName string) (*Decl, bool)
}

// MapIndex is an Index backed by a map. It is safe for concurrent readers once
// populated; Add takes the write lock.
type MapIndex struct {
	mu    sync.RWMutex
	decls map[string]*Decl
}

// NewMapIndex creates an index seeded with decls.
func NewMapIndex(decls ...*Decl) *MapIndex {
	idx := &MapIndex{decls: make(map[string]*Decl, len(decls))}
	for _, d := range decls {
		idx.Add(d)
	}
	return idx
}

// Add registers d, replacing any previous declaration with the same name.
func (idx *MapIndex) Add(d *Decl) {
	if idx == nil || d == nil || d.Name == "" {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.decls == nil {
		idx.decls = make(map[string]*Decl)
	}
	idx.decls[d.Name] = d
}

// Resolve implements Index.
func (idx *MapIndex) Resolve(name string) (*Decl, bool) {
	if idx == nil {
		return nil, false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	d, ok := idx.decls[name]
	return d, ok
}

// Len returns the number of declarations.
func (idx *MapIndex) Len() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.decls)
}

// Chain consults each index in order and returns the first hit.
type Chain []Index

// Resolve implements Index.
func (c Chain) Resolve(name string) (*Decl, bool) {
	for _, idx := range c {
		if idx == nil {
			continue
		}
		if d, ok := idx.Resolve(name); ok {
			return d, true
		}
	}
	return nil, false
}

// resolve treats a nil index as an empty one.
func resolve(idx Index, name string) (*Decl, bool) {
	if idx == nil || name == "" {
		return nil, false
	}
	d, ok := idx.Resolve(name)
	if !ok || d == nil {
		return nil, false
	}
	return d, true
}
