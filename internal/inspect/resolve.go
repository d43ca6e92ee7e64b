package inspect

import (
	"sync"

	"genmark/internal/ast"
)

// Resolver maps a call to the methods it may bind to.
type Resolver interface {
	ResolveCall(c *ast.Call) []*ast.Method
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(c *ast.Call) []*ast.Method

func (f ResolverFunc) ResolveCall(c *ast.Call) []*ast.Method { return f(c) }

// Provenance tells generated members from hand-written ones.
type Provenance interface {
	IsSynthesized(m *ast.Method) bool
}

// ProvenanceFunc adapts a function to Provenance.
type ProvenanceFunc func(m *ast.Method) bool

func (f ProvenanceFunc) IsSynthesized(m *ast.Method) bool { return f(m) }

// MarkerProvenance reads the Synthesized flag recorded on the method.
var MarkerProvenance Provenance = ProvenanceFunc(func(m *ast.Method) bool {
	return m != nil && m.Synthesized
})

// DeclResolver resolves `this(...)` and `super(...)` against type
// declarations it knows by qualified name. Named calls are not resolved.
type DeclResolver struct {
	mu    sync.RWMutex
	types map[string]*ast.TypeDecl
}

// NewDeclResolver indexes every type declared in files.
func NewDeclResolver(files ...*ast.File) *DeclResolver {
	r := &DeclResolver{types: make(map[string]*ast.TypeDecl)}
	for _, f := range files {
		r.AddFile(f)
	}
	return r
}

// AddFile indexes the types of f. A later declaration of the same name
// replaces the earlier one.
func (r *DeclResolver) AddFile(f *ast.File) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range f.Types {
		if t != nil {
			r.types[t.Name] = t
		}
	}
}

// Add indexes a single type.
func (r *DeclResolver) Add(t *ast.TypeDecl) {
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.Name] = t
}

// Lookup finds a type by qualified name.
func (r *DeclResolver) Lookup(name string) (*ast.TypeDecl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// ResolveCall returns the constructors of the delegation target whose
// arity matches the call. When none matches, every constructor is a
// candidate, mirroring how overload resolution degrades.
func (r *DeclResolver) ResolveCall(c *ast.Call) []*ast.Method {
	target := r.target(c)
	if target == nil {
		return nil
	}
	ctors := target.Constructors()
	var matching []*ast.Method
	for _, m := range ctors {
		if len(m.Params) == len(c.Args) {
			matching = append(matching, m)
		}
	}
	if len(matching) > 0 {
		return matching
	}
	return ctors
}

func (r *DeclResolver) target(c *ast.Call) *ast.TypeDecl {
	if c == nil || c.Method == nil || c.Method.Owner == nil {
		return nil
	}
	owner := c.Method.Owner
	switch c.Callee {
	case ast.CalleeThis:
		return owner
	case ast.CalleeSuper:
		if !owner.Extends.IsValid() {
			return nil
		}
		t, ok := r.Lookup(owner.Extends.Name)
		if !ok {
			return nil
		}
		return t
	}
	return nil
}
