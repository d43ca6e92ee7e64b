package analyzer

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Registry maps annotation names to analyzers in registration order. It is
// filled before any pass starts and only read afterwards.
type Registry struct {
	mu     sync.RWMutex
	byName map[string][]Analyzer
	count  int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]Analyzer)}
}

// normalizeName folds annotation names to NFC and trims a leading '@'.
func normalizeName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	return norm.NFC.String(name)
}

// Register appends a to the analyzers for annotation.
func (r *Registry) Register(annotation string, a Analyzer) {
	if a == nil {
		return
	}
	key := normalizeName(annotation)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[key] = append(r.byName[key], a)
	r.count++
}

// AnalyzersFor returns the analyzers registered for annotation, in
// registration order.
func (r *Registry) AnalyzersFor(annotation string) []Analyzer {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byName[normalizeName(annotation)])
}

// Disable removes every registration for the given annotation names.
func (r *Registry) Disable(annotations ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range annotations {
		key := normalizeName(name)
		r.count -= len(r.byName[key])
		delete(r.byName, key)
	}
}

// Names lists the annotation names with at least one analyzer, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}
