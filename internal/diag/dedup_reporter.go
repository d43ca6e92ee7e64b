package diag

// DedupReporter wraps another Reporter and drops problems whose Key was
// already seen. Reset starts a fresh scope.
type DedupReporter struct {
	next Reporter
	seen map[Key]struct{}
}

// NewDedupReporter returns a Reporter that forwards unique problems to next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[Key]struct{}),
	}
}

func (r *DedupReporter) Report(p Problem) {
	if r == nil {
		return
	}
	key := p.Key()
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(p)
	}
}

// Reset forgets every seen key.
func (r *DedupReporter) Reset() {
	clear(r.seen)
}

// Dedup returns problems with later duplicates removed, preserving order.
func Dedup(problems []Problem) []Problem {
	if len(problems) < 2 {
		return problems
	}
	seen := make(map[Key]struct{}, len(problems))
	out := make([]Problem, 0, len(problems))
	for _, p := range problems {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
