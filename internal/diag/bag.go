package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag collects problems up to a fixed capacity.
type Bag struct {
	items []Problem
	max   uint16
}

// NewBag creates a bag holding at most max problems. Values that do not fit
// in uint16 are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = ^uint16(0)
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Problem, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends p unless the bag is full, reporting whether it was stored.
func (b *Bag) Add(p Problem) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, p)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any problem has SevError.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any problem is at least a warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Problem {
	return b.items
}

// Merge appends everything from other, growing the capacity when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if total > int(b.max) {
		limit, err := safecast.Conv[uint16](total)
		if err != nil {
			panic(fmt.Errorf("bag capacity overflow: %w", err))
		}
		b.max = limit
	}
	b.items = append(b.items, other.items...)
}

// Sort orders problems by file, start, end, severity (desc) and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		pi, pj := b.items[i], b.items[j]
		if pi.Primary != pj.Primary {
			return pi.Primary.Before(pj.Primary)
		}
		if pi.Severity != pj.Severity {
			return pi.Severity > pj.Severity
		}
		return pi.Code < pj.Code
	})
}

// Dedup removes later duplicates (same anchor, message and severity).
func (b *Bag) Dedup() {
	b.items = Dedup(b.items)
}

// Filter keeps the problems for which keep returns true.
func (b *Bag) Filter(keep func(Problem) bool) {
	out := b.items[:0]
	for _, p := range b.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	b.items = out
}

// PromoteWarnings raises every warning to an error.
func (b *Bag) PromoteWarnings() {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			b.items[i].Severity = SevError
		}
	}
}
