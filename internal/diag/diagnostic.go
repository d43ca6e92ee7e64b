package diag

import "genmark/internal/source"

// Anchor is the node a problem is attached to. Anchors are compared by
// identity, so implementations must be comparable (tree nodes are pointers).
type Anchor interface {
	Span() source.Span
	String() string
}

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix references a quick fix offered with a problem. Fixes are data only;
// applying them belongs to the host.
type Fix struct {
	ID    string
	Title string
	Edits []FixEdit
}

// Problem is one reportable finding.
type Problem struct {
	Severity Severity
	Code     Code
	Message  string
	Anchor   Anchor
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// New builds a problem anchored at a. Primary is taken from the anchor.
func New(sev Severity, code Code, a Anchor, msg string) Problem {
	p := Problem{Severity: sev, Code: code, Message: msg, Anchor: a}
	if a != nil {
		p.Primary = a.Span()
	}
	return p
}

func NewError(code Code, a Anchor, msg string) Problem {
	return New(SevError, code, a, msg)
}

func NewWarning(code Code, a Anchor, msg string) Problem {
	return New(SevWarning, code, a, msg)
}

func (p Problem) WithNote(sp source.Span, msg string) Problem {
	p.Notes = append(p.Notes, Note{Span: sp, Msg: msg})
	return p
}

func (p Problem) WithFix(id, title string, edits ...FixEdit) Problem {
	p.Fixes = append(p.Fixes, Fix{ID: id, Title: title, Edits: edits})
	return p
}

// AnchoredAt returns p attached to a when p has no anchor of its own.
func (p Problem) AnchoredAt(a Anchor) Problem {
	if p.Anchor != nil || a == nil {
		return p
	}
	p.Anchor = a
	if p.Primary == (source.Span{}) {
		p.Primary = a.Span()
	}
	return p
}

// ReanchoredAt returns p attached to a regardless of its own anchor. The
// primary span is kept only when it lies within a's span.
func (p Problem) ReanchoredAt(a Anchor) Problem {
	if a == nil {
		return p
	}
	p.Anchor = a
	if sp := a.Span(); p.Primary == (source.Span{}) || !sp.Contains(p.Primary) {
		p.Primary = sp
	}
	return p
}

// Key identifies a problem for deduplication: same anchor, message and
// severity. Problems without an anchor fall back to their primary span.
type Key struct {
	anchor Anchor
	span   source.Span
	msg    string
	sev    Severity
}

func (p Problem) Key() Key {
	k := Key{anchor: p.Anchor, msg: p.Message, sev: p.Severity}
	if p.Anchor == nil {
		k.span = p.Primary
	}
	return k
}
