package ast

import (
	"fmt"

	"genmark/internal/source"
)

// NodeKind tags every node of a declaration tree.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindFile
	KindType
	KindField
	KindMethod
	KindParam
	KindLocal
	KindForEach
	KindCall
	KindAnnotation
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindParam:
		return "param"
	case KindLocal:
		return "local"
	case KindForEach:
		return "foreach"
	case KindCall:
		return "call"
	case KindAnnotation:
		return "annotation"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// NodeID is the 1-based document-order ordinal assigned by Link. Zero means
// the node was never linked.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Node is implemented by every tree element. Nodes are always handled by
// pointer, so two Node values are the same node iff they compare equal.
type Node interface {
	Kind() NodeKind
	Span() source.Span
	ID() NodeID
	String() string
}

// Base carries the position and ordinal shared by all nodes.
type Base struct {
	Loc source.Span
	id  NodeID
}

func (b *Base) Span() source.Span { return b.Loc }
func (b *Base) ID() NodeID        { return b.id }
