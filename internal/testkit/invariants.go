// Package testkit holds checks shared by tests of the model loader and the
// driver.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"genmark/internal/ast"
	"genmark/internal/project"
)

// CheckSpanBounds verifies that every node of m points into m's own file and
// that its span lies within the file content.
func CheckSpanBounds(m *project.Model) error {
	if m == nil || m.File == nil || m.Source == nil {
		return fmt.Errorf("nil model")
	}
	size, err := safecast.Conv[uint32](len(m.Source.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	ast.Inspect(m.File, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		sp := n.Span()
		switch {
		case sp.File != m.Source.ID:
			err = fmt.Errorf("%s: span points to file %d, want %d", n, sp.File, m.Source.ID)
		case sp.End < sp.Start:
			err = fmt.Errorf("%s: inverted span %v", n, sp)
		case sp.End > size:
			err = fmt.Errorf("%s: span end beyond content: %d > %d", n, sp.End, size)
		}
		return err == nil
	})
	return err
}

// CheckSpanInvariants adds to CheckSpanBounds, for well-formed models:
// 1) every type declaration has a non-empty span
// 2) every member of a type starts at or after the type's own span
func CheckSpanInvariants(m *project.Model) error {
	if err := CheckSpanBounds(m); err != nil {
		return err
	}
	var (
		cur *ast.TypeDecl
		err error
	)
	ast.Inspect(m.File, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.File:
			return true
		case *ast.TypeDecl:
			cur = n
			if n.Span().Empty() {
				err = fmt.Errorf("%s: empty span", n)
			}
			return err == nil
		}
		if cur != nil && n.Span().Start < cur.Span().Start {
			err = fmt.Errorf("%s starts at %d, before its type %s at %d", n, n.Span().Start, cur.Name, cur.Span().Start)
		}
		return err == nil
	})
	return err
}
