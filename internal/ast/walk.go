package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Inspect traverses the tree rooted at n in document order, calling f for
// each node. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	switch n := n.(type) {
	case *File:
		for _, t := range n.Types {
			Inspect(t, f)
		}
	case *TypeDecl:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
		eachMember(n.Fields, n.Methods,
			func(fd *Field) { Inspect(fd, f) },
			func(m *Method) { Inspect(m, f) })
	case *Field:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
	case *Method:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
		for _, p := range n.Params {
			Inspect(p, f)
		}
		inspectStmts(n.Body, f)
	case *Param:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
	case *LocalVar:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
	case *ForEach:
		if n.Var != nil {
			Inspect(n.Var, f)
		}
		inspectStmts(n.Body, f)
	}
}

// eachMember merges fields and methods by span start; model files may
// interleave the two tables. On equal starts fields come first.
func eachMember(fields []*Field, methods []*Method, onField func(*Field), onMethod func(*Method)) {
	i, j := 0, 0
	for i < len(fields) || j < len(methods) {
		if j == len(methods) || (i < len(fields) && !memberAfter(fields[i], methods[j])) {
			onField(fields[i])
			i++
			continue
		}
		onMethod(methods[j])
		j++
	}
}

func memberAfter(fd *Field, m *Method) bool {
	if fd == nil || m == nil {
		return false
	}
	return fd.Span().Start > m.Span().Start
}

func inspectStmts(body []Stmt, f func(Node) bool) {
	for _, s := range body {
		Inspect(s, f)
	}
}

// isNil catches typed nil pointers stored in a Node.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *File:
		return n == nil
	case *TypeDecl:
		return n == nil
	case *Field:
		return n == nil
	case *Method:
		return n == nil
	case *Param:
		return n == nil
	case *LocalVar:
		return n == nil
	case *ForEach:
		return n == nil
	case *Call:
		return n == nil
	case *Annotation:
		return n == nil
	}
	return false
}

// Link fills in parent pointers and assigns document-order ids below f.
// Builders call it once after the tree is complete; it returns the number of
// nodes.
func Link(f *File) int {
	l := linker{}
	l.file(f)
	return int(l.next)
}

type linker struct {
	next NodeID
}

func (l *linker) assign(b *Base) {
	n, err := safecast.Conv[uint32](uint64(l.next) + 1)
	if err != nil {
		panic(fmt.Errorf("node count overflow: %w", err))
	}
	l.next = NodeID(n)
	b.id = l.next
}

func (l *linker) file(f *File) {
	if f == nil {
		return
	}
	l.assign(&f.Base)
	for _, t := range f.Types {
		if t == nil {
			continue
		}
		t.File = f
		l.typeDecl(t)
	}
}

func (l *linker) typeDecl(t *TypeDecl) {
	l.assign(&t.Base)
	l.annotations(t.Annotations, t)
	eachMember(t.Fields, t.Methods,
		func(fd *Field) {
			if fd == nil {
				return
			}
			fd.Owner = t
			l.assign(&fd.Base)
			l.annotations(fd.Annotations, fd)
		},
		func(m *Method) {
			if m == nil {
				return
			}
			m.Owner = t
			l.method(m)
		})
}

func (l *linker) method(m *Method) {
	l.assign(&m.Base)
	l.annotations(m.Annotations, m)
	for _, p := range m.Params {
		if p == nil {
			continue
		}
		p.Method = m
		l.assign(&p.Base)
		l.annotations(p.Annotations, p)
	}
	l.body(m, m.Body)
}

func (l *linker) body(m *Method, body []Stmt) {
	for _, s := range body {
		switch s := s.(type) {
		case *LocalVar:
			if s == nil {
				continue
			}
			s.Method = m
			l.assign(&s.Base)
			l.annotations(s.Annotations, s)
		case *ForEach:
			if s == nil {
				continue
			}
			s.Method = m
			l.assign(&s.Base)
			if s.Var != nil {
				s.Var.Method = m
				s.Var.ForEach = s
				l.assign(&s.Var.Base)
				l.annotations(s.Var.Annotations, s.Var)
			}
			l.body(m, s.Body)
		case *Call:
			if s == nil {
				continue
			}
			s.Method = m
			l.assign(&s.Base)
		}
	}
}

func (l *linker) annotations(as []*Annotation, target Node) {
	for _, a := range as {
		if a == nil {
			continue
		}
		a.Target = target
		l.assign(&a.Base)
	}
}
