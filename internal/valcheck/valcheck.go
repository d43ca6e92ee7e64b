// Package valcheck validates declarations whose type is inferred from their
// initializer (`val x = ...`).
package valcheck

import (
	"slices"
	"strings"

	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
)

// DefaultKeyword is the placeholder type name that requests inference.
const DefaultKeyword = "val"

// keywordPackage qualifies a bare keyword.
const keywordPackage = "lombok"

// Checker is the default inference-validation policy. The zero value uses
// DefaultKeyword and the default bundle.
type Checker struct {
	Keyword  string
	Messages *bundle.Bundle
}

// New returns a checker for keyword. An empty keyword means DefaultKeyword.
func New(keyword string, messages *bundle.Bundle) *Checker {
	return &Checker{Keyword: keyword, Messages: messages}
}

func (c *Checker) keyword() string {
	if c == nil || c.Keyword == "" {
		return DefaultKeyword
	}
	return c.Keyword
}

func (c *Checker) message(key string, args ...any) string {
	if c == nil || c.Messages == nil {
		return bundle.Message(key, args...)
	}
	return c.Messages.Message(key, args...)
}

// Infers reports whether typeName names the inference placeholder: the bare
// keyword or its qualified form ("val" and "lombok.val" by default). Other
// packages declaring a type of the same simple name do not count.
func (c *Checker) Infers(typeName string) bool {
	kw := c.keyword()
	short := c.shortKeyword()
	qualified := kw
	if kw == short {
		qualified = keywordPackage + "." + kw
	}
	return typeName == short || typeName == qualified
}

func (c *Checker) shortKeyword() string {
	kw := c.keyword()
	if i := strings.LastIndexByte(kw, '.'); i >= 0 {
		return kw[i+1:]
	}
	return kw
}

// CheckVariable validates an inferred local variable. Locals with an
// explicit type yield nothing.
func (c *Checker) CheckVariable(l *ast.LocalVar) []diag.Problem {
	if l == nil || !l.Type.IsRaw() || !c.Infers(l.Type.Name) {
		return nil
	}
	kw := c.shortKeyword()
	switch {
	case l.Init == nil || l.Init.Text == "":
		return []diag.Problem{diag.NewError(diag.ValNoInitializer, l, c.message(bundle.ValNoInitializer, kw))}
	case l.Init.Kind == ast.ExprNull:
		return []diag.Problem{diag.NewError(diag.ValNullInitializer, l, c.message(bundle.ValNullInitializer))}
	case l.Init.Kind == ast.ExprArrayInit:
		return []diag.Problem{diag.NewError(diag.ValArrayInitializer, l, c.message(bundle.ValArrayInitializer, kw))}
	case slices.Contains(l.Init.Idents(), l.Name):
		return []diag.Problem{diag.NewError(diag.ValSelfReference, l, c.message(bundle.ValSelfReference, kw, l.Name))}
	}
	return nil
}

// CheckParameter validates an inferred parameter. Only the variable of a
// for-each header may infer its type.
func (c *Checker) CheckParameter(p *ast.Param) []diag.Problem {
	if p == nil || !p.Type.IsRaw() || !c.Infers(p.Type.Name) {
		return nil
	}
	if p.ForEach != nil {
		return nil
	}
	return []diag.Problem{diag.NewError(diag.ValParamNotForEach, p, c.message(bundle.ValParamNotForEach, c.shortKeyword()))}
}
