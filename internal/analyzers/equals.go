package analyzers

import (
	"genmark/internal/analyzer"
	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
)

// EqualsAndHashCode warns when generation would be skipped or misconfigured.
type EqualsAndHashCode struct{}

func (EqualsAndHashCode) Name() string { return "equals-hashcode" }

func (EqualsAndHashCode) VerifyAnnotation(pass *analyzer.Pass, a *ast.Annotation) ([]diag.Problem, error) {
	owner, ok := a.Target.(*ast.TypeDecl)
	if !ok {
		return nil, nil
	}
	var out []diag.Problem

	hasEquals := hasMethod(owner, "equals", 1)
	hasHashCode := hasMethod(owner, "hashCode", 0)
	switch {
	case hasEquals && hasHashCode:
		out = append(out, diag.NewWarning(diag.AnnEqualsHashCodeExists, a, pass.Message(bundle.EqualsHashCodeBothExist)))
	case hasEquals:
		out = append(out, diag.NewWarning(diag.AnnEqualsHashCodeExists, a, pass.Message(bundle.EqualsHashCodeOneExists, "equals")))
	case hasHashCode:
		out = append(out, diag.NewWarning(diag.AnnEqualsHashCodeExists, a, pass.Message(bundle.EqualsHashCodeOneExists, "hashCode")))
	}

	of, hasOf := a.Attr("of")
	exclude, hasExclude := a.Attr("exclude")
	if hasOf && hasExclude {
		p := diag.NewWarning(diag.AnnOfAndExclude, a, pass.Message(bundle.EqualsHashCodeOfExclude))
		var edits []diag.FixEdit
		if at := attrNamed(a, "exclude"); at != nil && !at.Removal.Empty() {
			edits = append(edits, diag.FixEdit{Span: at.Removal})
		}
		out = append(out, p.WithFix("remove.exclude", "Remove 'exclude' parameter", edits...))
	}
	for _, names := range [][]string{of, exclude} {
		for _, name := range names {
			if _, ok := owner.FieldNamed(name); !ok {
				out = append(out, diag.NewWarning(diag.AnnUnknownField, a, pass.Message(bundle.UnknownField, name)))
			}
		}
	}
	return out, nil
}

func hasMethod(t *ast.TypeDecl, name string, arity int) bool {
	for _, m := range t.MethodsNamed(name) {
		if len(m.Params) == arity && !m.Synthesized {
			return true
		}
	}
	return false
}

func attrNamed(a *ast.Annotation, name string) *ast.Attr {
	for i := range a.Attrs {
		if a.Attrs[i].Name == name {
			return &a.Attrs[i]
		}
	}
	return nil
}
