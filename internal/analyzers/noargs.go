package analyzers

import (
	"genmark/internal/analyzer"
	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
)

// NoArgsConstructor reports a hand-written zero-argument constructor that
// would clash with the generated one.
type NoArgsConstructor struct{}

func (NoArgsConstructor) Name() string { return "noargs-constructor" }

func (NoArgsConstructor) VerifyAnnotation(pass *analyzer.Pass, a *ast.Annotation) ([]diag.Problem, error) {
	owner, ok := a.Target.(*ast.TypeDecl)
	if !ok {
		return nil, nil
	}
	for _, m := range owner.Constructors() {
		if len(m.Params) == 0 && !m.Synthesized {
			p := diag.NewError(diag.AnnNoArgsCtorExists, a, pass.Message(bundle.NoArgsConstructorExists)).
				WithNote(m.Span(), "existing constructor")
			return []diag.Problem{p}, nil
		}
	}
	return nil, nil
}
