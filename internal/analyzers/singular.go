package analyzers

import (
	"genmark/internal/analyzer"
	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
	"genmark/internal/types"
)

// Singular rejects @Singular on a field whose type is not a collection or
// map the builder knows how to fill one element at a time.
type Singular struct{}

func (Singular) Name() string { return "singular" }

func (Singular) VerifyAnnotation(pass *analyzer.Pass, a *ast.Annotation) ([]diag.Problem, error) {
	var t types.Type
	switch n := a.Target.(type) {
	case *ast.Field:
		t = n.Type
	case *ast.Param:
		t = n.Type
	default:
		return nil, nil
	}
	if _, ok := ElementTypes(pass.Index, t); ok {
		return nil, nil
	}
	name, ok := types.QualifiedNameOf(pass.Index, t)
	if !ok {
		name = t.String()
	}
	return []diag.Problem{diag.NewError(diag.AnnSingularNotCollection, a, pass.Message(bundle.SingularNotCollection, name))}, nil
}

// ElementTypes returns what a singular builder method adds for t: the key
// and value of a map, or the element of an iterable.
func ElementTypes(idx types.Index, t types.Type) ([]types.Type, bool) {
	if t.Kind != types.KindNamed {
		return nil, false
	}
	switch {
	case types.IsSubtypeOf(idx, t, types.MapName):
		return []types.Type{
			types.ExtractElementType(idx, t, types.MapName, 0),
			types.ExtractElementType(idx, t, types.MapName, 1),
		}, true
	case types.IsSubtypeOf(idx, t, types.IterableName):
		return []types.Type{types.ExtractIterableElementType(idx, t)}, true
	}
	return nil, false
}
