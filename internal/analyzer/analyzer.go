// Package analyzer defines the per-annotation Analyzer capability and the
// Registry that maps annotation names to analyzers.
package analyzer

import (
	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
	"genmark/internal/types"
)

// Pass is the read-only context handed to analyzers.
type Pass struct {
	Index    types.Index
	Messages *bundle.Bundle
}

// Message formats a bundle key, falling back to the default bundle.
func (p *Pass) Message(key string, args ...any) string {
	if p == nil || p.Messages == nil {
		return bundle.Message(key, args...)
	}
	return p.Messages.Message(key, args...)
}

// Analyzer checks one annotation occurrence. Implementations must not keep
// per-call state: one instance serves many annotations, possibly from
// concurrent passes. Problems without an anchor are attached to the
// annotation by the caller. A returned error discards that call's problems.
type Analyzer interface {
	Name() string
	VerifyAnnotation(pass *Pass, a *ast.Annotation) ([]diag.Problem, error)
}

// Func adapts a function to Analyzer.
type Func struct {
	ID string
	Fn func(pass *Pass, a *ast.Annotation) ([]diag.Problem, error)
}

func (f Func) Name() string { return f.ID }

func (f Func) VerifyAnnotation(pass *Pass, a *ast.Annotation) ([]diag.Problem, error) {
	if f.Fn == nil {
		return nil, nil
	}
	return f.Fn(pass, a)
}
