// Package inspect runs the diagnostic pass over a declaration tree: it walks
// the tree in document order, dispatches annotations to their analyzers,
// validates inferred declarations and checks constructor delegation.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"genmark/internal/analyzer"
	"genmark/internal/ast"
	"genmark/internal/bundle"
	"genmark/internal/diag"
	"genmark/internal/trace"
	"genmark/internal/types"
)

// ErrAnalyzerPanic wraps a panic recovered from VerifyAnnotation.
var ErrAnalyzerPanic = errors.New("analyzer panicked")

// Registry yields the analyzers registered for an annotation name, in
// registration order. *analyzer.Registry implements it.
type Registry interface {
	AnalyzersFor(annotation string) []analyzer.Analyzer
}

// Policy validates declarations whose type is inferred.
type Policy interface {
	CheckVariable(l *ast.LocalVar) []diag.Problem
	CheckParameter(p *ast.Param) []diag.Problem
}

// Config wires an Engine to its collaborators. Every field is optional.
type Config struct {
	Registry   Registry
	Index      types.Index
	Policy     Policy
	Resolver   Resolver   // nil: a DeclResolver over the walked file
	Provenance Provenance // nil: MarkerProvenance
	Messages   *bundle.Bundle
}

// Engine holds read-only collaborators shared by any number of passes.
type Engine struct {
	cfg      Config
	analysis *analyzer.Pass
}

// New creates an engine.
func New(cfg Config) *Engine {
	if cfg.Index == nil {
		cfg.Index = types.JDK()
	}
	if cfg.Provenance == nil {
		cfg.Provenance = MarkerProvenance
	}
	if cfg.Messages == nil {
		cfg.Messages = bundle.Default()
	}
	return &Engine{
		cfg:      cfg,
		analysis: &analyzer.Pass{Index: cfg.Index, Messages: cfg.Messages},
	}
}

// Failure records an analyzer call whose problems were discarded.
type Failure struct {
	Analyzer   string
	Annotation *ast.Annotation
	Err        error
}

// Stats counts what one pass did.
type Stats struct {
	Visited       int
	Annotations   int
	AnalyzerCalls int
	Duplicates    int
	Ambiguous     int
}

// Result is the outcome of a completed pass.
type Result struct {
	Problems []diag.Problem
	Failures []Failure
	Stats    Stats
	State    State
}

// Run performs a pass over root and returns its problems in document order.
func (e *Engine) Run(root ast.Node) []diag.Problem {
	res, err := e.RunContext(context.Background(), root)
	if err != nil {
		return nil
	}
	return res.Problems
}

// RunContext performs a pass over root. The only error is ctx's: a
// cancelled pass is abandoned between two visits and yields no result.
func (e *Engine) RunContext(ctx context.Context, root ast.Node) (*Result, error) {
	p := &pass{
		engine: e,
		ctx:    ctx,
		tracer: trace.FromContext(ctx),
	}
	p.resolver = e.cfg.Resolver
	if p.resolver == nil {
		p.resolver = resolverFor(root)
	}
	p.dedup = diag.NewDedupReporter(diag.ReporterFunc(p.emit))

	p.span = trace.Begin(p.tracer, trace.ScopePass, "inspect", trace.CurrentSpan(ctx))
	p.advance(StateWalking)
	ast.Inspect(root, p.visit)
	if p.err != nil {
		p.span.WithExtra("state", p.state.String()).End("abandoned")
		return nil, p.err
	}

	p.advance(StateAggregating)
	problems := diag.Dedup(p.out)
	p.stats.Duplicates += len(p.out) - len(problems)

	p.advance(StateDone)
	p.span.WithExtra("problems", strconv.Itoa(len(problems))).
		WithExtra("failures", strconv.Itoa(len(p.failures))).
		End("")
	return &Result{
		Problems: problems,
		Failures: p.failures,
		Stats:    p.stats,
		State:    p.state,
	}, nil
}

// resolverFor indexes the file enclosing root so that delegation targets
// declared next to it resolve.
func resolverFor(root ast.Node) Resolver {
	r := NewDeclResolver()
	var owner *ast.TypeDecl
	switch n := root.(type) {
	case *ast.File:
		r.AddFile(n)
	case *ast.TypeDecl:
		owner = n
	case *ast.Method:
		owner = n.Owner
	}
	if owner != nil {
		if owner.File != nil {
			r.AddFile(owner.File)
		} else {
			r.Add(owner)
		}
	}
	return r
}

type pass struct {
	engine   *Engine
	ctx      context.Context
	tracer   trace.Tracer
	span     *trace.Span
	resolver Resolver
	dedup    *diag.DedupReporter

	state    State
	out      []diag.Problem
	failures []Failure
	stats    Stats
	err      error
}

func (p *pass) emit(pr diag.Problem) {
	p.out = append(p.out, pr)
}

func (p *pass) visit(n ast.Node) bool {
	if p.err != nil {
		return false
	}
	if err := p.ctx.Err(); err != nil {
		p.err = err
		return false
	}
	p.stats.Visited++
	switch n := n.(type) {
	case *ast.LocalVar:
		if pol := p.engine.cfg.Policy; pol != nil {
			p.report(n, pol.CheckVariable(n))
		}
	case *ast.Param:
		if pol := p.engine.cfg.Policy; pol != nil {
			p.report(n, pol.CheckParameter(n))
		}
	case *ast.Annotation:
		p.annotation(n)
	case *ast.Call:
		p.delegation(n)
	}
	return true
}

// report forwards the problems of one node, deduplicated among themselves.
// Every problem is anchored at the node it was reported for.
func (p *pass) report(anchor diag.Anchor, problems []diag.Problem) {
	if len(problems) == 0 {
		return
	}
	p.dedup.Reset()
	for _, pr := range problems {
		p.dedup.Report(pr.ReanchoredAt(anchor))
	}
}

func (p *pass) annotation(a *ast.Annotation) {
	p.stats.Annotations++
	reg := p.engine.cfg.Registry
	if reg == nil {
		return
	}
	analyzers := reg.AnalyzersFor(a.Name)
	if len(analyzers) == 0 {
		return
	}
	before := len(p.out)
	reported := 0
	p.dedup.Reset()
	for _, az := range analyzers {
		p.stats.AnalyzerCalls++
		problems, err := p.verify(az, a)
		if err != nil {
			p.fail(az, a, err)
			continue
		}
		for _, pr := range problems {
			reported++
			p.dedup.Report(pr.ReanchoredAt(a))
		}
	}
	p.stats.Duplicates += reported - (len(p.out) - before)
}

func (p *pass) verify(az analyzer.Analyzer, a *ast.Annotation) (problems []diag.Problem, err error) {
	defer func() {
		if r := recover(); r != nil {
			problems = nil
			err = fmt.Errorf("%w: %v", ErrAnalyzerPanic, r)
		}
	}()
	return az.VerifyAnnotation(p.engine.analysis, a)
}

func (p *pass) fail(az analyzer.Analyzer, a *ast.Annotation, err error) {
	p.failures = append(p.failures, Failure{Analyzer: az.Name(), Annotation: a, Err: err})
	trace.Point(p.tracer, trace.ScopeNode, "analyzer.failure", p.span.ID(), err.Error(), map[string]string{
		"analyzer":   az.Name(),
		"annotation": a.Name,
		"at":         a.Span().String(),
	})
}

// delegation flags `this()` / `super()` bound to a generated constructor
// that takes parameters.
func (p *pass) delegation(c *ast.Call) {
	if len(c.Args) != 0 || !c.IsKeyword() {
		return
	}
	candidates := p.resolver.ResolveCall(c)
	switch len(candidates) {
	case 0:
		return
	case 1:
	default:
		p.stats.Ambiguous++
		trace.Point(p.tracer, trace.ScopeNode, "delegation.ambiguous", p.span.ID(), c.String(), map[string]string{
			"candidates": strconv.Itoa(len(candidates)),
		})
		return
	}
	target := candidates[0]
	if target == nil || !target.Constructor || len(target.Params) == 0 {
		return
	}
	if !p.engine.cfg.Provenance.IsSynthesized(target) {
		return
	}
	msg := p.engine.cfg.Messages.Message(bundle.DefaultConstructorMissing)
	p.report(c, []diag.Problem{diag.NewError(diag.CtorDefaultMissing, c, msg)})
}
