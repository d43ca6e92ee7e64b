package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"genmark/internal/ast"
	"genmark/internal/diag"
	"genmark/internal/project/dag"
	"genmark/internal/source"
	"genmark/internal/types"
)

// Model is a loaded declaration model file.
type Model struct {
	File     *ast.File
	Source   *source.File
	Decls    *types.MapIndex
	Problems []diag.Problem // structural defects found while loading
}

// Index resolves model declarations first, then the JDK stubs.
func (m *Model) Index() types.Index {
	return types.Chain{m.Decls, types.JDK()}
}

type modelSpec struct {
	Types []typeSpec `toml:"types"`
}

type typeSpec struct {
	Name        string           `toml:"name"`
	TypeParams  []string         `toml:"type_params"`
	Extends     string           `toml:"extends"`
	Implements  []string         `toml:"implements"`
	Annotations []annotationSpec `toml:"annotations"`
	Fields      []fieldSpec      `toml:"fields"`
	Methods     []methodSpec     `toml:"methods"`
}

type annotationSpec struct {
	Name  string         `toml:"name"`
	Attrs map[string]any `toml:"attrs"`
}

type fieldSpec struct {
	Name        string           `toml:"name"`
	Type        string           `toml:"type"`
	Annotations []annotationSpec `toml:"annotations"`
}

type paramSpec struct {
	Name        string           `toml:"name"`
	Type        string           `toml:"type"`
	Annotations []annotationSpec `toml:"annotations"`
}

type methodSpec struct {
	Name        string           `toml:"name"`
	Constructor bool             `toml:"constructor"`
	Synthesized bool             `toml:"synthesized"`
	Params      []paramSpec      `toml:"params"`
	Returns     string           `toml:"returns"`
	Annotations []annotationSpec `toml:"annotations"`
	Body        []stmtSpec       `toml:"body"`
}

// stmtSpec is one of: a call (`call`), a local declaration (`local`) or a
// for-each loop (`foreach`).
type stmtSpec struct {
	Call        string           `toml:"call"`
	Args        []string         `toml:"args"`
	Local       string           `toml:"local"`
	ForEach     string           `toml:"foreach"`
	Type        string           `toml:"type"`
	Init        string           `toml:"init"`
	Iterable    string           `toml:"iterable"`
	Annotations []annotationSpec `toml:"annotations"`
	Body        []stmtSpec       `toml:"body"`
}

// LoadModel reads path into fs and builds its model.
func LoadModel(fs *source.FileSet, path string) (*Model, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return ParseModel(fs.Get(id))
}

// ParseModel builds the declaration tree of f. Syntax errors fail the load;
// structural defects become Problems and the offending element is skipped
// or degraded.
func ParseModel(f *source.File) (*Model, error) {
	var spec modelSpec
	meta, err := toml.Decode(string(f.Content), &spec)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", f.Path, err)
	}

	b := &builder{file: &ast.File{Path: f.Path}, seen: make(map[string]*ast.TypeDecl)}
	for i := range spec.Types {
		b.typeDecl(&spec.Types[i])
	}
	ast.Link(b.file)
	locate(f, b.file)

	m := &Model{File: b.file, Source: f, Decls: types.NewMapIndex()}
	for _, td := range b.file.Types {
		m.Decls.Add(td.Decl())
	}

	var c diag.Collector
	for _, key := range meta.Undecoded() {
		c.Report(diag.Problem{
			Severity: diag.SevWarning,
			Code:     diag.PrjUnknownKey,
			Message:  fmt.Sprintf("unknown key %q", key.String()),
			Primary:  source.Span{File: f.ID},
		})
	}
	for _, pend := range b.pending {
		c.Report(diag.New(pend.sev, pend.code, pend.anchor, pend.msg))
	}
	checkHierarchy(b.file, &c)
	m.Problems = c.Problems()
	return m, nil
}

func checkHierarchy(f *ast.File, r diag.Reporter) {
	nodes := make([]dag.TypeNode, 0, len(f.Types))
	for _, td := range f.Types {
		n := dag.TypeNode{Name: td.Name, Anchor: td}
		if td.Extends.IsValid() {
			n.Supers = append(n.Supers, td.Extends.Name)
		}
		for _, it := range td.Implements {
			n.Supers = append(n.Supers, it.Name)
		}
		nodes = append(nodes, n)
	}
	idx := dag.BuildIndex(nodes)
	g, slots := dag.BuildGraph(idx, nodes, r)
	dag.ReportCycles(idx, slots, dag.ToposortKahn(g), r)
}

type pendingProblem struct {
	sev    diag.Severity
	code   diag.Code
	anchor diag.Anchor
	msg    string
}

type builder struct {
	file    *ast.File
	seen    map[string]*ast.TypeDecl
	pending []pendingProblem
}

func (b *builder) errorf(code diag.Code, anchor diag.Anchor, format string, args ...any) {
	b.pending = append(b.pending, pendingProblem{sev: diag.SevError, code: code, anchor: anchor, msg: fmt.Sprintf(format, args...)})
}

func (b *builder) typeDecl(s *typeSpec) {
	name := strings.TrimSpace(s.Name)
	td := &ast.TypeDecl{Name: name, TypeParams: s.TypeParams}
	if name == "" {
		b.errorf(diag.PrjInvalidModel, b.file, "type declaration without a name")
		return
	}
	if prev, dup := b.seen[name]; dup {
		b.errorf(diag.PrjDuplicateType, prev, "type %s is declared more than once; later declarations are ignored", name)
		return
	}
	b.seen[name] = td
	b.file.Types = append(b.file.Types, td)

	if s.Extends != "" {
		td.Extends = b.parseType(td, s.Extends, td.TypeParams)
	}
	for _, it := range s.Implements {
		td.Implements = append(td.Implements, b.parseType(td, it, td.TypeParams))
	}
	td.Annotations = b.annotations(s.Annotations)
	for i := range s.Fields {
		fs := &s.Fields[i]
		fd := &ast.Field{Name: fs.Name}
		fd.Type = b.requiredType(fd, fs.Type, td.TypeParams)
		fd.Annotations = b.annotations(fs.Annotations)
		td.Fields = append(td.Fields, fd)
	}
	for i := range s.Methods {
		if m := b.method(td, &s.Methods[i]); m != nil {
			td.Methods = append(td.Methods, m)
		}
	}
}

func (b *builder) method(td *ast.TypeDecl, s *methodSpec) *ast.Method {
	m := &ast.Method{Name: s.Name, Constructor: s.Constructor, Synthesized: s.Synthesized}
	if m.Constructor {
		m.Name = ast.CtorName
	} else if m.Name == "" {
		b.errorf(diag.PrjInvalidModel, td, "method of %s without a name", td.Name)
		return nil
	}
	m.Annotations = b.annotations(s.Annotations)
	for i := range s.Params {
		ps := &s.Params[i]
		p := &ast.Param{Name: ps.Name}
		p.Type = b.requiredType(p, ps.Type, td.TypeParams)
		p.Annotations = b.annotations(ps.Annotations)
		m.Params = append(m.Params, p)
	}
	m.Returns = types.Void()
	if s.Returns != "" {
		m.Returns = b.parseType(m, s.Returns, td.TypeParams)
	}
	m.Body = b.body(td, m, s.Body)
	return m
}

func (b *builder) body(td *ast.TypeDecl, m *ast.Method, specs []stmtSpec) []ast.Stmt {
	var out []ast.Stmt
	for i := range specs {
		s := &specs[i]
		kinds := 0
		for _, v := range []string{s.Call, s.Local, s.ForEach} {
			if v != "" {
				kinds++
			}
		}
		if kinds != 1 {
			b.errorf(diag.PrjInvalidModel, m, "statement %d of %s must set exactly one of call, local or foreach", i+1, m)
			continue
		}
		switch {
		case s.Call != "":
			c := &ast.Call{}
			switch s.Call {
			case "this":
				c.Callee = ast.CalleeThis
			case "super":
				c.Callee = ast.CalleeSuper
			default:
				c.Callee, c.Name = ast.CalleeName, s.Call
			}
			for _, a := range s.Args {
				c.Args = append(c.Args, ast.ParseExpr(a))
			}
			out = append(out, c)
		case s.Local != "":
			l := &ast.LocalVar{Name: s.Local}
			l.Type = b.requiredType(l, s.Type, td.TypeParams)
			if s.Init != "" {
				l.Init = ast.ParseExpr(s.Init)
			}
			l.Annotations = b.annotations(s.Annotations)
			out = append(out, l)
		default:
			v := &ast.Param{Name: s.ForEach}
			v.Type = b.requiredType(v, s.Type, td.TypeParams)
			v.Annotations = b.annotations(s.Annotations)
			out = append(out, &ast.ForEach{
				Var:      v,
				Iterable: ast.ParseExpr(s.Iterable),
				Body:     b.body(td, m, s.Body),
			})
		}
	}
	return out
}

func (b *builder) requiredType(n diag.Anchor, text string, scope []string) types.Type {
	if strings.TrimSpace(text) == "" {
		b.errorf(diag.PrjInvalidModel, n, "%s has no type", n)
		return types.Top()
	}
	return b.parseType(n, text, scope)
}

// parseType degrades malformed types to the top type.
func (b *builder) parseType(n diag.Anchor, text string, scope []string) types.Type {
	t, err := types.Parse(text, scope...)
	if err != nil {
		b.errorf(diag.PrjBadTypeSyntax, n, "malformed type %q: %v", text, err)
		return types.Top()
	}
	return t
}

func (b *builder) annotations(specs []annotationSpec) []*ast.Annotation {
	var out []*ast.Annotation
	for _, s := range specs {
		name := strings.TrimPrefix(strings.TrimSpace(s.Name), "@")
		if name == "" {
			b.errorf(diag.PrjInvalidModel, b.file, "annotation without a name")
			continue
		}
		a := &ast.Annotation{Name: name}
		keys := make([]string, 0, len(s.Attrs))
		for k := range s.Attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			a.Attrs = append(a.Attrs, ast.Attr{Name: k, Values: attrValues(s.Attrs[k])})
		}
		out = append(out, a)
	}
	return out
}

func attrValues(v any) []string {
	switch v := v.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case []string:
		return v
	default:
		return []string{fmt.Sprint(v)}
	}
}
