package ast

import (
	"strings"
	"unicode"

	"genmark/internal/source"
	"genmark/internal/types"
)

// Stmt is a statement inside a method body.
type Stmt interface {
	Node
	stmtNode()
}

// LocalVar declares a local variable. Type holds the declared type as
// written; an inferred declaration carries the inference keyword there.
type LocalVar struct {
	Base
	Name        string
	Type        types.Type
	Init        *Expr // nil without initializer
	Annotations []*Annotation
	Method      *Method
}

func (*LocalVar) Kind() NodeKind     { return KindLocal }
func (*LocalVar) stmtNode()          {}
func (l *LocalVar) String() string { return "local " + l.Name }

// ForEach is an enhanced for loop. Its variable is a Param.
type ForEach struct {
	Base
	Var      *Param
	Iterable *Expr
	Body     []Stmt
	Method   *Method
}

func (*ForEach) Kind() NodeKind { return KindForEach }
func (*ForEach) stmtNode()      {}

func (f *ForEach) String() string {
	if f.Var == nil {
		return "foreach"
	}
	return "foreach " + f.Var.Name
}

// CalleeKind tells a keyword callee from a named one.
type CalleeKind uint8

const (
	CalleeName CalleeKind = iota
	CalleeThis
	CalleeSuper
)

// Call is a method-call expression statement. `this(...)` and `super(...)`
// are keyword calls; a method called "super" spelled as a name is not.
type Call struct {
	Base
	Callee CalleeKind
	Name   string // for CalleeName
	Args   []*Expr
	Method *Method
}

func (*Call) Kind() NodeKind { return KindCall }
func (*Call) stmtNode()      {}

// IsKeyword reports whether the callee is `this` or `super`.
func (c *Call) IsKeyword() bool {
	return c.Callee == CalleeThis || c.Callee == CalleeSuper
}

func (c *Call) CalleeText() string {
	switch c.Callee {
	case CalleeThis:
		return "this"
	case CalleeSuper:
		return "super"
	default:
		return c.Name
	}
}

func (c *Call) String() string {
	var sb strings.Builder
	sb.WriteString("call ")
	sb.WriteString(c.CalleeText())
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Text)
	}
	sb.WriteByte(')')
	return sb.String()
}

// ExprKind classifies the few expression shapes the checks care about.
type ExprKind uint8

const (
	ExprOther ExprKind = iota
	ExprNull
	ExprLiteral
	ExprIdent
	ExprArrayInit
)

// Expr is an expression kept as source text plus a coarse classification.
// Expressions are not walked.
type Expr struct {
	Kind ExprKind
	Text string
	Loc  source.Span
}

// ParseExpr classifies text.
func ParseExpr(text string) *Expr {
	t := strings.TrimSpace(text)
	e := &Expr{Text: t}
	switch {
	case t == "null":
		e.Kind = ExprNull
	case strings.HasPrefix(t, "{"):
		e.Kind = ExprArrayInit
	case t == "true" || t == "false" || isNumber(t) || isQuoted(t):
		e.Kind = ExprLiteral
	case isIdent(t):
		e.Kind = ExprIdent
	}
	return e
}

// Idents returns the identifiers the expression references as variables:
// names inside string or char literals and names selected after a dot are
// skipped.
func (e *Expr) Idents() []string {
	if e == nil {
		return nil
	}
	rs := []rune(e.Text)
	var out []string
	afterDot := false
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '"' || r == '\'':
			i++
			for i < len(rs) && rs[i] != r {
				if rs[i] == '\\' {
					i++
				}
				i++
			}
			i++
			afterDot = false
		case isIdentRune(r, true):
			j := i + 1
			for j < len(rs) && isIdentRune(rs[j], false) {
				j++
			}
			if !afterDot {
				out = append(out, string(rs[i:j]))
			}
			i = j
			afterDot = false
		case unicode.IsDigit(r):
			for i < len(rs) && (isIdentRune(rs[i], false) || rs[i] == '.') {
				i++
			}
			afterDot = false
		case r == '.':
			afterDot = true
			i++
		case unicode.IsSpace(r):
			i++
		default:
			afterDot = false
			i++
		}
	}
	return out
}

func isIdentRune(r rune, first bool) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || (!first && unicode.IsDigit(r))
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	s = strings.TrimPrefix(s, "-")
	if s == "" || !unicode.IsDigit(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !strings.ContainsRune(".xXabcdefABCDEFlLfFdD_", r) {
			return false
		}
	}
	return true
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'')
}
