package diag

// Reporter receives problems from checks and analyzers.
type Reporter interface {
	Report(p Problem)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(p Problem)

func (f ReporterFunc) Report(p Problem) { f(p) }

// ReportBuilder accumulates problem details before emitting to a Reporter.
type ReportBuilder struct {
	reporter Reporter
	problem  Problem
	emitted  bool
}

// NewReportBuilder constructs a builder bound to r.
func NewReportBuilder(r Reporter, sev Severity, code Code, a Anchor, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, problem: New(sev, code, a, msg)}
}

// ReportError is a shortcut for SevError problems.
func ReportError(r Reporter, code Code, a Anchor, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, a, msg)
}

// ReportWarning is a shortcut for SevWarning problems.
func ReportWarning(r Reporter, code Code, a Anchor, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, a, msg)
}

// ReportInfo is a shortcut for SevInfo problems.
func ReportInfo(r Reporter, code Code, a Anchor, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, a, msg)
}

func (b *ReportBuilder) WithNote(a Anchor, msg string) *ReportBuilder {
	if b == nil || a == nil {
		return b
	}
	b.problem = b.problem.WithNote(a.Span(), msg)
	return b
}

func (b *ReportBuilder) WithFix(id, title string, edits ...FixEdit) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.problem = b.problem.WithFix(id, title, edits...)
	return b
}

// Emit sends the problem to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.problem)
	}
	b.emitted = true
}

// Problem returns the accumulated problem without emitting.
func (b *ReportBuilder) Problem() Problem {
	if b == nil {
		return Problem{}
	}
	return b.problem
}

// BagReporter writes into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(p Problem) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(p)
}

// Collector keeps every reported problem in order.
type Collector struct {
	items []Problem
}

func (c *Collector) Report(p Problem) {
	c.items = append(c.items, p)
}

// Problems returns what was collected so far.
func (c *Collector) Problems() []Problem {
	return c.items
}
