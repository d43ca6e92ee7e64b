package diag

import (
	"testing"

	"genmark/internal/source"
)

func TestDedupReporterKeysOnAnchorIdentity(t *testing.T) {
	sp := source.Span{File: 0, Start: 5, End: 9}
	a, b := &spanAnchor{sp}, &spanAnchor{sp}

	var c Collector
	r := NewDedupReporter(&c)
	r.Report(NewError(CtorDefaultMissing, a, "m"))
	r.Report(NewError(CtorDefaultMissing, a, "m"))
	r.Report(NewError(AnnUnknownField, a, "m")) // same key, different code
	r.Report(NewWarning(CtorDefaultMissing, a, "m"))
	r.Report(NewError(CtorDefaultMissing, a, "other"))
	r.Report(NewError(CtorDefaultMissing, b, "m")) // equal span, distinct node

	if got := len(c.Problems()); got != 4 {
		t.Fatalf("forwarded %d problems, want 4", got)
	}
	r.Reset()
	r.Report(NewError(CtorDefaultMissing, a, "m"))
	if got := len(c.Problems()); got != 5 {
		t.Errorf("after Reset forwarded %d problems, want 5", got)
	}
}

func TestDedupWithoutAnchorUsesSpan(t *testing.T) {
	p1 := Problem{Severity: SevError, Message: "x", Primary: source.Span{Start: 1, End: 2}}
	p2 := p1
	p3 := Problem{Severity: SevError, Message: "x", Primary: source.Span{Start: 3, End: 4}}
	if got := Dedup([]Problem{p1, p2, p3}); len(got) != 2 {
		t.Errorf("Dedup kept %d problems, want 2", len(got))
	}
}

func TestBag(t *testing.T) {
	b := NewBag(2)
	an := &spanAnchor{source.Span{Start: 4, End: 5}}
	if !b.Add(NewWarning(AnnUnknownField, an, "w")) || !b.Add(NewWarning(AnnUnknownField, an, "w")) {
		t.Fatalf("Add within capacity failed")
	}
	if b.Add(NewError(CtorDefaultMissing, an, "e")) {
		t.Fatalf("Add beyond capacity succeeded")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Errorf("HasErrors/HasWarnings wrong")
	}
	b.Dedup()
	if b.Len() != 1 {
		t.Errorf("Dedup left %d", b.Len())
	}

	other := NewBag(3)
	other.Add(NewError(CtorDefaultMissing, &spanAnchor{source.Span{Start: 0, End: 1}}, "e"))
	other.Add(infoAt(an))
	b.Merge(other)
	if b.Len() != 3 || b.Cap() < 3 {
		t.Fatalf("Merge: len %d cap %d", b.Len(), b.Cap())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != CtorDefaultMissing || items[1].Severity != SevWarning || items[2].Severity != SevInfo {
		t.Errorf("Sort order = %v %v %v", items[0].Severity, items[1].Severity, items[2].Severity)
	}

	b.PromoteWarnings()
	if b.Items()[1].Severity != SevError {
		t.Errorf("PromoteWarnings left %v", b.Items()[1].Severity)
	}
	b.Filter(func(p Problem) bool { return p.Severity != SevInfo })
	if b.Len() != 2 {
		t.Errorf("Filter left %d", b.Len())
	}
}

func infoAt(a Anchor) Problem {
	return New(SevInfo, AnnInfo, a, "info")
}

func TestNewBagClamps(t *testing.T) {
	if NewBag(-3).Cap() != 0 {
		t.Errorf("negative capacity not clamped to zero")
	}
	if NewBag(1<<20).Cap() != ^uint16(0) {
		t.Errorf("large capacity not clamped")
	}
}

func TestReportBuilder(t *testing.T) {
	var c Collector
	an := &spanAnchor{source.Span{Start: 1, End: 3}}
	b := ReportError(&c, CtorDefaultMissing, an, "msg").
		WithNote(an, "here").
		WithFix("add.ctor", "Add constructor")
	b.Emit()
	b.Emit()
	got := c.Problems()
	if len(got) != 1 {
		t.Fatalf("emitted %d times", len(got))
	}
	p := got[0]
	if p.Anchor != Anchor(an) || p.Primary != an.sp || len(p.Notes) != 1 || len(p.Fixes) != 1 || p.Fixes[0].ID != "add.ctor" {
		t.Errorf("built problem = %+v", p)
	}
}

func TestAnchoredAt(t *testing.T) {
	an := &spanAnchor{source.Span{Start: 7, End: 8}}
	p := Problem{Message: "m"}.AnchoredAt(an)
	if p.Anchor != Anchor(an) || p.Primary != an.sp {
		t.Errorf("AnchoredAt = %+v", p)
	}
	other := &spanAnchor{source.Span{Start: 1, End: 2}}
	if q := p.AnchoredAt(other); q.Anchor != Anchor(an) {
		t.Errorf("AnchoredAt replaced an existing anchor")
	}
}

func TestReanchoredAt(t *testing.T) {
	an := &spanAnchor{source.Span{Start: 10, End: 30}}
	other := &spanAnchor{source.Span{Start: 100, End: 110}}

	inside := Problem{Message: "m", Anchor: other, Primary: source.Span{Start: 12, End: 14}}.ReanchoredAt(an)
	if inside.Anchor != Anchor(an) || inside.Primary != (source.Span{Start: 12, End: 14}) {
		t.Errorf("inner primary not kept: %+v", inside)
	}
	outside := Problem{Message: "m", Anchor: other, Primary: other.sp}.ReanchoredAt(an)
	if outside.Anchor != Anchor(an) || outside.Primary != an.sp {
		t.Errorf("foreign primary kept: %+v", outside)
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"error": SevError, "Warning": SevWarning, " info ": SevInfo} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Errorf("ParseSeverity(fatal) succeeded")
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		ValNoInitializer:   "VAL1001",
		CtorDefaultMissing: "CTR2001",
		AnnUnknownField:    "ANN3003",
		PrjInvalidModel:    "PRJ5001",
		UnknownCode:        "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%s.ID() = %q, want %q", c, got, want)
		}
	}
	if Code(9999).Title() != "Unknown problem" {
		t.Errorf("unknown code title")
	}
}
