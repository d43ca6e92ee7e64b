package diag

import (
	"testing"

	"genmark/internal/source"
)

type spanAnchor struct{ sp source.Span }

func (a *spanAnchor) Span() source.Span { return a.sp }
func (a *spanAnchor) String() string    { return a.sp.String() }

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/models/sample.toml", []byte("a\nb\n"), 0)

	first := &spanAnchor{source.Span{File: file, Start: 2, End: 3}}
	second := &spanAnchor{source.Span{File: file, Start: 0, End: 1}}
	problems := []Problem{
		NewWarning(AnnUnknownField, first, "another"),
		NewError(CtorDefaultMissing, second, "first line\nsecond").
			WithNote(source.Span{File: file, Start: 2, End: 3}, "note line"),
	}

	want := "error CTR2001 models/sample.toml:1:1 first line second\n" +
		"warning ANN3003 models/sample.toml:2:1 another\n" +
		"note CTR2001 models/sample.toml:2:1 note line"
	if got := FormatGolden(problems, fs, true); got != want {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if got := FormatGolden(nil, fs, true); got != "" {
		t.Errorf("empty input rendered %q", got)
	}
}
