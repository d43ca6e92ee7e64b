package diagfmt

import (
	"encoding/json"
	"io"

	"genmark/internal/diag"
	"genmark/internal/source"
)

// LocationJSON is a file position in structured output.
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location" msgpack:"location"`
	NewText  string       `json:"new_text" msgpack:"new_text"`
}

type FixJSON struct {
	ID    string        `json:"id,omitempty" msgpack:"id,omitempty"`
	Title string        `json:"title" msgpack:"title"`
	Edits []FixEditJSON `json:"edits,omitempty" msgpack:"edits,omitempty"`
}

// DiagnosticJSON is one problem in structured output.
type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" msgpack:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty" msgpack:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of json and msgpack output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = f.FormatPath(pathMode.mode(), fs.BaseDir())
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput builds the structured payload without serializing
// it. Problems keep their order.
func BuildDiagnosticsOutput(problems []diag.Problem, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(problems)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for i := range n {
		p := &problems[i]
		d := DiagnosticJSON{
			Severity: diag.SeverityLabel(p.Severity),
			Code:     p.Code.ID(),
			Message:  p.Message,
			Location: makeLocation(p.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(p.Notes) > 0 {
			d.Notes = make([]NoteJSON, len(p.Notes))
			for j, note := range p.Notes {
				d.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		if opts.IncludeFixes && len(p.Fixes) > 0 {
			d.Fixes = make([]FixJSON, len(p.Fixes))
			for j, fix := range p.Fixes {
				fj := FixJSON{ID: fix.ID, Title: fix.Title}
				for _, e := range fix.Edits {
					fj.Edits = append(fj.Edits, FixEditJSON{
						Location: makeLocation(e.Span, fs, opts.PathMode, opts.IncludePositions),
						NewText:  e.NewText,
					})
				}
				d.Fixes[j] = fj
			}
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes problems as one indented JSON document.
func JSON(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(problems, fs, opts))
}
