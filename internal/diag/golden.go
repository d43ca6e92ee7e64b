package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"genmark/internal/source"
)

type goldenLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGolden renders problems one per line, sorted by location, for golden
// files and the short CLI format:
//
//	error CTR2001 models/team.toml:14:9 Default constructor doesn't exist
func FormatGolden(problems []Problem, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(problems) == 0 {
		return ""
	}
	lines := make([]goldenLine, 0, len(problems))
	for i := range problems {
		lines = appendGolden(lines, &problems[i], fs, includeNotes)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Line, l.Column, l.Message)
	}
	return sb.String()
}

func appendGolden(out []goldenLine, p *Problem, fs *source.FileSet, includeNotes bool) []goldenLine {
	if loc, ok := resolveSpan(fs, p.Primary); ok {
		out = append(out, goldenLine{
			Severity: SeverityLabel(p.Severity),
			Code:     p.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(p.Message),
		})
	}
	if !includeNotes {
		return out
	}
	for _, note := range p.Notes {
		loc, ok := resolveSpan(fs, note.Span)
		if !ok {
			continue
		}
		out = append(out, goldenLine{
			Severity: "note",
			Code:     p.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(note.Msg),
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   strings.TrimPrefix(filepath.ToSlash(file.FormatPath("relative", fs.BaseDir())), "./"),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

// SeverityLabel is the lower-case label used by line-oriented output.
func SeverityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
