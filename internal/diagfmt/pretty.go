package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"genmark/internal/diag"
	"genmark/internal/source"
)

type palette struct {
	err, warn, info, note, help, gutter, bold func(a ...any) string
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgGreen),
		help:   mk(color.FgMagenta),
		gutter: mk(color.FgBlue, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) func(a ...any) string {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders problems with the offending source line and a caret under
// the primary span. Problems are printed in the order given.
func Pretty(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for i := range problems {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeProblem(&sb, &problems[i], fs, opts, pal)
	}
	if opts.Summary {
		if len(problems) > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(renderSummary(problems, opts.Color))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeProblem(sb *strings.Builder, p *diag.Problem, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(p.Severity)
	fmt.Fprintf(sb, "%s: %s\n", sev(fmt.Sprintf("%s[%s]", diag.SeverityLabel(p.Severity), p.Code.ID())), pal.bold(p.Message))

	f := fs.Get(p.Primary.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(p.Primary)
	lineNo := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(sb, "%s%s %s:%d:%d\n", pad, pal.gutter("-->"), f.FormatPath(opts.PathMode.mode(), fs.BaseDir()), start.Line, start.Col)
	line := f.GetLine(start.Line)
	fmt.Fprintf(sb, "%s %s\n", pad, pal.gutter("|"))
	fmt.Fprintf(sb, "%s %s %s\n", pal.gutter(lineNo), pal.gutter("|"), line)
	fmt.Fprintf(sb, "%s %s %s%s\n", pad, pal.gutter("|"), caretIndent(line, start.Col), sev(carets(line, start, end)))

	if opts.ShowNotes {
		for _, n := range p.Notes {
			fmt.Fprintf(sb, "%s %s %s: %s%s\n", pad, pal.gutter("="), pal.note("note"), n.Msg, noteLocation(fs, n.Span, opts.PathMode))
		}
	}
	if opts.ShowFixes {
		for _, fix := range p.Fixes {
			fmt.Fprintf(sb, "%s %s %s: %s\n", pad, pal.gutter("="), pal.help("help"), fix.Title)
		}
	}
}

func noteLocation(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return ""
	}
	pos, _ := fs.Resolve(sp)
	return fmt.Sprintf(" (%s:%d:%d)", f.FormatPath(mode.mode(), fs.BaseDir()), pos.Line, pos.Col)
}

// caretIndent reproduces the display width of line before col, keeping tabs
// so the caret lines up in any terminal.
func caretIndent(line string, col uint32) string {
	prefix := line[:clampCol(line, col)]
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func carets(line string, start, end source.LineCol) string {
	from := clampCol(line, start.Col)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(line, end.Col)
	}
	n := 1
	if to > from {
		n = max(1, runewidth.StringWidth(line[from:to]))
	}
	return strings.Repeat("^", n)
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

// Summary is the plain footer text, e.g. "2 errors, 1 warning".
func Summary(problems []diag.Problem) string {
	var errs, warns, infos int
	for i := range problems {
		switch problems[i].Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	var parts []string
	for _, c := range []struct {
		n    int
		noun string
	}{{errs, "error"}, {warns, "warning"}, {infos, "info"}} {
		if c.n == 0 {
			continue
		}
		noun := c.noun
		if c.n > 1 && noun != "info" {
			noun += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", c.n, noun))
	}
	if len(parts) == 0 {
		return "no problems"
	}
	return strings.Join(parts, ", ")
}

func renderSummary(problems []diag.Problem, colored bool) string {
	text := Summary(problems)
	if !colored {
		return text
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	for i := range problems {
		if problems[i].Severity == diag.SevError {
			style = style.Foreground(lipgloss.Color("1"))
			break
		}
		if problems[i].Severity == diag.SevWarning {
			style = style.Foreground(lipgloss.Color("3"))
		}
	}
	return style.Render(text)
}
