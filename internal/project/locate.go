package project

import (
	"bytes"
	"strconv"

	"fortio.org/safecast"

	"genmark/internal/ast"
	"genmark/internal/source"
)

// locator assigns spans by scanning the model text forward, in walk order,
// for the `key = value` pair that introduced each node. A pair not found
// ahead of the cursor is searched again from the start of the enclosing
// type.
type locator struct {
	f      *source.File
	cursor uint32
	floor  uint32
}

func locate(f *source.File, root *ast.File) {
	l := &locator{f: f}
	root.Loc = source.Span{File: f.ID}
	ast.Inspect(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.TypeDecl:
			n.Loc = l.find("name", n.Name)
			l.floor = n.Loc.Start
		case *ast.Field:
			n.Loc = l.find("name", n.Name)
		case *ast.Method:
			if n.Constructor {
				n.Loc = l.findRaw("constructor", "true")
			} else {
				n.Loc = l.find("name", n.Name)
			}
		case *ast.Param:
			if n.ForEach != nil {
				n.Loc = n.ForEach.Loc
			} else {
				n.Loc = l.find("name", n.Name)
			}
		case *ast.LocalVar:
			n.Loc = l.find("local", n.Name)
			if n.Init != nil {
				n.Init.Loc = l.find("init", n.Init.Text)
			}
		case *ast.ForEach:
			if n.Var != nil {
				n.Loc = l.find("foreach", n.Var.Name)
			}
		case *ast.Call:
			n.Loc = l.find("call", n.CalleeText())
		case *ast.Annotation:
			n.Loc = l.find("name", n.Name)
			locateAttrs(l.f, n)
		}
		return true
	})
}

func (l *locator) find(key, value string) source.Span {
	return l.findRaw(key, strconv.Quote(value))
}

func (l *locator) findRaw(key, literal string) source.Span {
	if sp, ok := l.scan(key, literal, l.cursor); ok {
		l.cursor = sp.End
		return sp
	}
	if sp, ok := l.scan(key, literal, l.floor); ok {
		return sp
	}
	return source.Span{File: l.f.ID, Start: l.floor, End: l.floor}
}

func (l *locator) scan(key, literal string, from uint32) (source.Span, bool) {
	for {
		sp, ok := l.f.Locate(literal, from)
		if !ok {
			return sp, false
		}
		if keyBefore(l.f.Content[:sp.Start], key) {
			return sp, true
		}
		from = sp.End
	}
}

// keyBefore reports whether text ends with `key =`, ignoring blanks.
func keyBefore(text []byte, key string) bool {
	text = bytes.TrimRight(text, " \t")
	if !bytes.HasSuffix(text, []byte("=")) {
		return false
	}
	text = bytes.TrimRight(text[:len(text)-1], " \t")
	return bytes.HasSuffix(text, []byte(key))
}

// locateAttrs assigns spans to the attributes of a, which are expected in an
// `attrs = { ... }` inline table directly after the annotation name. Other
// layouts leave the spans empty.
func locateAttrs(f *source.File, a *ast.Annotation) {
	if len(a.Attrs) == 0 || a.Loc.Empty() {
		return
	}
	text := f.Content
	i := skipSet(text, int(a.Loc.End), " \t,")
	if !bytes.HasPrefix(text[i:], []byte("attrs")) {
		return
	}
	i = skipSet(text, i+len("attrs"), " \t")
	if i >= len(text) || text[i] != '=' {
		return
	}
	i = skipSet(text, i+1, " \t")
	if i >= len(text) || text[i] != '{' {
		return
	}
	for _, e := range inlineEntries(text, i) {
		for k := range a.Attrs {
			if a.Attrs[k].Name == e.key {
				a.Attrs[k].Loc = spanOf(f, e.start, e.end)
				a.Attrs[k].Removal = spanOf(f, e.cutStart, e.cutEnd)
			}
		}
	}
}

type inlineEntry struct {
	key              string
	start, end       int
	cutStart, cutEnd int
}

// inlineEntries splits the inline table opening at text[open] into its
// top-level `key = value` entries.
func inlineEntries(text []byte, open int) []inlineEntry {
	var out []inlineEntry
	i := open + 1
	prevEnd := -1 // end of the previous entry's value
	for {
		i = skipSet(text, i, " \t\r\n")
		if i >= len(text) || text[i] == '}' {
			break
		}
		if text[i] == ',' {
			i++
			continue
		}
		start := i
		key, next := scanKey(text, i)
		if key == "" {
			break
		}
		i = skipSet(text, next, " \t")
		if i >= len(text) || text[i] != '=' {
			break
		}
		i = skipSet(text, i+1, " \t")
		end := scanValue(text, i)
		if end <= i {
			break
		}
		e := inlineEntry{key: key, start: start, end: end, cutStart: start, cutEnd: end}
		if prevEnd >= 0 {
			e.cutStart = prevEnd // `, key = value`
		} else if j := skipSet(text, end, " \t"); j < len(text) && text[j] == ',' {
			e.cutEnd = skipSet(text, j+1, " \t") // `key = value, `
		}
		out = append(out, e)
		prevEnd = end
		i = end
	}
	return out
}

func scanKey(text []byte, i int) (string, int) {
	if i < len(text) && text[i] == '"' {
		end := scanString(text, i)
		if s, err := strconv.Unquote(string(text[i:end])); err == nil {
			return s, end
		}
		return "", i
	}
	j := i
	for j < len(text) && isBareKeyByte(text[j]) {
		j++
	}
	return string(text[i:j]), j
}

func isBareKeyByte(c byte) bool {
	return c == '_' || c == '-' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// scanValue returns the end of the TOML value starting at text[i].
func scanValue(text []byte, i int) int {
	if i >= len(text) {
		return i
	}
	switch text[i] {
	case '"', '\'':
		return scanString(text, i)
	case '[', '{':
		depth := 0
		for j := i; j < len(text); j++ {
			switch text[j] {
			case '"', '\'':
				j = scanString(text, j) - 1
			case '[', '{':
				depth++
			case ']', '}':
				depth--
				if depth == 0 {
					return j + 1
				}
			}
		}
		return len(text)
	}
	j := i
	for j < len(text) && !bytes.ContainsRune([]byte(", \t\r\n}]"), rune(text[j])) {
		j++
	}
	return j
}

// scanString returns the offset just past the string literal opening at
// text[i]. Basic strings honour backslash escapes.
func scanString(text []byte, i int) int {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			if quote == '"' {
				j++
			}
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(text)
}

func skipSet(text []byte, i int, set string) int {
	for i < len(text) && bytes.IndexByte([]byte(set), text[i]) >= 0 {
		i++
	}
	return i
}

func spanOf(f *source.File, start, end int) source.Span {
	s, err1 := safecast.Conv[uint32](start)
	e, err2 := safecast.Conv[uint32](end)
	if err1 != nil || err2 != nil {
		return source.Span{File: f.ID}
	}
	return source.Span{File: f.ID, Start: s, End: e}
}
