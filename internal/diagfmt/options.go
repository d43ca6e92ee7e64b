package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects a problem sink.
type Format uint8

const (
	FormatShort Format = iota
	FormatPretty
	FormatJSON
	FormatMsgpack
)

var formatNames = [...]string{
	FormatShort:   "short",
	FormatPretty:  "pretty",
	FormatJSON:    "json",
	FormatMsgpack: "msgpack",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat accepts the names printed by Format.String.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil // #nosec G115 -- bounded by formatNames
		}
	}
	return 0, fmt.Errorf("unknown format %q (want short, pretty, json or msgpack)", s)
}

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shortens long absolute paths to their base name.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of problems.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
	// Summary appends a one-line count of problems by severity.
	Summary bool
}

// JSONOpts configures the structured sinks (json and msgpack).
type JSONOpts struct {
	IncludePositions bool // add line/col
	PathMode         PathMode
	Max              int // truncates the output, not the problem list
	IncludeNotes     bool
	IncludeFixes     bool
}
