package diagfmt

import (
	"fmt"
	"io"

	"genmark/internal/diag"
	"genmark/internal/source"
)

// Options bundles the per-sink settings used by Render.
type Options struct {
	Pretty     PrettyOpts
	JSON       JSONOpts
	ShortNotes bool
}

// Render writes problems to w in the given format.
func Render(w io.Writer, f Format, problems []diag.Problem, fs *source.FileSet, opts Options) error {
	switch f {
	case FormatShort:
		return Short(w, problems, fs, opts.ShortNotes)
	case FormatPretty:
		return Pretty(w, problems, fs, opts.Pretty)
	case FormatJSON:
		return JSON(w, problems, fs, opts.JSON)
	case FormatMsgpack:
		return Msgpack(w, problems, fs, opts.JSON)
	default:
		return fmt.Errorf("unsupported format %v", f)
	}
}
