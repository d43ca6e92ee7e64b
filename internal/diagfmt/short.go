package diagfmt

import (
	"io"

	"genmark/internal/diag"
	"genmark/internal/source"
)

// Short writes one line per problem, sorted by location. Notes become their
// own "note" lines when includeNotes is set.
func Short(w io.Writer, problems []diag.Problem, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatGolden(problems, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
