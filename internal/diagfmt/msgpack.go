package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"genmark/internal/diag"
	"genmark/internal/source"
)

// msgpackSchema is bumped when DiagnosticsOutput changes shape.
const msgpackSchema uint16 = 1

// MsgpackEnvelope frames the payload for hosts reading a binary stream.
type MsgpackEnvelope struct {
	Schema uint16            `msgpack:"schema"`
	Output DiagnosticsOutput `msgpack:"output"`
}

// Msgpack writes the same payload as JSON, msgpack-encoded and wrapped in an
// envelope carrying the schema version.
func Msgpack(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(&MsgpackEnvelope{
		Schema: msgpackSchema,
		Output: BuildDiagnosticsOutput(problems, fs, opts),
	})
}

// DecodeMsgpack reads one envelope written by Msgpack.
func DecodeMsgpack(r io.Reader) (*MsgpackEnvelope, error) {
	var env MsgpackEnvelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}
