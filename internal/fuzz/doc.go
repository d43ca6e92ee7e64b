// Package fuzztests houses Go fuzz harnesses that feed arbitrary bytes
// through the declaration model loader and the diagnostic engine. They guard
// against panics, out-of-range spans and hangs on malformed models.
package fuzztests
