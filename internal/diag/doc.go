// Package diag defines the problem model shared by the inference checks, the
// constructor-delegation check and annotation analyzers.
//
// A Problem carries a Severity, a stable Code, a message, the Anchor node it
// is attached to, its primary span, optional notes and quick-fix references.
// Problems are compared for deduplication by (anchor identity, message,
// severity); see Problem.Key.
//
// Producers emit through a Reporter. BagReporter stores into a bounded Bag,
// Collector keeps everything, and DedupReporter filters duplicates before
// forwarding. Rendering lives in internal/diagfmt.
package diag
