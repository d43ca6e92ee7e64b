// Package trace is the logging layer of genmark: structured span and point
// events emitted by the driver, each diagnostic pass and, at debug level,
// individual nodes.
//
//	genmark diag --trace=- --trace-level=detail models/*.toml
//
// Tracers travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "inspect", parent)
//	defer span.End("")
//
// Nop costs nothing when tracing is off. StreamTracer writes text or NDJSON
// as events happen, RingTracer keeps the last N events for a dump after a
// crash, and MultiTracer fans out to several tracers.
package trace
