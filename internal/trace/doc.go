// Package trace records what the ember pipeline is doing.
//
// Tracing is the logging layer of the toolchain: every phase (lex, parse,
// run) opens a span, batch runs open one span per file, and host function
// calls show up as point events at debug level.
//
//	ember run --trace=- --trace-level=phase main.em
//
// Tracers:
//
//   - Nop: tracing disabled
//   - StreamTracer: writes events as they happen (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a run fails
//   - MultiTracer: fans out to several tracers
//
// The tracer and the current span travel through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
