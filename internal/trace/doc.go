// Package trace is the compiler's event log.
//
// A Tracer travels in the context.Context handed to every phase; code that
// wants to report progress opens a span and closes it when done:
//
//	ctx, sp := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer sp.End("")
//
// Enable it from the command line:
//
//	c0c build --trace=- --trace-level=phase prog.c0
//
// # Levels
//
//   - off: nothing
//   - error: only failed compilations
//   - phase: build, file and phase boundaries (lex, parse, emit, write)
//   - detail: plus one span per compiled function
//   - debug: everything
//
// Output is either indented text or NDJSON (one event per line), chosen by
// --trace-format or by the ".ndjson" suffix of the output path.
package trace
