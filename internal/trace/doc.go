// Package trace provides the logging and tracing subsystem of reform.
//
// Every pipeline stage runs inside a span, so a trace shows which stage was
// working on which file and for how long. Stages that make heuristic
// decisions (brace resolution, symbol classification) emit point events at
// the detail level, and per-chunk events at debug level.
//
// # Usage
//
//	reform fmt --trace=- --trace-level=stage src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer dumped when a run fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelStage: driver, file and stage boundaries
//   - LevelDetail: plus classification decisions
//   - LevelDebug: everything including individual chunks
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "braces", parentID)
//	defer span.End("")
package trace
