// Package diag defines the diagnostic model shared by all formatter stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture recoverable anomalies
//     found while reformatting: unterminated literals, unbalanced braces,
//     preprocessor branches that disagree, unknown configuration keys.
//   - Offer light-weight utilities (Reporter, Bag) that let stages emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt, orchestration in internal/driver.
//
// Diagnostics never stop a run. Stages report and continue with a
// deterministic fallback (clamp a level, close a literal at end of file).
// Fatal setup problems (unreadable input, unparsable configuration) are plain
// Go errors returned to the caller instead.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier (codes.go) with stable string form.
//   - Message: human oriented text, short and actionable.
//   - Primary: the source.Span pointing at the offending bytes.
//   - Notes: optional secondary spans, e.g. "#if opened here".
//
// # Emitting diagnostics
//
// Stages use a Reporter. ReportWarning/ReportInfo return a ReportBuilder;
// chain WithNote and finish with Emit. BagReporter collects into a Bag which
// supports sorting and deduplication.
package diag
