package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver covers CLI operations over a set of files.
	ScopeDriver Scope = iota + 1
	// ScopeFile covers one file through the whole pipeline.
	ScopeFile
	// ScopeStage covers one pipeline stage.
	ScopeStage
	// ScopeDecision records a heuristic choice made by a stage.
	ScopeDecision
	// ScopeChunk records per-chunk events.
	ScopeChunk
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopeStage:
		return "stage"
	case ScopeDecision:
		return "decision"
	case ScopeChunk:
		return "chunk"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "braces", "file:src/a.c"
	Detail   string            // optional detail message
	Dur      time.Duration     // span length, set on KindSpanEnd
	Extra    map[string]string // extensible key-value pairs
}
