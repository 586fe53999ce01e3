package driver

import (
	"strconv"

	"reform/internal/align"
	"reform/internal/braces"
	"reform/internal/cleanup"
	"reform/internal/comments"
	"reform/internal/indent"
	"reform/internal/labels"
	"reform/internal/lexer"
	"reform/internal/newlines"
	"reform/internal/observ"
	"reform/internal/options"
	"reform/internal/space"
	"reform/internal/state"
	"reform/internal/symbols"
	"reform/internal/trace"
)

// Stage is one pass over the chunk stream.
type Stage struct {
	Name  string
	Phase Phase
	Run   func(*state.Ctx)
	// When, if set, gates the stage on the configuration.
	When func(*options.Config) bool
}

// Stages is the pipeline in run order. Indentation runs twice: alignment
// needs real columns, and moving a chunk can change what follows it.
var Stages = []Stage{
	{Name: "tokenize", Phase: PhaseLex, Run: lexer.Tokenize},
	{Name: "cleanup", Phase: PhaseLex, Run: cleanup.Tokens},
	{Name: "braces", Phase: PhaseStructure, Run: braces.Resolve},
	{Name: "classify", Phase: PhaseStructure, Run: symbols.Classify},
	{Name: "labels", Phase: PhaseStructure, Run: labels.Combine},
	{Name: "vbraces", Phase: PhaseStructure, Run: braces.Materialize},
	{Name: "newlines", Phase: PhaseLayout, Run: newlines.Plan},
	{Name: "squeeze-ifdef", Phase: PhaseLayout, Run: newlines.SqueezeIfdef,
		When: func(o *options.Config) bool { return o.NlSqueezeIfdef }},
	{Name: "space", Phase: PhaseLayout, Run: space.Apply},
	{Name: "comments", Phase: PhaseLayout, Run: comments.Mark},
	{Name: "align-pp", Phase: PhaseAlign, Run: align.Preprocessor,
		When: func(o *options.Config) bool { return o.AlignPPDefineSpan > 0 }},
	{Name: "indent", Phase: PhaseLayout, Run: indent.Apply},
	{Name: "align", Phase: PhaseAlign, Run: align.All},
	{Name: "reindent", Phase: PhaseLayout, Run: indent.Apply},
	{Name: "align-comments", Phase: PhaseAlign, Run: align.TrailingComments},
	{Name: "align-nl-cont", Phase: PhaseAlign, Run: align.BackslashNewline,
		When: func(o *options.Config) bool { return o.AlignNlCont }},
}

// runStages runs every enabled stage on sc. Each stage is a trace span
// under parent and a timer entry.
func runStages(sc *state.Ctx, parent uint64, timer *observ.Timer, onPhase func(Phase)) {
	var phase Phase
	for _, st := range Stages {
		if st.When != nil && !st.When(sc.Opts) {
			continue
		}
		if st.Phase != phase {
			phase = st.Phase
			if onPhase != nil {
				onPhase(phase)
			}
		}
		span := trace.Begin(sc.Tracer, trace.ScopeStage, st.Name, parent)
		sc.Span = span.ID()
		idx := timer.Begin(st.Name)
		st.Run(sc)
		timer.End(idx, "")
		n := 0
		if sc.List != nil {
			n = sc.List.Len()
		}
		span.End(strconv.Itoa(n))
	}
	sc.Span = parent
}
