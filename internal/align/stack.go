// Package align lines up runs of chunks that play the same role on nearby
// lines: declaration names, '=' signs, enum values, typedef names, #define
// values, trailing comments and backslash-newlines.
package align

import (
	"reform/internal/chunk"
	"reform/internal/state"
)

type item struct {
	at  chunk.Index
	min int
}

// Stack collects one run. A chunk joins the run when it is at most span
// lines below the previous one; otherwise the run is flushed first. With a
// threshold, a chunk whose column is more than thresh away from the run's
// column starts a new run.
type Stack struct {
	ctx    *state.Ctx
	class  chunk.AlignClass
	span   int
	thresh int

	// anyLevel lets a run cross brace levels.
	anyLevel bool

	run      []item
	lastLine int
	level    int
}

// NewStack returns an empty run collector for class.
func NewStack(ctx *state.Ctx, class chunk.AlignClass, span, thresh int) *Stack {
	return &Stack{ctx: ctx, class: class, span: span, thresh: thresh}
}

// Add offers chunk i, found on output line line, to the run. gap is the
// smallest number of blanks the chunk needs after the one before it.
// It reports false when the chunk already belongs to another class.
func (s *Stack) Add(i chunk.Index, line, gap int) bool {
	l := s.ctx.List
	c := l.Get(i)
	if c == nil || c.AlignClass != chunk.AlignNone && c.AlignClass != s.class {
		return false
	}
	if len(s.run) > 0 && (line-s.lastLine > s.span || !s.anyLevel && c.Level != s.level) {
		s.Flush()
	}
	least := c.Column
	if p := l.Get(l.PrevVisible(i)); p != nil && c.NlBefore == 0 {
		least = max(p.EndColumn()+gap, 1)
	}
	if s.thresh > 0 && len(s.run) > 0 {
		if d := s.target() - max(c.Column, least); d > s.thresh || -d > s.thresh {
			s.Flush()
		}
	}
	s.run = append(s.run, item{at: i, min: least})
	s.lastLine, s.level = line, c.Level
	return true
}

// target is the run's column: no chunk moves left of where it already is
// or of its minimum.
func (s *Stack) target() int {
	col := 0
	for _, it := range s.run {
		col = max(col, it.min, s.ctx.List.Get(it.at).Column)
	}
	return col
}

// Flush aligns the run collected so far and starts an empty one. A single
// chunk is only pushed out to its minimum column.
func (s *Stack) Flush() {
	if len(s.run) == 0 {
		return
	}
	l := s.ctx.List
	col := s.target()
	for _, it := range s.run {
		c := l.Get(it.at)
		l.ShiftLine(it.at, col-c.Column)
		if len(s.run) > 1 {
			c.AlignClass = s.class
		}
	}
	if len(s.run) > 1 {
		s.ctx.Stats.AlignedGroups++
		s.ctx.Decide("align.group", "%s: %d chunks at column %d", s.class, len(s.run), col)
	}
	s.run = s.run[:0]
}

// lines numbers the output lines: the result maps a chunk index to the line
// it is printed on.
func lines(l *chunk.List) map[chunk.Index]int {
	out := make(map[chunk.Index]int, l.Len())
	n := 1
	for c := range l.All() {
		if c.IsVisible() {
			n += c.NlBefore
		}
		out[c.ID] = n
	}
	return out
}
