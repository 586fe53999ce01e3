package chunk

import "reform/internal/token"

// Skip decides which chunks a navigation helper steps over.
type Skip func(*Chunk) bool

var (
	// SkipNewlines steps over line breaks.
	SkipNewlines Skip = func(c *Chunk) bool { return c.Kind == token.Newline }
	// SkipNoise steps over line breaks and comments.
	SkipNoise Skip = func(c *Chunk) bool { return c.Kind == token.Newline || c.Kind.IsComment() }
	// SkipInvisible steps over line breaks and virtual braces.
	SkipInvisible Skip = func(c *Chunk) bool { return !c.IsVisible() }
	// SkipNonCode steps over line breaks, comments and virtual braces.
	SkipNonCode Skip = func(c *Chunk) bool { return !c.IsVisible() || c.Kind.IsComment() }
)

// NextWhere returns the first chunk after i that skip does not reject.
func (l *List) NextWhere(i Index, skip Skip) Index {
	for i = l.Next(i); i != 0; i = l.Next(i) {
		if !skip(l.Get(i)) {
			return i
		}
	}
	return 0
}

// PrevWhere returns the first chunk before i that skip does not reject.
func (l *List) PrevWhere(i Index, skip Skip) Index {
	for i = l.Prev(i); i != 0; i = l.Prev(i) {
		if !skip(l.Get(i)) {
			return i
		}
	}
	return 0
}

// NextNNL returns the next chunk that is not a newline.
func (l *List) NextNNL(i Index) Index { return l.NextWhere(i, SkipNewlines) }

// PrevNNL returns the previous chunk that is not a newline.
func (l *List) PrevNNL(i Index) Index { return l.PrevWhere(i, SkipNewlines) }

// NextNC returns the next chunk that is neither newline nor comment.
func (l *List) NextNC(i Index) Index { return l.NextWhere(i, SkipNoise) }

// PrevNC returns the previous chunk that is neither newline nor comment.
func (l *List) PrevNC(i Index) Index { return l.PrevWhere(i, SkipNoise) }

// NextVisible returns the next chunk the renderer prints.
func (l *List) NextVisible(i Index) Index { return l.NextWhere(i, SkipInvisible) }

// PrevVisible returns the previous chunk the renderer prints.
func (l *List) PrevVisible(i Index) Index { return l.PrevWhere(i, SkipInvisible) }

// NextCode returns the next printed chunk that is not a comment.
func (l *List) NextCode(i Index) Index { return l.NextWhere(i, SkipNonCode) }

// PrevCode returns the previous printed chunk that is not a comment.
func (l *List) PrevCode(i Index) Index { return l.PrevWhere(i, SkipNonCode) }

// FirstVisible returns the first printed chunk.
func (l *List) FirstVisible() Index {
	if c := l.Get(l.head); c.IsVisible() {
		return l.head
	}
	return l.NextVisible(l.head)
}

// NewlineBetween reports whether the original text had a line break between
// a and b (a before b). Only meaningful before the newline planner runs.
func (l *List) NewlineBetween(a, b Index) bool {
	for i := l.Next(a); i != 0 && i != b; i = l.Next(i) {
		if l.Get(i).Kind == token.Newline {
			return true
		}
	}
	return false
}

// IsLineStart reports whether a printed chunk begins an output line.
// Valid once NlBefore has been planned.
func (l *List) IsLineStart(i Index) bool {
	c := l.Get(i)
	if c == nil {
		return false
	}
	return c.NlBefore > 0 || l.PrevVisible(i) == 0
}

// LineStart returns the first printed chunk of i's output line.
func (l *List) LineStart(i Index) Index {
	for i != 0 && !l.IsLineStart(i) {
		i = l.PrevVisible(i)
	}
	return i
}

// NextOnLine returns the next printed chunk if it is on the same output line.
func (l *List) NextOnLine(i Index) Index {
	n := l.NextVisible(i)
	if n == 0 || l.Get(n).NlBefore > 0 {
		return 0
	}
	return n
}

// ShiftLine moves every printed chunk from i to the end of its output line by delta columns.
func (l *List) ShiftLine(i Index, delta int) {
	if delta == 0 {
		return
	}
	for ; i != 0; i = l.NextOnLine(i) {
		c := l.Get(i)
		c.Column += delta
		if c.Column < 1 {
			c.Column = 1
		}
	}
}

// ScanTo walks forward from i and returns the first chunk at parenLevel/level
// matching one of kinds, or 0.
func (l *List) ScanTo(i Index, level, parenLevel int, kinds ...token.Kind) Index {
	for i = l.Next(i); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Level < level {
			return 0
		}
		if c.Level == level && c.ParenLevel == parenLevel && c.Is(kinds...) {
			return i
		}
	}
	return 0
}
