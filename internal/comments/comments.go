// Package comments tells trailing comments from comments that stand on
// their own line. Runs after the newline planner, so "own line" means the
// output line.
package comments

import (
	"strings"

	"reform/internal/chunk"
	"reform/internal/state"
	"reform/internal/token"
)

// Mark sets the parent of every comment: CommentEnd with FlagRightComment
// when code precedes it on its line, CommentWhole otherwise. Block comments
// whose inner lines all start with '*' also get FlagBoxComment.
func Mark(ctx *state.Ctx) {
	l := ctx.List
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if !c.Kind.IsComment() {
			continue
		}
		if trailing(l, i) {
			c.Parent = token.CommentEnd
			c.Flags = c.Flags.Set(token.FlagRightComment)
		} else {
			c.Parent = token.CommentWhole
			c.Flags = c.Flags.Clear(token.FlagRightComment)
		}
		if c.Kind == token.CommentMulti && boxed(c.Text) {
			c.Flags = c.Flags.Set(token.FlagBoxComment)
		}
	}
}

func trailing(l *chunk.List, i chunk.Index) bool {
	c := l.Get(i)
	if c.NlBefore > 0 {
		return false
	}
	prev := l.Get(l.PrevVisible(i))
	return prev != nil && !prev.Kind.IsComment() || prev != nil && prev.Flags.Has(token.FlagRightComment)
}

func boxed(text string) bool {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return false
	}
	for _, ln := range lines[1:] {
		if !strings.HasPrefix(strings.TrimLeft(ln, " \t"), "*") {
			return false
		}
	}
	return true
}
