package newlines

import (
	"reform/internal/chunk"
	"reform/internal/state"
	"reform/internal/token"
)

// SqueezeIfdef drops the blank lines that open an #if or #else section and
// the blank lines in front of #else and #endif.
func SqueezeIfdef(ctx *state.Ctx) {
	l := ctx.List
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind != token.Preproc {
			continue
		}
		switch c.Parent {
		case token.PpIf, token.PpElse:
			if n := l.Get(firstAfterDirective(l, i)); n != nil {
				n.NlBefore = min(n.NlBefore, 1)
			}
		}
		if c.Parent == token.PpElse || c.Parent == token.PpEndif {
			if l.PrevVisible(i) != 0 {
				c.NlBefore = min(c.NlBefore, 1)
			}
		}
	}
}

// firstAfterDirective returns the first printed chunk on the line after the
// directive starting at i.
func firstAfterDirective(l *chunk.List, i chunk.Index) chunk.Index {
	for j := l.NextVisible(i); j != 0; j = l.NextVisible(j) {
		if c := l.Get(j); !c.InPreproc() || c.Kind == token.Preproc {
			return j
		}
	}
	return 0
}
