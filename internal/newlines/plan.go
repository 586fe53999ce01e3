// Package newlines decides how many line breaks precede every chunk.
//
// Plan starts from the breaks of the input, then applies the brace,
// statement and comment rules of the option set. A rule that requires a
// break sets FlagNlRequired; a rule that removes one sets FlagNlForbidden
// unless a break was already required. Nothing inside a directive line is
// ever broken or joined.
package newlines

import (
	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/state"
	"reform/internal/token"
)

type planner struct {
	ctx  *state.Ctx
	l    *chunk.List
	opts *options.Config
}

// Plan sets NlBefore for every chunk.
func Plan(ctx *state.Ctx) {
	p := &planner{ctx: ctx, l: ctx.List, opts: ctx.Opts}
	p.seed()
	for i := p.l.Head(); i != 0; i = p.l.Next(i) {
		c := p.l.Get(i)
		if !c.IsVisible() {
			continue
		}
		p.braceRules(i, c)
		p.statementRules(i, c)
	}
	// hard rules last so nothing above can undo them
	for i := p.l.Head(); i != 0; i = p.l.Next(i) {
		if c := p.l.Get(i); c.IsVisible() {
			p.hardRules(i, c)
		}
	}
}

// seed copies the input's line breaks onto the chunks that follow them. The
// breaks on both sides of a removed brace collapse into one run so the
// brace's line does not turn into a blank line.
func (p *planner) seed() {
	pending, held := 0, -1
	for c := range p.l.All() {
		switch {
		case c.Kind == token.Newline:
			pending += c.NlCount
		case c.Kind.IsVirtual():
			c.NlBefore = 0
			if !c.IsSynthetic() && pending > 0 {
				held = max(held, pending)
				pending = 0
			}
		default:
			c.NlBefore = pending
			if held >= 0 {
				c.NlBefore = max(held, pending)
			}
			pending, held = 0, -1
		}
	}
}

// require makes sure at least n breaks precede c.
func (p *planner) require(c *chunk.Chunk, n int) {
	if c == nil {
		return
	}
	c.Flags = c.Flags.Set(token.FlagNlRequired).Clear(token.FlagNlForbidden)
	c.NlBefore = max(c.NlBefore, n)
}

// force sets exactly one break before c.
func (p *planner) force(c *chunk.Chunk) {
	if c == nil {
		return
	}
	p.require(c, 1)
	c.NlBefore = 1
}

// forbid joins c onto the previous line when that is safe.
func (p *planner) forbid(c *chunk.Chunk) {
	if c == nil || c.Flags.Has(token.FlagNlRequired) || !p.joinable(c) {
		return
	}
	c.Flags = c.Flags.Set(token.FlagNlForbidden)
	c.NlBefore = 0
}

// joinable reports whether c may share a line with the chunk printed
// before it: never after a // comment, never across a directive.
func (p *planner) joinable(c *chunk.Chunk) bool {
	if c.Kind == token.Preproc || c.InPreproc() {
		return false
	}
	prev := p.l.Get(p.l.PrevVisible(c.ID))
	if prev == nil {
		return true
	}
	return prev.Kind != token.CommentCpp && !prev.InPreproc()
}

// apply enforces an IARF value on the break before c.
func (p *planner) apply(c *chunk.Chunk, v options.IARF) {
	switch v {
	case options.Add:
		p.require(c, 1)
	case options.Force:
		p.force(c)
	case options.Remove:
		p.forbid(c)
	}
}

// after returns the first printed chunk after i, skipping a comment that
// trails i on the same line.
func (p *planner) after(i chunk.Index) *chunk.Chunk {
	n := p.l.Get(p.l.NextVisible(i))
	if n != nil && n.Kind.IsComment() && n.NlBefore == 0 {
		n = p.l.Get(p.l.NextVisible(n.ID))
	}
	return n
}
