package newlines

import (
	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/token"
)

// braceOption returns the nl_*_brace option for a '{' owned by parent.
func (p *planner) braceOption(parent token.Kind) options.IARF {
	o := p.opts
	switch parent {
	case token.If:
		return o.NlIfBrace
	case token.Else:
		return o.NlElseBrace
	case token.For:
		return o.NlForBrace
	case token.While:
		return o.NlWhileBrace
	case token.Switch:
		return o.NlSwitchBrace
	case token.Do:
		return o.NlDoBrace
	case token.FuncDef, token.FuncClass:
		return o.NlFdefBrace
	case token.Struct, token.Union:
		return o.NlStructBrace
	case token.Enum:
		return o.NlEnumBrace
	case token.Class:
		return o.NlClassBrace
	case token.Namespace:
		return o.NlNamespaceBrace
	case token.Try:
		return o.NlTryBrace
	case token.Catch:
		return o.NlCatchBrace
	case token.Finally:
		return o.NlFinallyBrace
	}
	return options.Ignore
}

// closeOption returns the option for the break between '}' and next.
func (p *planner) closeOption(next *chunk.Chunk) options.IARF {
	switch next.Kind {
	case token.Else:
		return p.opts.NlBraceElse
	case token.WhileOfDo:
		return p.opts.NlBraceWhile
	case token.Catch:
		return p.opts.NlBraceCatch
	case token.Finally:
		return p.opts.NlBraceFinally
	}
	return options.Ignore
}

// codeBlock reports whether the braces at open hold statements or members
// rather than an initializer list.
func (p *planner) codeBlock(open *chunk.Chunk) bool {
	if open.Parent == token.Assign || open.Flags.Has(token.FlagInArrayInit) && open.Parent == token.Invalid {
		return false
	}
	if open.Parent == token.Enum && !p.l.NewlineBetween(open.ID, open.Match) {
		return false
	}
	return !open.InPreproc()
}

func (p *planner) braceRules(i chunk.Index, c *chunk.Chunk) {
	switch c.Kind {
	case token.BraceOpen:
		if c.Match == 0 {
			return
		}
		p.apply(c, p.braceOption(c.Parent))
		if !p.codeBlock(c) {
			return
		}
		closing := p.l.Get(c.Match)
		if p.opts.NlCollapseEmpty && p.l.NextVisible(i) == c.Match {
			p.forbid(closing)
			return
		}
		if p.opts.NlAfterBraceOpen {
			if n := p.after(i); n != nil && n.ID != c.Match {
				p.require(n, 1)
			}
		}
		if p.opts.NlBeforeBraceClose && p.l.NextVisible(i) != c.Match {
			p.require(closing, 1)
		}

	case token.BraceClose:
		n := p.after(i)
		if n == nil {
			return
		}
		if v := p.closeOption(n); v != options.Ignore {
			p.apply(n, v)
			return
		}
		if !p.opts.NlAfterBraceClose || c.Match == 0 || !p.codeBlock(p.l.Get(c.Match)) {
			return
		}
		if n.Is(token.Semicolon, token.Comma, token.ParenClose, token.FParenClose, token.SParenClose,
			token.Word, token.Type, token.Else, token.WhileOfDo, token.Catch, token.Finally) {
			return
		}
		p.require(n, 1)

	case token.VBraceOpen:
		if !p.opts.NlAfterVBraceOpen || c.InPreproc() {
			return
		}
		if n := p.after(i); n != nil && n.ID != c.Match {
			p.require(n, 1)
		}
	}
}

func (p *planner) statementRules(i chunk.Index, c *chunk.Chunk) {
	switch c.Kind {
	case token.Semicolon:
		if !p.opts.NlAfterSemicolon || c.ParenLevel > 0 || c.InPreproc() {
			return
		}
		n := p.after(i)
		if n == nil || n.Kind.IsBraceClose() || n.Kind == token.VBraceClose {
			return
		}
		// "do x; while (y);" and the ';' of a for header stay put
		if n.Kind == token.WhileOfDo {
			return
		}
		p.require(n, 1)

	case token.CaseColon:
		if !p.opts.NlAfterCase || c.InPreproc() {
			return
		}
		if n := p.after(i); n != nil && n.Kind != token.BraceOpen {
			p.require(n, 1)
		}
	}
}

// hardRules are the breaks no option can remove: a directive starts and
// ends its own line, and a // comment runs to the end of its line.
func (p *planner) hardRules(i chunk.Index, c *chunk.Chunk) {
	if c.Kind == token.Preproc {
		if p.l.PrevVisible(i) != 0 {
			p.require(c, 1)
		}
		return
	}
	prev := p.l.Get(p.l.PrevVisible(i))
	if prev == nil {
		return
	}
	if prev.InPreproc() && !c.InPreproc() {
		p.require(c, 1)
		return
	}
	if prev.Kind == token.CommentCpp {
		p.require(c, 1)
	}
}
