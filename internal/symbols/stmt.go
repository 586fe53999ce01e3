package symbols

import (
	"reform/internal/chunk"
	"reform/internal/token"
)

// markStatements sets FlagStmtStart on the first chunk of every statement
// and FlagExprStart on the first chunk of every expression.
func (k *classifier) markStatements() {
	var stmt chunk.Index
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.InPreproc() {
			k.directiveStart(i, c)
			return
		}
		p := k.prev(i)
		if !c.Kind.IsClose() && c.Kind != token.Semicolon && c.Kind != token.Comma && k.startsStatement(p, stmt) {
			c.Flags = c.Flags.Set(token.FlagStmtStart | token.FlagExprStart)
			stmt = i
			return
		}
		if startsExpression(k.get(p)) {
			c.Flags = c.Flags.Set(token.FlagExprStart)
		}
	})
}

func (k *classifier) startsStatement(p, stmt chunk.Index) bool {
	pc := k.get(p)
	if pc == nil {
		return true
	}
	switch pc.Kind {
	case token.BraceOpen, token.BraceClose:
		return !k.initBrace(p)
	case token.Semicolon, token.Else, token.Do, token.Try, token.Finally:
		return true
	case token.SParenClose:
		return pc.Parent != token.WhileOfDo
	case token.Colon:
		// case 1: / default: / public: / label:
		s := k.get(stmt)
		if s == nil {
			return false
		}
		if s.Is(token.Case, token.Default, token.Access) {
			return true
		}
		return s.Kind == token.Word && k.next(stmt) == p
	case token.AngleClose:
		o := k.get(pc.Match)
		return o != nil && k.kindOf(k.prev(o.ID)) == token.Template
	}
	return false
}

// initBrace reports whether the brace at i (either side) opens an
// initializer rather than a block.
func (k *classifier) initBrace(i chunk.Index) bool {
	c := k.get(i)
	if c.Kind == token.BraceClose {
		if c.Match == 0 {
			return false
		}
		c = k.get(c.Match)
	}
	switch k.kindOf(k.prev(c.ID)) {
	case token.Assign, token.Return, token.Comma, token.ParenOpen, token.FParenOpen,
		token.TSquare, token.SquareClose:
		return true
	case token.BraceOpen:
		return k.initBrace(k.prev(c.ID))
	}
	return false
}

func startsExpression(p *chunk.Chunk) bool {
	if p == nil {
		return true
	}
	switch p.Kind {
	case token.ParenOpen, token.SParenOpen, token.FParenOpen, token.SquareOpen,
		token.Comma, token.Assign, token.Return, token.Question, token.Colon,
		token.Throw, token.Case, token.Compare, token.Bool, token.Arith, token.Not,
		token.Inv, token.Star, token.Amp, token.Minus, token.Plus, token.Caret,
		token.Lambda:
		return true
	}
	return false
}

// directiveStart marks the body of a macro definition as a statement start.
func (k *classifier) directiveStart(i chunk.Index, c *chunk.Chunk) {
	p := k.get(k.prev(i))
	if p == nil {
		return
	}
	switch {
	case p.Kind == token.Macro:
		c.Flags = c.Flags.Set(token.FlagStmtStart | token.FlagExprStart)
	case p.Kind == token.ParenClose && p.Parent == token.MacroFunc:
		c.Flags = c.Flags.Set(token.FlagStmtStart | token.FlagExprStart)
	case startsExpression(p):
		c.Flags = c.Flags.Set(token.FlagExprStart)
	}
}

// markQualified flags the members of A::B::C chains. When the chain ends in
// a type every word of the chain is a type.
func (k *classifier) markQualified() {
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.Kind != token.DCMember || c.Flags.Has(token.FlagQualified) {
			return
		}
		// walk back to the chain start
		start := i
		if p := k.prev(i); p != 0 && k.get(p).Is(token.Word, token.Type, token.AngleClose) {
			start = p
			if ac := k.get(p); ac.Kind == token.AngleClose && ac.Match != 0 {
				start = k.prev(ac.Match)
			}
		}
		end := i
		members := []chunk.Index{}
		for j := start; j != 0; {
			members = append(members, j)
			end = j
			jc := k.get(j)
			if jc.Kind == token.AngleOpen && jc.Match != 0 {
				j = jc.Match
				members = append(members, j)
				end = j
			}
			n := k.next(j)
			nc := k.get(n)
			if nc == nil {
				break
			}
			if k.kindOf(j) == token.DCMember {
				if !nc.Is(token.Word, token.Type, token.Inv, token.Operator) {
					break
				}
			} else if nc.Kind != token.DCMember && nc.Kind != token.AngleOpen {
				break
			}
			j = n
		}
		isType := k.kindOf(end) == token.Type || k.kindOf(end) == token.AngleClose && k.kindOf(k.prev(k.get(end).Match)) == token.Type
		for _, m := range members {
			mc := k.get(m)
			mc.Flags = mc.Flags.Set(token.FlagQualified)
			if isType && mc.Kind == token.Word {
				mc.Kind = token.Type
				k.ctx.Stats.Retyped++
			}
		}
	})
}
