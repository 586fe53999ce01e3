// Package braces assigns nesting levels and finds braceless bodies.
//
// Resolve is a single pass over the chunk stream with two explicit stacks:
// frameStack for braces, parens and statements of the code, ppStack for
// #if/#else/#endif. Conditional branches are resolved from the same entry
// state, so code after #endif sees the levels of the #if branch no matter
// what the other branches did with their braces.
//
// Materialize runs later, after classification, and turns the recorded
// virtual braces into chunks.
package braces

import (
	"slices"

	"reform/internal/chunk"
	"reform/internal/diag"
	"reform/internal/state"
	"reform/internal/token"
)

type resolver struct {
	ctx *state.Ctx
	l   *chunk.List

	code    parseState
	scratch parseState
	// st is &code, or &scratch while inside a directive line
	st *parseState

	pp          ppStack
	ppLevel     int
	linePP      int
	inDirective bool

	// last is the last code chunk outside directives
	last chunk.Index
	// bodies maps a statement keyword to its entry in ctx.VBraces
	bodies map[chunk.Index]int
}

type action uint8

const (
	actProceed action = iota
	actConsumed
	actRetry
)

// Resolve fills Level, BraceLevel, ParenLevel, PPLevel and Match on every
// chunk, re-types statement parens and records virtual braces in
// ctx.VBraces.
func Resolve(ctx *state.Ctx) {
	r := &resolver{ctx: ctx, l: ctx.List, bodies: make(map[chunk.Index]int)}
	r.st = &r.code
	for i := r.l.Head(); i != 0; i = r.l.Next(i) {
		c := r.l.Get(i)
		if c.InPreproc() {
			if !r.inDirective {
				r.enterDirective(i)
			}
		} else if r.inDirective {
			r.leaveDirective()
		}
		if c.Kind == token.Newline || c.Kind.IsComment() {
			r.stamp(c)
			continue
		}
		if r.inDirective {
			r.directiveChunk(i)
			continue
		}
		r.codeChunk(i)
		r.last = i
	}
	if r.inDirective {
		r.leaveDirective()
	}
	r.finish()
}

func (r *resolver) stamp(c *chunk.Chunk) {
	c.Level = r.st.level
	c.BraceLevel = r.st.braceLevel
	c.ParenLevel = r.st.parenLevel
	if r.inDirective {
		c.PPLevel = r.linePP
	} else {
		c.PPLevel = r.ppLevel
	}
}

func (r *resolver) link(open, closing chunk.Index) {
	r.l.Get(open).Match = closing
	r.l.Get(closing).Match = open
}

// --- code ---

func (r *resolver) codeChunk(i chunk.Index) {
	for {
		top := r.st.frames.top()
		if top == nil || top.kind != frameStmt {
			break
		}
		switch r.stmtStep(top, i) {
		case actConsumed:
			return
		case actRetry:
			continue
		}
		break
	}
	r.normal(i)
}

// stmtStep feeds chunk i to the statement frame on top of the stack.
func (r *resolver) stmtStep(f *frame, i chunk.Index) action {
	c := r.l.Get(i)
	switch f.stage {
	case stageParen1:
		switch {
		case c.Kind == token.ParenOpen:
			return actProceed
		case c.Kind == token.BraceOpen:
			// catch { }, D synchronized { }, C# switch expressions
			f.stage = stageBrace2
			return actProceed
		case c.Kind == token.Qualifier && f.tok == token.If:
			// if constexpr (...)
			return actProceed
		}
		r.ctx.Decide("braces.drop", "%s without '(' at %d:%d", f.tok, c.OrigLine, c.OrigCol)
		r.st.frames.pop()
		return actRetry

	case stageBrace2, stageBraceDo:
		if c.Kind == token.BraceOpen {
			return actProceed
		}
		if f.tok == token.Else && c.Kind == token.If {
			// else if: the if statement is the body
			r.st.frames.pop()
			return actProceed
		}
		r.openVBrace(f, i)
		return actProceed

	case stageElse:
		if c.Kind == token.Else {
			f.tok = token.Else
			f.open = i
			f.end = 0
			f.stage = stageBrace2
			r.stamp(c)
			return actConsumed
		}
		end := f.end
		r.st.frames.pop()
		r.complete(end)
		return actRetry

	case stageWhile:
		if c.Kind == token.While {
			c.Kind = token.WhileOfDo
			c.Parent = token.Do
			f.stage = stageWodParen
			r.stamp(c)
			return actConsumed
		}
		end := f.end
		r.st.frames.pop()
		r.complete(end)
		return actRetry

	case stageWodParen:
		if c.Kind == token.ParenOpen {
			return actProceed
		}
		r.st.frames.pop()
		r.complete(r.last)
		return actRetry

	case stageWodSemi:
		if c.Kind == token.Semicolon {
			c.Parent = token.WhileOfDo
			r.stamp(c)
			r.st.frames.pop()
			r.complete(i)
			return actConsumed
		}
		r.st.frames.pop()
		r.complete(r.last)
		return actRetry
	}
	return actProceed
}

func (r *resolver) normal(i chunk.Index) {
	c := r.l.Get(i)
	top := r.st.frames.top()
	switch {
	case c.Kind == token.BraceOpen:
		r.stamp(c)
		f := frame{kind: frameBrace, tok: token.BraceOpen, open: i}
		if top != nil && top.kind == frameStmt && (top.stage == stageBrace2 || top.stage == stageBraceDo) {
			f.parent = top.tok
			c.Parent = top.tok
			top.stage = stageNone
		}
		r.st.frames.push(f)
		r.st.level++
		r.st.braceLevel++

	case c.Kind == token.BraceClose:
		r.closeBrace(i)

	case c.Kind == token.ParenOpen || c.Kind == token.SquareOpen:
		r.stamp(c)
		if c.Kind == token.ParenOpen && top != nil && top.kind == frameStmt &&
			(top.stage == stageParen1 || top.stage == stageWodParen) {
			c.Kind = token.SParenOpen
			c.Parent = top.tok
			if top.tok == token.Do {
				c.Parent = token.WhileOfDo
			}
		}
		tok := token.ParenOpen
		if c.Kind == token.SquareOpen {
			tok = token.SquareOpen
		}
		r.st.frames.push(frame{kind: frameParen, tok: tok, open: i})
		r.st.parenLevel++

	case c.Kind == token.ParenClose || c.Kind == token.SquareClose:
		r.closeParen(i)

	case c.Kind == token.Semicolon:
		r.stamp(c)
		if top != nil && top.kind == frameVBrace {
			r.complete(i)
		}

	case isStatement(c.Kind) && (top == nil || top.kind != frameParen):
		r.stamp(c)
		r.openStmt(i)

	default:
		r.stamp(c)
	}
}

func isStatement(k token.Kind) bool {
	switch k {
	case token.If, token.Else, token.For, token.While, token.Switch, token.Do,
		token.Try, token.Catch, token.Finally, token.Lock:
		return true
	}
	return false
}

func (r *resolver) openStmt(i chunk.Index) {
	c := r.l.Get(i)
	f := frame{kind: frameStmt, tok: c.Kind, open: i}
	switch c.Kind {
	case token.Do:
		f.stage = stageBraceDo
	case token.Try, token.Finally:
		f.stage = stageBrace2
	case token.Else:
		// the if it belonged to was already finished
		r.ctx.Warn(diag.StrStrayElse, i, "'else' without a matching 'if'")
		f.stage = stageBrace2
	default:
		f.stage = stageParen1
	}
	r.st.frames.push(f)
}

// openVBrace starts a braceless body for the statement f; chunk i is the
// first chunk of the body. A statement rewound by #else already has its
// body recorded: the branch reuses that record and adds its own close.
func (r *resolver) openVBrace(f *frame, i chunk.Index) {
	parent := f.tok
	f.stage = stageNone
	vb := frame{kind: frameVBrace, tok: token.VBraceOpen, open: i, parent: parent}
	if idx, ok := r.bodies[f.open]; ok {
		vb.vb, vb.reopened = idx, true
		r.st.frames.push(vb)
		r.st.braceLevel++
		r.ctx.Decide("braces.vbrace", "%s body continues in another branch", parent)
		return
	}
	r.ctx.VBraces = append(r.ctx.VBraces, state.VBrace{
		After:      r.last,
		Parent:     parent,
		Level:      r.st.level,
		BraceLevel: r.st.braceLevel,
		PPLevel:    r.ppLevel,
	})
	vb.vb = len(r.ctx.VBraces) - 1
	r.bodies[f.open] = vb.vb
	r.st.frames.push(vb)
	r.st.braceLevel++
	r.ctx.Stats.VBraces++
	c := r.l.Get(i)
	r.ctx.Decide("braces.vbrace", "%s body at %d:%d", parent, c.OrigLine, c.OrigCol)
}

func (r *resolver) closeVBrace(f frame, end chunk.Index) {
	r.endBody(f, end)
	if r.st.braceLevel > 0 {
		r.st.braceLevel--
	}
}

// endBody records where the virtual body of f ends. The first branch to
// end it sets CloseAfter; later branches add their own ends.
func (r *resolver) endBody(f frame, end chunk.Index) {
	vb := &r.ctx.VBraces[f.vb]
	switch {
	case vb.CloseAfter == 0:
		vb.CloseAfter = end
	case f.reopened && end != 0 && end != vb.CloseAfter && !slices.Contains(vb.BranchEnds, end):
		vb.BranchEnds = append(vb.BranchEnds, end)
	}
}

// complete closes virtual bodies ending at end, as far as the statements
// owning them are finished too.
func (r *resolver) complete(end chunk.Index) {
	for {
		top := r.st.frames.top()
		if top == nil || top.kind != frameVBrace {
			return
		}
		f, _ := r.st.frames.pop()
		r.closeVBrace(f, end)
		if !r.bodyDone(end) {
			return
		}
	}
}

// bodyDone advances the statement owning a body that just ended. It reports
// whether the statement is finished.
func (r *resolver) bodyDone(end chunk.Index) bool {
	top := r.st.frames.top()
	if top == nil || top.kind != frameStmt {
		return false
	}
	switch top.tok {
	case token.If:
		top.stage = stageElse
		top.end = end
		return false
	case token.Do:
		top.stage = stageWhile
		top.end = end
		return false
	}
	r.st.frames.pop()
	return true
}

func (r *resolver) closeBrace(i chunk.Index) {
	c := r.l.Get(i)
	if !r.st.frames.hasBrace() {
		r.stamp(c)
		r.ctx.Warn(diag.StrUnmatchedClose, i, "unmatched '}'")
		return
	}
	for {
		top := r.st.frames.top()
		if top.kind == frameBrace {
			break
		}
		f, _ := r.st.frames.pop()
		r.discard(f, i)
	}
	f, _ := r.st.frames.pop()
	r.st.level--
	r.st.braceLevel--
	r.stamp(c)
	r.link(f.open, i)
	if f.parent != token.Invalid {
		c.Parent = f.parent
		if r.bodyDone(i) {
			r.complete(i)
		}
	}
}

func (r *resolver) closeParen(i chunk.Index) {
	c := r.l.Get(i)
	want, name := token.ParenOpen, "')'"
	if c.Kind == token.SquareClose {
		want, name = token.SquareOpen, "']'"
	}
	at := r.st.frames.findOpen(want)
	if at < 0 {
		r.stamp(c)
		r.ctx.Warn(diag.StrUnmatchedClose, i, "unmatched "+name)
		return
	}
	for r.st.frames.len()-1 > at {
		f, _ := r.st.frames.pop()
		r.discard(f, i)
	}
	f, _ := r.st.frames.pop()
	r.st.parenLevel--
	r.stamp(c)
	r.link(f.open, i)

	open := r.l.Get(f.open)
	if open.Kind != token.SParenOpen {
		return
	}
	c.Kind = token.SParenClose
	c.Parent = open.Parent
	if top := r.st.frames.top(); top != nil && top.kind == frameStmt {
		switch top.stage {
		case stageParen1:
			top.stage = stageBrace2
		case stageWodParen:
			top.stage = stageWodSemi
		}
	}
}

// discard drops a frame left open inside a construct that is closing at i.
func (r *resolver) discard(f frame, at chunk.Index) {
	switch f.kind {
	case frameVBrace:
		r.closeVBrace(f, r.last)
	case frameParen:
		r.st.parenLevel--
		r.ctx.Stats.ParenRecovered++
		if !r.inDirective {
			r.ctx.Warn(diag.StrUnclosedParen, f.open, "unclosed bracket before "+r.l.Get(at).Text)
		}
	case frameBrace:
		r.st.level--
		r.st.braceLevel--
		if !r.inDirective {
			r.ctx.Warn(diag.StrMismatchedClose, at, "'"+r.l.Get(at).Text+"' closes over an open '{'")
		}
	}
}

func (r *resolver) finish() {
	for {
		top := r.code.frames.top()
		if top == nil {
			break
		}
		switch top.kind {
		case frameStmt:
			f, _ := r.code.frames.pop()
			switch f.stage {
			case stageElse, stageWhile:
				r.complete(f.end)
			case stageWodParen, stageWodSemi:
				r.complete(r.last)
			}
		case frameVBrace:
			f, _ := r.code.frames.pop()
			r.closeVBrace(f, r.last)
		case frameBrace:
			f, _ := r.code.frames.pop()
			r.ctx.Warn(diag.StrUnclosedBrace, f.open, "'{' is never closed")
		case frameParen:
			f, _ := r.code.frames.pop()
			r.ctx.Warn(diag.StrUnclosedParen, f.open, "'"+r.l.Get(f.open).Text+"' is never closed")
		}
	}
	for r.pp.len() > 0 {
		f, _ := r.pp.pop()
		r.ctx.Warn(diag.StrUnclosedPreproc, f.open, "#if without #endif")
	}
}
