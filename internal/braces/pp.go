package braces

import (
	"reform/internal/chunk"
	"reform/internal/diag"
	"reform/internal/token"
)

// enterDirective is called at the '#' of a directive line. Conditionals
// move the code state; the line itself is resolved in a scratch state that
// is thrown away at the end of the line.
func (r *resolver) enterDirective(i chunk.Index) {
	r.inDirective = true
	r.linePP = r.ppLevel

	dir := token.PpOther
	if n := r.l.Get(r.l.Next(i)); n != nil && n.Kind.IsPreproc() {
		dir = n.Kind
	}
	if c := r.l.Get(i); c.Kind == token.Preproc {
		c.Parent = dir
	}

	switch dir {
	case token.PpIf:
		r.pp.push(ppFrame{open: i, entry: r.code.clone()})
		r.ppLevel++

	case token.PpElse:
		f := r.pp.top()
		if f == nil {
			r.ctx.Warn(diag.StrStrayElse, i, "#else without #if")
			break
		}
		r.linePP = r.ppLevel - 1
		if f.branches == 0 {
			end := r.code.clone()
			f.ifEnd = &end
		}
		f.branches++
		r.dropVBraces(&r.code, &f.entry)
		r.code = f.entry.clone()
		r.ctx.Decide("braces.pp", "#else rewinds to depth %d", r.code.frames.depth())

	case token.PpEndif:
		f, ok := r.pp.pop()
		if !ok {
			r.ctx.Warn(diag.StrStrayEndif, i, "#endif without #if")
			break
		}
		r.ppLevel--
		r.linePP = r.ppLevel
		r.endif(&f)
	}

	r.scratch = parseState{level: r.code.level, braceLevel: r.code.braceLevel}
	r.st = &r.scratch
}

func (r *resolver) endif(f *ppFrame) {
	want := f.entry.frames.depth()
	if f.ifEnd != nil {
		want = f.ifEnd.frames.depth()
	}
	if got := r.code.frames.depth(); got != want {
		r.ctx.Info(diag.StrUnbalancedBranches, f.open,
			"conditional branches leave different brace depths; continuing with the #if branch")
	}
	if f.ifEnd == nil {
		return
	}
	r.dropVBraces(&r.code, f.ifEnd)
	r.code = *f.ifEnd
}

func (r *resolver) leaveDirective() {
	r.inDirective = false
	r.st = &r.code
}

// dropVBraces closes the virtual bodies of from that keep does not share.
func (r *resolver) dropVBraces(from, keep *parseState) {
	shared := make(map[int]bool)
	for _, f := range keep.frames.frames {
		if f.kind == frameVBrace {
			shared[f.vb] = true
		}
	}
	for _, f := range from.frames.frames {
		if f.kind != frameVBrace || shared[f.vb] {
			continue
		}
		r.endBody(f, r.last)
	}
}

var openerOf = map[token.Kind]token.Kind{
	token.ParenClose:  token.ParenOpen,
	token.SquareClose: token.SquareOpen,
	token.BraceClose:  token.BraceOpen,
}

// directiveChunk matches brackets on a directive line. Statements are not
// tracked and unbalanced brackets are normal in macro bodies, so nothing is
// reported.
func (r *resolver) directiveChunk(i chunk.Index) {
	c := r.l.Get(i)
	switch {
	case c.Kind == token.ParenOpen || c.Kind == token.SquareOpen:
		r.stamp(c)
		r.st.frames.push(frame{kind: frameParen, tok: c.Kind, open: i})
		r.st.parenLevel++
	case c.Kind == token.BraceOpen:
		r.stamp(c)
		r.st.frames.push(frame{kind: frameBrace, tok: c.Kind, open: i})
		r.st.level++
		r.st.braceLevel++
	case c.Kind == token.ParenClose || c.Kind == token.SquareClose || c.Kind == token.BraceClose:
		want := openerOf[c.Kind]
		top := r.st.frames.top()
		if top == nil || top.tok != want {
			r.stamp(c)
			return
		}
		f, _ := r.st.frames.pop()
		if f.kind == frameBrace {
			r.st.level--
			r.st.braceLevel--
		} else {
			r.st.parenLevel--
		}
		r.stamp(c)
		r.link(f.open, i)
	default:
		r.stamp(c)
	}
}
