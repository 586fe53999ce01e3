// Package indent assigns the column of the first chunk of every output line
// and moves the rest of the line with it.
//
// The engine keeps a stack of frames: one per open brace, virtual brace,
// parenthesis or square bracket. A frame knows the column of the lines
// inside it and the column of a closing chunk that starts a line. Directive
// lines do not touch the stack; #if/#else/#endif save and restore it the
// same way the brace resolver does, so both branches of a conditional start
// from the same indentation.
package indent

import (
	"slices"

	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/state"
	"reform/internal/token"
)

type frame struct {
	open   chunk.Index
	kind   token.Kind
	parent token.Kind
	// indent is the column of lines inside the frame.
	indent int
	// close is the column of the closing chunk when it starts a line.
	close int
}

func (f *frame) isParen() bool {
	return f.kind.IsParenOpen() || f.kind == token.SquareOpen
}

type ppSave struct {
	entry  []frame
	ifEnd  []frame
	hasEnd bool
}

type indenter struct {
	l       *chunk.List
	opts    *options.Config
	stack   []frame
	pp      []ppSave
	lineCol int
}

// Apply sets the line-start columns. It can run more than once: a second
// run only moves lines whose hang column changed in between.
func Apply(ctx *state.Ctx) {
	in := &indenter{
		l:       ctx.List,
		opts:    ctx.Opts,
		stack:   []frame{{indent: 1, close: 1}},
		lineCol: 1,
	}
	l := ctx.List
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind == token.Newline {
			continue
		}
		if c.Kind == token.Preproc {
			in.directive(c)
		}
		if c.IsVisible() && l.IsLineStart(i) {
			col := max(in.column(i, c), 1)
			l.ShiftLine(i, col-c.Column)
			in.lineCol = col
		}
		if !c.InPreproc() {
			in.track(i, c)
		}
	}
}

func (in *indenter) top() *frame {
	return &in.stack[len(in.stack)-1]
}

// frameOf finds the frame opened by open, searching from the top.
func (in *indenter) frameOf(open chunk.Index) (int, *frame) {
	if open == 0 {
		return -1, nil
	}
	for k := len(in.stack) - 1; k > 0; k-- {
		if in.stack[k].open == open {
			return k, &in.stack[k]
		}
	}
	return -1, nil
}

func (in *indenter) directive(c *chunk.Chunk) {
	switch c.Parent {
	case token.PpIf:
		in.pp = append(in.pp, ppSave{entry: slices.Clone(in.stack)})
	case token.PpElse:
		if len(in.pp) == 0 {
			return
		}
		s := &in.pp[len(in.pp)-1]
		if !s.hasEnd {
			s.ifEnd, s.hasEnd = slices.Clone(in.stack), true
		}
		in.stack = slices.Clone(s.entry)
	case token.PpEndif:
		if len(in.pp) == 0 {
			return
		}
		s := in.pp[len(in.pp)-1]
		in.pp = in.pp[:len(in.pp)-1]
		if s.hasEnd {
			in.stack = s.ifEnd
		}
	}
}

// track pushes and pops frames after the chunk's own line was placed.
func (in *indenter) track(i chunk.Index, c *chunk.Chunk) {
	switch {
	case c.Kind.IsParenOpen() || c.Kind == token.SquareOpen:
		in.pushParen(i, c)
	case c.Kind.IsBraceOpen():
		in.pushBrace(i, c)
	case c.Kind.IsParenClose() || c.Kind == token.SquareClose || c.Kind.IsBraceClose():
		if k, _ := in.frameOf(c.Match); k > 0 {
			in.stack = in.stack[:k]
		}
	}
}

func (in *indenter) pushParen(i chunk.Index, c *chunk.Chunk) {
	f := frame{open: i, kind: c.Kind, parent: c.Parent}
	if n := in.l.Get(in.l.NextVisible(i)); n != nil && n.NlBefore == 0 && !n.Kind.IsComment() && n.ID != c.Match {
		// hang off the first argument
		f.indent = n.Column
	} else {
		f.indent = in.lineCol + in.opts.ContinueIndent()
	}
	f.close = in.lineCol
	if in.opts.IndentParenClose == 1 {
		f.close = c.Column
	}
	in.stack = append(in.stack, f)
}

func (in *indenter) pushBrace(i chunk.Index, c *chunk.Chunk) {
	o := in.opts
	top := in.top()
	base := top.indent
	if top.isParen() {
		base = in.lineCol
	}
	switch {
	case in.afterCase(i) && top.parent == token.Switch:
		base = in.caseColumn(top) + o.IndentCaseBrace
	case c.Kind == token.BraceOpen && in.l.IsLineStart(i):
		base += o.IndentBrace
	}

	f := frame{open: i, kind: c.Kind, parent: c.Parent, close: base, indent: base + o.IndentColumns}
	switch c.Parent {
	case token.Namespace:
		if !o.IndentNamespace {
			f.indent = base
		}
	case token.Extern:
		if !o.IndentExtern {
			f.indent = base
		}
	case token.Class, token.Struct:
		if !o.IndentClass {
			f.indent = base
		}
	case token.Switch:
		f.indent = base + o.IndentSwitchCase + o.IndentColumns
	}
	in.stack = append(in.stack, f)
}

func (in *indenter) afterCase(i chunk.Index) bool {
	p := in.l.Get(in.l.PrevCode(i))
	return p != nil && p.Kind == token.CaseColon
}

// caseColumn is where case labels of the switch body f go.
func (in *indenter) caseColumn(f *frame) int {
	return f.indent - in.opts.IndentColumns
}

// column computes where the line starting at c begins.
func (in *indenter) column(i chunk.Index, c *chunk.Chunk) int {
	o := in.opts
	top := in.top()
	switch {
	case c.Kind == token.Preproc:
		return in.ppColumn(c)
	case c.InPreproc():
		// continued directive line
		return origColumn(o, c)
	case c.Kind.IsComment() && o.IndentCol1Comment && origColumn(o, c) == 1:
		return 1
	case c.Kind.IsBraceClose() || c.Kind.IsParenClose() || c.Kind == token.SquareClose:
		if _, f := in.frameOf(c.Match); f != nil {
			return f.close
		}
		return top.close
	case c.Kind == token.BraceOpen:
		if top.isParen() {
			return top.indent
		}
		if in.afterCase(i) && top.parent == token.Switch {
			return in.caseColumn(top) + o.IndentCaseBrace
		}
		return top.indent + o.IndentBrace
	case c.Is(token.Case, token.Default) && top.parent == token.Switch:
		return in.caseColumn(top)
	case c.Kind == token.Access && in.l.Get(in.l.NextNC(i)).Is(token.PrivateColon):
		if o.IndentAccessSpec > 0 {
			return o.IndentAccessSpec
		}
		return top.indent + o.IndentAccessSpec
	case c.Kind == token.Label:
		if o.IndentLabel > 0 {
			return o.IndentLabel
		}
		return top.indent + o.IndentLabel
	}
	if top.isParen() {
		return top.indent
	}
	if in.continues(i, c) {
		return top.indent + o.ContinueIndent()
	}
	return top.indent
}

func (in *indenter) ppColumn(c *chunk.Chunk) int {
	switch in.opts.PPIndent {
	case options.Remove:
		return 1
	case options.Add, options.Force:
		return 1 + c.PPLevel*in.opts.PPIndentCount
	}
	return origColumn(in.opts, c)
}

// continues reports whether the line starting at c carries on the statement
// of the line above.
func (in *indenter) continues(i chunk.Index, c *chunk.Chunk) bool {
	if c.Flags.Has(token.FlagStmtStart) || c.Kind.IsComment() {
		return false
	}
	p := in.l.Get(in.l.PrevCode(i))
	if p == nil || p.InPreproc() {
		return false
	}
	switch p.Kind {
	case token.Semicolon, token.BraceOpen, token.BraceClose, token.Comma,
		token.CaseColon, token.LabelColon, token.PrivateColon,
		token.SParenClose, token.Else, token.Do, token.Annotation:
		return false
	}
	// a function name on the line below its return type
	if n := in.l.Get(in.l.NextNC(i)); n != nil && n.Kind == token.FParenOpen &&
		(n.Parent == token.FuncDef || n.Parent == token.FuncProto || n.Parent == token.FuncClass) {
		return false
	}
	return true
}

// origColumn is the column a line-start chunk had in the input.
func origColumn(o *options.Config, c *chunk.Chunk) int {
	return c.LeadingWidth(o.InputTabSize) + 1
}
