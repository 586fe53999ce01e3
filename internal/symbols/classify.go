// Package symbols re-types chunks whose lexical class alone is ambiguous.
//
// Classify runs a fixed sequence of passes over the resolved stream. Each
// pass only looks at levels and parents the earlier ones produced; where a
// construct stays ambiguous the pass takes the documented default (a call
// rather than a declaration, a bit colon rather than a label) and records
// the choice as a trace decision, never as a diagnostic.
package symbols

import (
	"reform/internal/chunk"
	"reform/internal/state"
	"reform/internal/token"
)

type classifier struct {
	ctx *state.Ctx
	l   *chunk.List
	// types holds user type keywords plus names learned from typedef,
	// struct, union, enum and class declarations.
	types map[string]bool
}

// Classify runs every pass in order.
func Classify(ctx *state.Ctx) {
	k := &classifier{ctx: ctx, l: ctx.List, types: make(map[string]bool)}
	for _, t := range ctx.Opts.Types {
		k.types[t] = true
	}

	k.learnTypes()
	k.markAngles()
	k.markStatements()
	k.markQualified()
	k.markTypeBodies()
	k.markFunctions()
	k.markVars()
	k.markBraceParents()
	k.markOperators()
	k.propagateBodyFlags()
}

// next returns the next code chunk in the same context: code skips directive
// lines, a directive line ends at its last chunk.
func (k *classifier) next(i chunk.Index) chunk.Index {
	pp := k.l.Get(i).InPreproc()
	for j := k.l.Next(i); j != 0; j = k.l.Next(j) {
		c := k.l.Get(j)
		if pp && !c.InPreproc() {
			return 0
		}
		if c.Kind == token.Newline || c.Kind.IsComment() || c.Kind == token.NlCont {
			continue
		}
		if !pp && c.InPreproc() {
			continue
		}
		return j
	}
	return 0
}

// prev mirrors next.
func (k *classifier) prev(i chunk.Index) chunk.Index {
	pp := k.l.Get(i).InPreproc()
	for j := k.l.Prev(i); j != 0; j = k.l.Prev(j) {
		c := k.l.Get(j)
		if pp && !c.InPreproc() {
			return 0
		}
		if c.Kind == token.Newline || c.Kind.IsComment() || c.Kind == token.NlCont {
			continue
		}
		if !pp && c.InPreproc() {
			continue
		}
		return j
	}
	return 0
}

func (k *classifier) get(i chunk.Index) *chunk.Chunk { return k.l.Get(i) }

func (k *classifier) kindOf(i chunk.Index) token.Kind {
	if c := k.l.Get(i); c != nil {
		return c.Kind
	}
	return token.Invalid
}

// code iterates code chunks in document order, directives included.
func (k *classifier) code(yield func(i chunk.Index, c *chunk.Chunk)) {
	for i := k.l.Head(); i != 0; i = k.l.Next(i) {
		c := k.l.Get(i)
		if c.Kind == token.Newline || c.Kind.IsComment() || c.Kind == token.NlCont {
			continue
		}
		yield(i, c)
	}
}

func (k *classifier) setFlag(i chunk.Index, f token.Flags) {
	if c := k.l.Get(i); c != nil {
		c.Flags = c.Flags.Set(f)
	}
}

// isValue reports whether c ends an operand, making a following * & - +
// binary.
func isValue(c *chunk.Chunk) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case token.Word, token.Number, token.String, token.This, token.Macro,
		token.SquareClose, token.TSquare, token.IncdecAfter, token.FParenClose:
		return true
	case token.ParenClose:
		return c.Parent != token.Cast
	}
	return false
}

// typeLike reports whether c can be (part of) a type name.
func (k *classifier) typeLike(c *chunk.Chunk) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case token.Type, token.Qualifier, token.AngleClose:
		return true
	case token.Word:
		return k.types[c.Text]
	}
	return false
}
