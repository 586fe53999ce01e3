// Package labels gives every ':' its meaning.
//
// Combine runs after the classifier, so statement starts and body flags are
// known. A colon that fits none of the recognised shapes becomes a bit
// colon; that default covers bitfields, range-for, D import bindings and C#
// named arguments alike and is never reported.
package labels

import (
	"reform/internal/chunk"
	"reform/internal/state"
	"reform/internal/token"
)

type question struct {
	at                chunk.Index
	level, parenLevel int
	pp                bool
}

// Combine re-types every Colon and the label words in front of label colons.
func Combine(ctx *state.Ctx) {
	l := ctx.List
	var pending []question
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		switch c.Kind {
		case token.Question:
			pending = append(pending, question{i, c.Level, c.ParenLevel, c.InPreproc()})
		case token.Semicolon, token.BraceOpen, token.BraceClose:
			// a ternary never spans these
			pending = dropAbove(pending, c)
		case token.Colon:
			if n := len(pending); n > 0 {
				q := pending[n-1]
				if q.level == c.Level && q.parenLevel == c.ParenLevel && q.pp == c.InPreproc() {
					pending = pending[:n-1]
					c.Kind, c.Parent = token.CondColon, token.Question
					continue
				}
			}
			classify(ctx, i)
		}
	}
}

// dropAbove forgets the questions a statement boundary at c has closed.
func dropAbove(pending []question, c *chunk.Chunk) []question {
	for len(pending) > 0 {
		q := pending[len(pending)-1]
		if q.level < c.Level || q.level == c.Level && q.parenLevel < c.ParenLevel {
			break
		}
		pending = pending[:len(pending)-1]
	}
	return pending
}

func classify(ctx *state.Ctx, i chunk.Index) {
	l := ctx.List
	c := l.Get(i)
	start := statementStart(l, i)
	sc := l.Get(start)
	prev := l.Get(l.PrevNC(i))

	switch {
	case sc != nil && sc.Is(token.Case, token.Default):
		c.Kind, c.Parent = token.CaseColon, sc.Kind
	case sc != nil && sc.Kind == token.Access && l.NextNC(start) == i:
		c.Kind, c.Parent = token.PrivateColon, token.Access
	case sc != nil && declaresClass(l, start, i):
		c.Kind, c.Parent = token.ClassColon, token.Class
	case prev != nil && prev.Kind == token.FParenClose &&
		(prev.Parent == token.FuncDef || prev.Parent == token.FuncClass || prev.Parent == token.FuncProto):
		// constructor initializer list
		c.Kind, c.Parent = token.ClassColon, prev.Parent
	case sc != nil && start == prev.ID && sc.Kind == token.Word && sc.ParenLevel == 0 && !c.InPreproc() &&
		!sc.Flags.Any(token.FlagInStruct|token.FlagInClass|token.FlagInEnum):
		sc.Kind = token.Label
		c.Kind, c.Parent = token.LabelColon, token.Label
		ctx.Stats.Retyped++
	default:
		c.Kind = token.BitColon
		ctx.Decide("labels.bit-colon", "':' at %d:%d", c.OrigLine, c.OrigCol)
	}
}

// statementStart walks back from i over balanced brackets to the chunk that
// starts its statement, or 0 when a bracket i sits inside comes first.
func statementStart(l *chunk.List, i chunk.Index) chunk.Index {
	pp := l.Get(i).InPreproc()
	for j := l.PrevNC(i); j != 0; j = l.PrevNC(j) {
		c := l.Get(j)
		if c.InPreproc() != pp {
			if pp {
				return 0
			}
			continue
		}
		if c.Kind.IsClose() && c.Match != 0 {
			j = c.Match
			if l.Get(j).Flags.Has(token.FlagStmtStart) {
				return j
			}
			continue
		}
		if c.Flags.Has(token.FlagStmtStart) {
			return j
		}
		if c.Kind == token.Semicolon || c.Kind.IsOpen() {
			return 0
		}
	}
	return 0
}

// declaresClass reports whether the statement from start to the colon is a
// class, struct, union or enum head.
func declaresClass(l *chunk.List, start, colon chunk.Index) bool {
	for j := start; j != 0 && j != colon; j = l.NextNC(j) {
		if l.Get(j).Is(token.Class, token.Struct, token.Union, token.Enum) {
			return true
		}
	}
	return false
}
