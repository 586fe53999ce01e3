// Package cleanup rewrites token shapes the lexer cannot decide alone.
//
// Every rule looks at one chunk and its code neighbours and only re-types or
// flags; chunks are never created or removed here. Rules fire only on their
// own unconverted inputs, so running Tokens twice changes nothing.
package cleanup

import (
	"reform/internal/chunk"
	"reform/internal/dialect"
	"reform/internal/state"
	"reform/internal/token"
)

type rule struct {
	name  string
	langs dialect.Lang
	// match is called with a chunk that is neither a comment nor a newline.
	match func(ctx *state.Ctx, i chunk.Index) bool
	apply func(ctx *state.Ctx, i chunk.Index)
}

var rules = []rule{
	{name: "operator", langs: dialect.CPP | dialect.CS, match: matchOperator, apply: applyOperator},
	{name: "tsquare", langs: dialect.All, match: matchTSquare, apply: applyTSquare},
	{name: "else-if", langs: dialect.All, match: matchElseIf, apply: applyElseIf},
	{name: "type-run", langs: dialect.All, match: matchTypeRun, apply: applyTypeRun},
	{name: "annotation-interface", langs: dialect.Java, match: matchAtInterface, apply: applyAtInterface},
	{name: "synchronized", langs: dialect.Java, match: matchSynchronized, apply: retypeLock},
	{name: "using-statement", langs: dialect.CS, match: matchUsingStmt, apply: retypeLock},
}

// Tokens runs the rule table once over ctx.List, left to right.
func Tokens(ctx *state.Ctx) {
	l := ctx.List
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind == token.Newline || c.Kind.IsComment() {
			continue
		}
		for _, r := range rules {
			if !ctx.Is(r.langs) || !r.match(ctx, i) {
				continue
			}
			r.apply(ctx, i)
			ctx.Stats.Retyped++
			ctx.Decide("cleanup."+r.name, "%d:%d %q", c.OrigLine, c.OrigCol, c.Text)
		}
	}
}

func next(ctx *state.Ctx, i chunk.Index) *chunk.Chunk {
	return ctx.Get(ctx.List.NextNC(i))
}

func prev(ctx *state.Ctx, i chunk.Index) *chunk.Chunk {
	return ctx.Get(ctx.List.PrevNC(i))
}

// operator symbols: "operator +", "operator ()", "operator new[]".
func matchOperator(ctx *state.Ctx, i chunk.Index) bool {
	if ctx.Get(i).Kind != token.Operator {
		return false
	}
	n := next(ctx, i)
	if n == nil || n.Kind == token.OperatorVal {
		return false
	}
	switch {
	case n.Kind == token.ParenOpen:
		// operator() is only the call operator when ')' follows directly
		nn := next(ctx, n.ID)
		return nn != nil && nn.Kind == token.ParenClose
	case n.Kind == token.New || n.Kind == token.Delete:
		return true
	case n.Kind.IsWordLike(), n.Kind == token.String:
		// conversion operators and operator"" keep their kinds
		return false
	}
	return true
}

func applyOperator(ctx *state.Ctx, i chunk.Index) {
	n := next(ctx, i)
	n.Kind = token.OperatorVal
	n.Parent = token.Operator
	switch {
	case n.Text == "(":
		nn := next(ctx, n.ID)
		nn.Kind = token.OperatorVal
		nn.Parent = token.Operator
	case n.Text == "new" || n.Text == "delete":
		if nn := next(ctx, n.ID); nn != nil && nn.Kind == token.TSquare {
			nn.Kind = token.OperatorVal
			nn.Parent = token.Operator
		}
	}
}

// new[] / delete[]: the '[]' the lexer glued belongs to the keyword.
func matchTSquare(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	if c.Kind != token.TSquare || c.Parent != token.Invalid {
		return false
	}
	p := prev(ctx, i)
	return p != nil && (p.Kind == token.New || p.Kind == token.Delete)
}

func applyTSquare(ctx *state.Ctx, i chunk.Index) {
	c := ctx.Get(i)
	c.Parent = prev(ctx, i).Kind
}

func matchElseIf(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	if c.Kind != token.If || c.Flags.Has(token.FlagElseIf) {
		return false
	}
	p := ctx.List.PrevNC(i)
	return p != 0 && ctx.Get(p).Kind == token.Else && !ctx.List.NewlineBetween(p, i)
}

func applyElseIf(ctx *state.Ctx, i chunk.Index) {
	c := ctx.Get(i)
	c.Flags = c.Flags.Set(token.FlagElseIf)
}

// "unsigned long int": every built-in type keyword after the first one is
// part of the same type.
func matchTypeRun(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	if c.Kind != token.Type || c.Flags.Has(token.FlagTypeRun) || !token.IsTypeKeyword(c.Text, ctx.Lang) {
		return false
	}
	p := prev(ctx, i)
	return p != nil && p.Kind == token.Type && token.IsTypeKeyword(p.Text, ctx.Lang)
}

func applyTypeRun(ctx *state.Ctx, i chunk.Index) {
	c := ctx.Get(i)
	c.Flags = c.Flags.Set(token.FlagTypeRun)
}

func matchAtInterface(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	return c.Kind == token.Annotation && c.Text == "@interface"
}

func applyAtInterface(ctx *state.Ctx, i chunk.Index) {
	ctx.Get(i).Kind = token.Class
}

// atStatementStart reports whether i can begin a statement.
func atStatementStart(ctx *state.Ctx, i chunk.Index) bool {
	p := prev(ctx, i)
	if p == nil {
		return true
	}
	switch p.Kind {
	case token.Semicolon, token.BraceOpen, token.BraceClose, token.Colon, token.Else, token.Do:
		return true
	case token.ParenClose:
		// if (x) synchronized (y) { }
		return true
	}
	return false
}

func matchSynchronized(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	if c.Kind != token.Qualifier || c.Text != "synchronized" {
		return false
	}
	n := next(ctx, i)
	return n != nil && n.Kind == token.ParenOpen && atStatementStart(ctx, i)
}

// using (var r = open()) { } is a block statement in C#, not a directive.
func matchUsingStmt(ctx *state.Ctx, i chunk.Index) bool {
	c := ctx.Get(i)
	if c.Kind != token.Using {
		return false
	}
	n := next(ctx, i)
	return n != nil && n.Kind == token.ParenOpen && atStatementStart(ctx, i)
}

func retypeLock(ctx *state.Ctx, i chunk.Index) {
	ctx.Get(i).Kind = token.Lock
}
