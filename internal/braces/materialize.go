package braces

import (
	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/token"
)

// fullBrace returns the mod_full_brace_* option governing bodies of parent.
func fullBrace(opts *options.Config, parent token.Kind) options.IARF {
	switch parent {
	case token.If, token.Else:
		return opts.ModFullBraceIf
	case token.For:
		return opts.ModFullBraceFor
	case token.While:
		return opts.ModFullBraceWhile
	case token.Do:
		return opts.ModFullBraceDo
	}
	return options.Ignore
}

// Materialize inserts a brace pair for every virtual body Resolve found:
// real braces where mod_full_brace_* asks for them, zero-width virtual
// braces otherwise. With "remove", braces around a single simple statement
// become virtual.
func Materialize(ctx *state.Ctx) {
	removeBraces(ctx)
	for _, vb := range ctx.VBraces {
		insertBraces(ctx, vb)
	}
}

func insertBraces(ctx *state.Ctx, vb state.VBrace) {
	l := ctx.List
	if vb.After == 0 || vb.CloseAfter == 0 {
		return
	}
	closeAt := bodyEnd(l, vb.CloseAfter)

	// braces must not straddle a directive: each branch of a conditional
	// would see only one of them
	braced := fullBrace(ctx.Opts, vb.Parent).Adds()
	if braced && (len(vb.BranchEnds) > 0 || crossesDirective(l, vb.After, closeAt)) {
		braced = false
		ctx.Decide("braces.keep", "%s body at %d:%d spans a directive", vb.Parent, l.Get(vb.After).OrigLine, l.Get(vb.After).OrigCol)
	}
	open := synthetic(ctx, vb, l.Get(vb.After).Span, token.VBraceOpen)
	closing := synthetic(ctx, vb, l.Get(closeAt).Span, token.VBraceClose)
	if braced {
		open.Kind, open.Text = token.BraceOpen, "{"
		closing.Kind, closing.Text = token.BraceClose, "}"
	}
	oi := l.InsertAfter(vb.After, open)
	ci := l.InsertAfter(closeAt, closing)
	l.Get(oi).Match = ci
	l.Get(ci).Match = oi

	// the other branches close the same body; their closes point back at
	// the open, which stays matched with the #if branch
	for _, end := range vb.BranchEnds {
		at := bodyEnd(l, end)
		extra := l.InsertAfter(at, synthetic(ctx, vb, l.Get(at).Span, token.VBraceClose))
		l.Get(extra).Match = oi
	}

	if !braced {
		return
	}
	for i := l.Next(oi); i != ci && i != 0; i = l.Next(i) {
		l.Get(i).Level++
	}
	ctx.Stats.BracesAdded++
	ctx.Decide("braces.add", "%s body after %d:%d", vb.Parent, l.Get(vb.After).OrigLine, l.Get(vb.After).OrigCol)
}

// bodyEnd moves past a trailing comment, which stays inside the body.
func bodyEnd(l *chunk.List, end chunk.Index) chunk.Index {
	if n := l.Get(l.Next(end)); n != nil && n.Kind.IsComment() {
		return n.ID
	}
	return end
}

func crossesDirective(l *chunk.List, from, to chunk.Index) bool {
	for i := l.Next(from); i != 0; i = l.Next(i) {
		if l.Get(i).InPreproc() {
			return true
		}
		if i == to {
			return false
		}
	}
	return false
}

func synthetic(ctx *state.Ctx, vb state.VBrace, at source.Span, kind token.Kind) chunk.Chunk {
	return chunk.Chunk{
		Kind:       kind,
		Parent:     vb.Parent,
		Flags:      token.FlagSynthetic,
		Span:       source.Span{File: at.File, Start: at.End, End: at.End},
		Level:      vb.Level,
		BraceLevel: vb.BraceLevel,
		PPLevel:    vb.PPLevel,
	}
}

func removeBraces(ctx *state.Ctx) {
	l := ctx.List
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind != token.BraceOpen || c.Match == 0 || !fullBrace(ctx.Opts, c.Parent).Removes() {
			continue
		}
		if !singleStatement(l, i, c.Match) {
			continue
		}
		closing := l.Get(c.Match)
		c.Kind, c.Text = token.VBraceOpen, ""
		closing.Kind, closing.Text = token.VBraceClose, ""
		for j := l.Next(i); j != closing.ID; j = l.Next(j) {
			l.Get(j).Level--
		}
		ctx.Stats.BracesRemoved++
		ctx.Decide("braces.remove", "%s body at %d:%d", c.Parent, c.OrigLine, c.OrigCol)
	}
}

// singleStatement reports whether the body between open and closing is one
// plain statement ending in ';', with nothing that could change meaning or
// lose text once the braces are gone.
func singleStatement(l *chunk.List, open, closing chunk.Index) bool {
	base := l.Get(open).ParenLevel
	semis := 0
	var last chunk.Index
	for j := l.Next(open); j != closing && j != 0; j = l.Next(j) {
		d := l.Get(j)
		switch {
		case d.Kind == token.Newline:
			continue
		case d.Kind.IsComment(), d.InPreproc():
			return false
		case d.Kind.IsBraceOpen(), d.Kind.IsBraceClose():
			return false
		case isStatement(d.Kind), d.Kind == token.Case, d.Kind == token.Default,
			d.Kind == token.LabelColon, d.Kind == token.CaseColon:
			return false
		case d.Kind == token.Semicolon && d.ParenLevel == base:
			semis++
		}
		last = j
	}
	return semis == 1 && last != 0 && l.Get(last).Kind == token.Semicolon
}
