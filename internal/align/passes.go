package align

import (
	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/state"
	"reform/internal/token"
)

// Preprocessor aligns the values of consecutive #define lines.
func Preprocessor(ctx *state.Ctx) {
	o := ctx.Opts
	if o.AlignPPDefineSpan <= 0 {
		return
	}
	l := ctx.List
	at := lines(l)
	s := NewStack(ctx, chunk.AlignPPDefine, o.AlignPPDefineSpan, 0)
	s.anyLevel = true
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind != token.Preproc || c.Parent != token.PpDefine {
			continue
		}
		if v := defineValue(l, i); v != 0 {
			s.Add(v, at[v], o.AlignPPDefineGap)
		}
	}
	s.Flush()
}

// defineValue returns the first chunk of the value of the #define at hash,
// or 0 when the value is empty or starts on a continued line.
func defineValue(l *chunk.List, hash chunk.Index) chunk.Index {
	dir := l.NextVisible(hash)
	name := l.NextVisible(dir)
	nc := l.Get(name)
	if nc == nil || !nc.Is(token.Macro, token.MacroFunc) || nc.NlBefore > 0 {
		return 0
	}
	anchor := name
	if nc.Kind == token.MacroFunc {
		if p := l.Get(l.NextVisible(name)); p != nil && p.Kind.IsParenOpen() && p.Match != 0 {
			anchor = p.Match
		}
	}
	v := l.Get(l.NextVisible(anchor))
	if v == nil || v.NlBefore > 0 || v.Kind == token.NlCont || !v.InPreproc() {
		return 0
	}
	return v.ID
}

// All runs the code alignment passes. Declarations go first, so a chunk
// they claim is not pulled into a later class.
func All(ctx *state.Ctx) {
	varDefs(ctx)
	assigns(ctx)
	typedefs(ctx)
}

func varDefs(ctx *state.Ctx) {
	o := ctx.Opts
	if o.AlignVarDefSpan <= 0 && o.AlignVarStructSpan <= 0 {
		return
	}
	l := ctx.List
	at := lines(l)
	plain := NewStack(ctx, chunk.AlignVarDef, o.AlignVarDefSpan, 0)
	members := NewStack(ctx, chunk.AlignVarDef, o.AlignVarStructSpan, 0)
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if !c.Flags.Has(token.FlagVarDef|token.FlagVarFirst) || c.ParenLevel > 0 || c.InPreproc() ||
			c.Parent == token.Typedef || c.Flags.Has(token.FlagInTypedef) {
			continue
		}
		target := declTarget(l, i, o.AlignVarDefStar)
		if target == 0 {
			continue
		}
		s := plain
		if c.Flags.Any(token.FlagInStruct | token.FlagInClass) {
			s = members
		}
		if s.span > 0 {
			s.Add(target, at[target], 1)
		}
	}
	plain.Flush()
	members.Flush()
}

// declTarget returns the chunk to align for the declared name at i: the
// name itself, or the first '*'/'&' in front of it. It returns 0 when the
// name does not follow its type on the same line.
func declTarget(l *chunk.List, i chunk.Index, nameOnly bool) chunk.Index {
	target := i
	for {
		c := l.Get(target)
		if c.NlBefore > 0 {
			return 0
		}
		p := l.Get(l.PrevVisible(target))
		if p == nil {
			return 0
		}
		if p.Is(token.PtrType, token.ByRef, token.Caret) && !nameOnly {
			target = p.ID
			continue
		}
		if p.Is(token.PtrType, token.ByRef, token.Caret) {
			// stars stay with the name; look past them for the type
			q := p
			for q != nil && q.Is(token.PtrType, token.ByRef, token.Caret) {
				q = l.Get(l.PrevVisible(q.ID))
			}
			if q == nil || !typeEnd(q) {
				return 0
			}
			return target
		}
		if !typeEnd(p) {
			return 0
		}
		return target
	}
}

func typeEnd(c *chunk.Chunk) bool {
	return c.Flags.Has(token.FlagVarType) || c.Is(token.Type, token.AngleClose, token.Qualifier, token.TSquare)
}

func assigns(ctx *state.Ctx) {
	o := ctx.Opts
	if o.AlignAssignSpan <= 0 && o.AlignEnumEquSpan <= 0 {
		return
	}
	gap := 1
	if o.SpAssign == options.Remove {
		gap = 0
	}
	l := ctx.List
	at := lines(l)
	plain := NewStack(ctx, chunk.AlignAssign, o.AlignAssignSpan, o.AlignAssignThresh)
	enums := NewStack(ctx, chunk.AlignEnumEqu, o.AlignEnumEquSpan, 0)
	lastLine := 0
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind != token.Assign || c.ParenLevel > 0 || c.InPreproc() || c.NlBefore > 0 {
			continue
		}
		// only the first '=' of a line
		if at[i] == lastLine {
			continue
		}
		lastLine = at[i]
		switch {
		case c.Flags.Has(token.FlagInEnum):
			if enums.span > 0 {
				enums.Add(i, at[i], gap)
			}
		case c.Flags.Has(token.FlagInArrayInit):
		default:
			if plain.span > 0 {
				plain.Add(i, at[i], gap)
			}
		}
	}
	plain.Flush()
	enums.Flush()
}

func typedefs(ctx *state.Ctx) {
	o := ctx.Opts
	if o.AlignTypedefSpan <= 0 {
		return
	}
	l := ctx.List
	at := lines(l)
	s := NewStack(ctx, chunk.AlignTypedef, o.AlignTypedefSpan, 0)
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind != token.Type || c.Parent != token.Typedef || c.ParenLevel > 0 || c.InPreproc() {
			continue
		}
		if target := declTarget(l, i, o.AlignVarDefStar); target != 0 {
			s.Add(target, at[target], max(o.AlignTypedefGap, 1))
		}
	}
	s.Flush()
}

// TrailingComments aligns comments that end code lines.
func TrailingComments(ctx *state.Ctx) {
	o := ctx.Opts
	if o.AlignRightCmtSpan <= 0 {
		return
	}
	gap := 1
	if o.SpBeforeTrCmt == options.Remove {
		gap = 0
	}
	l := ctx.List
	at := lines(l)
	s := NewStack(ctx, chunk.AlignTrailingComment, o.AlignRightCmtSpan, 0)
	s.anyLevel = true
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if c.Kind.IsComment() && c.Flags.Has(token.FlagRightComment) && c.NlBefore == 0 {
			s.Add(i, at[i], gap)
		}
	}
	s.Flush()
}

// BackslashNewline aligns the '\' of every continued line of a directive.
func BackslashNewline(ctx *state.Ctx) {
	gap := 1
	if ctx.Opts.SpBeforeNlCont == options.Remove {
		gap = 0
	}
	l := ctx.List
	at := lines(l)
	s := NewStack(ctx, chunk.AlignNlCont, 1, 0)
	s.anyLevel = true
	for i := l.Head(); i != 0; i = l.Next(i) {
		if l.Get(i).Kind == token.NlCont {
			s.Add(i, at[i], gap)
		}
	}
	s.Flush()
}
