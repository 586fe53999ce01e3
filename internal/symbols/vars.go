package symbols

import (
	"reform/internal/chunk"
	"reform/internal/dialect"
	"reform/internal/token"
)

// markVars finds variable declarations at statement starts, in parameter
// lists and in the head of for/catch/using.
func (k *classifier) markVars() {
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.InPreproc() {
			return
		}
		switch {
		case c.Flags.Has(token.FlagStmtStart):
			k.declaration(i, false)
		case c.Kind == token.FParenOpen && c.Flags.Has(token.FlagParamList):
			for j := k.next(i); j != 0 && j != c.Match; {
				end := k.declaration(j, true)
				if end == 0 {
					end = k.skipToComma(j, c.Match)
				}
				if k.kindOf(end) != token.Comma {
					break
				}
				j = k.next(end)
			}
		case c.Kind == token.SParenOpen && (c.Parent == token.For || c.Parent == token.Catch || c.Parent == token.Lock):
			k.declaration(k.next(i), c.Parent == token.Catch)
		}
	})
}

// skipToComma returns the next ',' at the paren's own depth, or closing.
func (k *classifier) skipToComma(j, closing chunk.Index) chunk.Index {
	for ; j != 0 && j != closing; j = k.next(j) {
		c := k.get(j)
		if c.Kind == token.Comma {
			return j
		}
		if c.Kind.IsOpen() && c.Match != 0 {
			j = c.Match
		}
	}
	return closing
}

// declaration parses "quals type declarator {, declarator}" starting at i.
// It returns the chunk that ended the declaration (',' for a parameter,
// ';' or ')' otherwise), or 0 when i does not start a declaration.
func (k *classifier) declaration(i chunk.Index, param bool) chunk.Index {
	j := i
	typedef := false
	var lastQual chunk.Index
	var typeChunks []chunk.Index

	// qualifiers and specifiers
quals:
	for j != 0 {
		c := k.get(j)
		switch c.Kind {
		case token.Qualifier, token.Access, token.Extern:
			lastQual = j
		case token.Typedef:
			typedef = true
		case token.Annotation:
			if n := k.get(k.next(j)); n != nil && n.Kind == token.ParenOpen && n.Match != 0 {
				j = n.Match
			}
		case token.String:
			// extern "C"
			if k.kindOf(k.prev(j)) != token.Extern {
				return 0
			}
		case token.Struct, token.Union, token.Enum, token.Class:
			typeChunks = append(typeChunks, j)
			n := k.next(j)
			if c.Kind == token.Enum && k.get(n).Is(token.Class, token.Struct) {
				n = k.next(n)
			}
			if k.get(n).Is(token.Word, token.Type) {
				typeChunks = append(typeChunks, n)
				n = k.next(n)
			}
			// skip a body or base list up to the body
			for nc := k.get(n); nc != nil && !nc.Is(token.BraceOpen, token.Semicolon); nc = k.get(n) {
				if nc.Is(token.Star, token.Amp, token.Word, token.ParenOpen, token.Assign, token.Comma, token.SquareOpen) {
					break
				}
				n = k.next(n)
			}
			if b := k.get(n); b != nil && b.Kind == token.BraceOpen {
				if b.Match == 0 {
					return 0
				}
				n = k.next(b.Match)
			}
			return k.declarators(n, typeChunks, typedef, param, i)
		default:
			break quals
		}
		j = k.next(j)
	}
	if j == 0 {
		return 0
	}

	c := k.get(j)
	switch {
	case c.Kind == token.Type:
		for k.get(j).Is(token.Type, token.Qualifier) {
			typeChunks = append(typeChunks, j)
			j = k.next(j)
		}
		// "int myint;" after a typedef taught us myint: the last type of
		// the run is the name
		if n := len(typeChunks); n > 1 {
			last := k.get(typeChunks[n-1])
			if last.Kind == token.Type && !token.IsTypeKeyword(last.Text, k.ctx.Lang) && validTerminator(k.get(j), param) {
				j = typeChunks[n-1]
				typeChunks = typeChunks[:n-1]
			}
		}
	case c.Kind == token.Word:
		for {
			typeChunks = append(typeChunks, j)
			j = k.next(j)
			jc := k.get(j)
			if jc != nil && jc.Kind == token.AngleOpen && jc.Match != 0 {
				typeChunks = append(typeChunks, j, jc.Match)
				j = k.next(jc.Match)
				jc = k.get(j)
			}
			if jc == nil {
				return 0
			}
			sep := jc.Kind == token.DCMember ||
				jc.Kind == token.Member && jc.Text == "." && k.ctx.Is(dialect.Java|dialect.CS|dialect.D)
			if !sep {
				break
			}
			typeChunks = append(typeChunks, j)
			j = k.next(j)
			if !k.get(j).Is(token.Word, token.Type) {
				return 0
			}
		}
	case lastQual != 0 && k.get(lastQual).Text == "auto":
		// auto x = ...
		typeChunks = append(typeChunks, lastQual)
	default:
		return 0
	}

	// int[] a, int? b, T const x
	for jc := k.get(j); jc != nil; jc = k.get(j) {
		if jc.Kind == token.TSquare || jc.Kind == token.Qualifier ||
			jc.Kind == token.Question && k.ctx.Is(dialect.CS) {
			typeChunks = append(typeChunks, j)
			j = k.next(j)
			continue
		}
		break
	}
	return k.declarators(j, typeChunks, typedef, param, i)
}

// declarators parses "*name[...] = init, &other" after a type. The type is
// only accepted once a declarator name with a valid terminator follows.
func (k *classifier) declarators(j chunk.Index, typeChunks []chunk.Index, typedef, param bool, start chunk.Index) chunk.Index {
	first := true
	for {
		var ptrs []chunk.Index
		for k.get(j).Is(token.Star, token.Amp, token.Bool, token.Caret, token.Qualifier) {
			if k.get(j).Kind != token.Qualifier {
				ptrs = append(ptrs, j)
			}
			j = k.next(j)
		}
		name := k.get(j)
		if name == nil || !name.Is(token.Word, token.Type) {
			// unnamed parameter: "int", "char *"
			if param && first && name != nil && name.Is(token.Comma, token.FParenClose) && len(typeChunks) > 0 {
				k.markType(typeChunks, ptrs)
				return j
			}
			return 0
		}
		if name.Kind == token.Type && !typedef && len(ptrs) == 0 && k.kindOf(typeChunks[len(typeChunks)-1]) != token.Type {
			return 0
		}
		end := k.next(j)
		ec := k.get(end)
		if ec == nil {
			return 0
		}
		// a function name is not a variable
		if ec.Kind == token.FParenOpen && !name.Flags.Has(token.FlagVarDef) {
			if first {
				k.markType(typeChunks, ptrs)
			}
			return 0
		}
		if !validTerminator(ec, param) {
			return 0
		}

		if first {
			k.markType(typeChunks, ptrs)
		} else {
			k.markPtrs(ptrs)
		}
		name.Flags = name.Flags.Set(token.FlagVarDef)
		if first {
			name.Flags = name.Flags.Set(token.FlagVarFirst)
		}
		if typedef {
			name.Kind, name.Parent = token.Type, token.Typedef
			k.types[name.Text] = true
		}
		first = false

		j = k.skipDeclaratorTail(end, param)
		jc := k.get(j)
		if jc == nil {
			return 0
		}
		if typedef && jc.Kind == token.Semicolon {
			for f := start; f != 0 && f != j; f = k.l.Next(f) {
				k.setFlag(f, token.FlagInTypedef)
			}
			k.setFlag(j, token.FlagInTypedef)
		}
		if jc.Kind != token.Comma || param {
			return j
		}
		j = k.next(j)
	}
}

func validTerminator(c *chunk.Chunk, param bool) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case token.Semicolon, token.Comma, token.Assign, token.SquareOpen, token.TSquare,
		token.BraceOpen, token.FParenOpen:
		return c.Kind != token.Assign || c.Text == "="
	case token.Colon, token.SParenClose:
		// bitfield, range-for, catch (E e)
		return true
	case token.FParenClose, token.ParenClose:
		return param
	}
	return false
}

// skipDeclaratorTail steps over array extents, a bitfield width, an
// initializer or constructor arguments, and returns the ',' or terminator.
func (k *classifier) skipDeclaratorTail(j chunk.Index, param bool) chunk.Index {
	for j != 0 {
		c := k.get(j)
		switch c.Kind {
		case token.Comma, token.Semicolon, token.FParenClose, token.ParenClose, token.SParenClose:
			return j
		case token.Colon:
			if k.get(k.next(j)).Is(token.Number, token.Word) {
				j = k.next(j)
			} else {
				// range-for: the rest belongs to the expression
				return j
			}
		case token.BraceClose:
			return j
		}
		if c.Kind.IsOpen() && c.Match != 0 {
			j = c.Match
		}
		j = k.next(j)
		if param && k.kindOf(j) == token.FParenClose {
			return j
		}
	}
	return 0
}

func (k *classifier) markType(typeChunks, ptrs []chunk.Index) {
	for _, t := range typeChunks {
		k.setFlag(t, token.FlagVarType)
	}
	k.markPtrs(ptrs)
}

func (k *classifier) markPtrs(ptrs []chunk.Index) {
	for _, p := range ptrs {
		c := k.get(p)
		switch c.Kind {
		case token.Star, token.Caret:
			c.Kind = token.PtrType
		case token.Amp, token.Bool:
			c.Kind = token.ByRef
		}
		c.Flags = c.Flags.Set(token.FlagVarType)
	}
}
