package symbols

import (
	"reform/internal/chunk"
	"reform/internal/dialect"
	"reform/internal/token"
)

// markFunctions classifies every plain "(" by what precedes and follows it:
// function definitions, prototypes, calls, constructor-style variables,
// function pointer types, sizeof and casts.
func (k *classifier) markFunctions() {
	var bodies []token.Kind
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		switch c.Kind {
		case token.BraceOpen:
			if !c.InPreproc() {
				parent := c.Parent
				// a bare block inside a function is still a function body
				if n := len(bodies); parent == token.Invalid && n > 0 && !isScopeBody(bodies[n-1]) {
					parent = token.FuncDef
				}
				bodies = append(bodies, parent)
			}
			return
		case token.BraceClose:
			if !c.InPreproc() && len(bodies) > 0 {
				bodies = bodies[:len(bodies)-1]
			}
			return
		case token.ParenOpen:
		default:
			return
		}
		if c.Match == 0 {
			return
		}
		inBody := false
		if n := len(bodies); n > 0 {
			inBody = !isScopeBody(bodies[n-1])
		}

		p := k.get(k.prev(i))
		if p != nil && p.Is(token.Word, token.Type, token.AngleClose) && !c.InPreproc() && k.funcType(i) {
			return
		}
		switch {
		case p == nil:
			k.castOrGroup(i)
		case p.Kind == token.MacroFunc:
			c.Parent = token.MacroFunc
			k.get(c.Match).Parent = token.MacroFunc
		case p.Kind == token.Sizeof:
			c.Parent = token.Sizeof
			k.get(c.Match).Parent = token.Sizeof
		case p.Kind == token.Word, p.Kind == token.OperatorVal,
			p.Kind == token.AngleClose && k.kindOf(k.prev(p.Match)) == token.Word,
			p.Kind == token.Type && k.ctorOrOperator(p.ID):
			k.function(i, p.ID, inBody)
		default:
			k.castOrGroup(i)
		}
	})
}

// isScopeBody reports whether a brace with this parent holds declarations
// rather than statements.
func isScopeBody(parent token.Kind) bool {
	switch parent {
	case token.Invalid, token.Struct, token.Union, token.Class, token.Namespace,
		token.Extern, token.Enum:
		return true
	}
	return false
}

// nameOf steps from the chunk before "(" to the function name itself.
func (k *classifier) nameOf(before chunk.Index) chunk.Index {
	c := k.get(before)
	switch c.Kind {
	case token.AngleClose:
		return k.prev(c.Match)
	case token.OperatorVal:
		j := before
		for k.kindOf(j) == token.OperatorVal {
			j = k.prev(j)
		}
		return j
	case token.Type:
		// operator bool()
		if p := k.prev(before); k.kindOf(p) == token.Operator {
			return p
		}
	}
	return before
}

// ctorOrOperator reports whether a type name before "(" is really a
// constructor, destructor or conversion operator name.
func (k *classifier) ctorOrOperator(t chunk.Index) bool {
	switch k.kindOf(k.prev(t)) {
	case token.Operator, token.Inv, token.DCMember:
		return true
	}
	tc := k.get(t)
	return !token.IsTypeKeyword(tc.Text, k.ctx.Lang) && k.enclosingClass(t) == tc.Text
}

// chainStart walks back over A::B:: and a destructor '~'.
func (k *classifier) chainStart(name chunk.Index) chunk.Index {
	start := name
	for {
		p := k.prev(start)
		pc := k.get(p)
		if pc == nil {
			return start
		}
		switch pc.Kind {
		case token.Inv:
			start = p
			continue
		case token.DCMember:
			start = p
			if pp := k.get(k.prev(p)); pp != nil {
				switch pp.Kind {
				case token.Word, token.Type:
					start = pp.ID
				case token.AngleClose:
					if pp.Match != 0 {
						start = k.prev(pp.Match)
					}
				}
			}
			continue
		}
		return start
	}
}

// isCtorName reports A::A, ~A, or a name equal to the enclosing class.
func (k *classifier) isCtorName(name, start chunk.Index) bool {
	nc := k.get(name)
	if nc.Kind != token.Word && nc.Kind != token.Type {
		return false
	}
	if k.kindOf(k.prev(name)) == token.Inv {
		return true
	}
	if p := k.prev(name); k.kindOf(p) == token.DCMember {
		if q := k.get(k.prev(p)); q != nil && q.Text == nc.Text {
			return true
		}
	}
	if start != name {
		return false
	}
	cls := k.enclosingClass(name)
	return cls != "" && cls == nc.Text
}

// enclosingClass returns the name of the struct/class whose body holds i.
func (k *classifier) enclosingClass(i chunk.Index) string {
	level := k.get(i).Level
	for j := k.l.Prev(i); j != 0; j = k.l.Prev(j) {
		c := k.get(j)
		if c.Kind != token.BraceOpen || c.Level >= level || c.InPreproc() {
			continue
		}
		if c.Parent != token.Class && c.Parent != token.Struct {
			return ""
		}
		for p := k.prev(j); p != 0; p = k.prev(p) {
			pc := k.get(p)
			if pc.Is(token.Class, token.Struct) {
				if n := k.get(k.next(p)); n != nil && n.Is(token.Word, token.Type) {
					return n.Text
				}
				return ""
			}
			if pc.Is(token.Semicolon, token.BraceClose, token.BraceOpen) {
				return ""
			}
		}
		return ""
	}
	return ""
}

// declContext reports whether the chunk before a function chain makes it a
// declaration: a type, a pointer/reference declarator, or a qualifier.
func (k *classifier) declContext(start chunk.Index) bool {
	p := k.get(k.prev(start))
	if p == nil {
		return false
	}
	switch p.Kind {
	case token.Type, token.Qualifier, token.AngleClose, token.Access, token.TSquare,
		token.Annotation, token.Extern:
		return true
	case token.Word:
		return true
	case token.Star, token.Amp, token.Bool, token.Caret:
		q := k.get(k.prev(p.ID))
		for q != nil && q.Is(token.Star, token.Amp, token.Qualifier) {
			q = k.get(k.prev(q.ID))
		}
		return q != nil && (q.Is(token.Type, token.AngleClose) || q.Kind == token.Word && k.types[q.Text] ||
			q.Kind == token.Word && q.Flags.Has(token.FlagStmtStart))
	}
	return false
}

// exprContext reports whether the chunk before a function chain places it
// inside an expression.
func (k *classifier) exprContext(start chunk.Index) bool {
	p := k.get(k.prev(start))
	if p == nil {
		return false
	}
	switch p.Kind {
	case token.New, token.Assign, token.Return, token.Member, token.Compare, token.Arith,
		token.Bool, token.Question, token.Throw, token.ParenOpen, token.FParenOpen,
		token.SParenOpen, token.SquareOpen, token.Comma, token.Not, token.Colon:
		return true
	}
	return false
}

// skipFuncTail returns the first chunk after a parameter list that is not
// part of the signature: qualifiers, noexcept, throws, trailing return
// types, "= 0" and friends. pure reports "= 0/default/delete".
func (k *classifier) skipFuncTail(closing chunk.Index) (at chunk.Index, pure bool) {
	j := k.next(closing)
	for j != 0 {
		c := k.get(j)
		switch {
		case c.Kind == token.Qualifier:
		case c.Kind == token.Word && (c.Text == "noexcept" || c.Text == "override" || c.Text == "final" ||
			c.Text == "throw" || c.Text == "where"):
			if n := k.get(k.next(j)); n != nil && n.Kind == token.ParenOpen && n.Match != 0 {
				j = n.Match
			}
		case c.Kind == token.Throw:
			if n := k.get(k.next(j)); n != nil && n.Kind == token.ParenOpen && n.Match != 0 {
				j = n.Match
			}
		case c.Kind == token.Word && c.Text == "throws":
			// Java: throws A, B.C
			for n := k.get(k.next(j)); n != nil && n.Is(token.Word, token.Type, token.Comma, token.Member); n = k.get(k.next(j)) {
				j = n.ID
			}
		case c.Kind == token.Member && c.Text == "->":
			// trailing return type
			for n := k.get(k.next(j)); n != nil && !n.Is(token.BraceOpen, token.Semicolon, token.Assign); n = k.get(k.next(j)) {
				if n.Kind == token.AngleOpen && n.Match != 0 {
					j = n.Match
					continue
				}
				j = n.ID
			}
		case c.Kind == token.Assign && c.Text == "=":
			n := k.get(k.next(j))
			if n != nil && (n.Text == "0" || n.Text == "default" || n.Kind == token.Delete) {
				return k.next(n.ID), true
			}
			return j, false
		default:
			return j, false
		}
		j = k.next(j)
	}
	return 0, false
}

// function classifies the paren at open whose preceding chunk is before.
func (k *classifier) function(open, before chunk.Index, inBody bool) {
	oc := k.get(open)
	closing := oc.Match
	name := k.nameOf(before)
	start := k.chainStart(name)
	after, pure := k.skipFuncTail(closing)
	ac := k.get(after)

	kind := token.FuncCall
	ctorVar := false
	switch {
	case oc.InPreproc():
		// macro bodies only hold calls
	case ac != nil && ac.Kind == token.BraceOpen && !k.exprContext(start):
		kind = token.FuncDef
		k.setBraceParent(after, token.FuncDef)
	case ac != nil && ac.Kind == token.Colon && k.ctx.Is(dialect.CPP) && k.isCtorName(name, start):
		kind = token.FuncDef
		if b := k.initListBrace(after); b != 0 {
			k.setBraceParent(b, token.FuncDef)
		}
	case ac != nil && (ac.Is(token.Semicolon, token.Comma) || pure) && k.declContext(start) &&
		!k.exprContext(start):
		switch {
		case inBody && !pure && !k.paramLike(open):
			ctorVar = true
		default:
			kind = token.FuncProto
		}
	case ac != nil && ac.Is(token.Semicolon, token.BraceClose) && !inBody && k.isCtorName(name, start) &&
		!k.exprContext(start):
		// constructor declaration in a class body
		kind = token.FuncProto
	}

	if kind != token.FuncCall && k.isCtorName(name, start) {
		if kind == token.FuncProto {
			kind = token.FuncClass
		} else {
			k.get(name).Parent = token.FuncClass
		}
	}

	if ctorVar {
		nc := k.get(name)
		nc.Flags = nc.Flags.Set(token.FlagVarDef)
		k.ctx.Decide("symbols.ctor-var", "%s at %d:%d", nc.Text, nc.OrigLine, nc.OrigCol)
	}

	if nc := k.get(name); nc.Parent != token.FuncClass {
		nc.Parent = kind
	}
	cc := k.get(closing)
	oc.Kind, cc.Kind = token.FParenOpen, token.FParenClose
	oc.Parent, cc.Parent = kind, kind
	if kind != token.FuncCall {
		oc.Flags = oc.Flags.Set(token.FlagParamList)
	}
	k.ctx.Stats.Retyped++
	if kind == token.FuncCall && !oc.InPreproc() && k.declContext(start) {
		k.ctx.Decide("symbols.call", "%s at %d:%d treated as a call", k.get(name).Text, k.get(name).OrigLine, k.get(name).OrigCol)
	}
}

// initListBrace walks a constructor initializer list "a(1), b{2}" to the
// body brace.
func (k *classifier) initListBrace(colon chunk.Index) chunk.Index {
	for j := k.next(colon); j != 0; j = k.next(j) {
		c := k.get(j)
		switch c.Kind {
		case token.BraceOpen:
			// b{2} or the body
			if p := k.get(k.prev(j)); p != nil && p.Is(token.Word, token.Type, token.AngleClose) && c.Match != 0 {
				j = c.Match
				continue
			}
			return j
		case token.ParenOpen:
			if c.Match == 0 {
				return 0
			}
			j = c.Match
		case token.Word, token.Type, token.Comma, token.DCMember, token.AngleOpen, token.AngleClose, token.Ellipsis:
		default:
			return 0
		}
	}
	return 0
}

// paramLike reports whether the contents of a paren look like a parameter
// list: empty, void, or starting with a type.
func (k *classifier) paramLike(open chunk.Index) bool {
	oc := k.get(open)
	first := k.get(k.next(open))
	if first == nil || first.ID == oc.Match {
		return true
	}
	switch first.Kind {
	case token.Type, token.Qualifier, token.Struct, token.Union, token.Enum, token.Ellipsis:
		return true
	case token.Word:
		n := k.get(k.next(first.ID))
		return k.types[first.Text] || n != nil && (n.Kind == token.Word || n.Kind == token.DCMember || n.Kind == token.AngleOpen)
	}
	return false
}

// funcType recognises "T (*name)(args)" and "T (^name)(args)". The first
// paren pair gets FuncType, the second becomes the parameter list.
func (k *classifier) funcType(open chunk.Index) bool {
	oc := k.get(open)
	star := k.next(open)
	if !k.get(star).Is(token.Star, token.Caret, token.Amp) {
		return false
	}
	name := k.next(star)
	for k.kindOf(name) == token.Star {
		name = k.next(name)
	}
	isName := k.kindOf(name) == token.Word || k.kindOf(name) == token.Type && k.get(name).Parent == token.Typedef
	if isName && k.next(name) != oc.Match {
		// (*name[3]) and friends
		if n := k.get(k.next(name)); n == nil || !n.Is(token.SquareOpen, token.TSquare) {
			return false
		}
	}
	if !isName {
		return false
	}
	params := k.get(k.next(oc.Match))
	if params == nil || params.Kind != token.ParenOpen || params.Match == 0 {
		return false
	}
	if !k.declContext(open) {
		return false
	}

	for s := star; s != name; s = k.next(s) {
		k.get(s).Kind = token.PtrType
	}
	nc := k.get(name)
	nc.Flags = nc.Flags.Set(token.FlagVarDef)
	if k.get(k.prev(open)).Flags.Has(token.FlagStmtStart) || k.kindOf(k.prev(k.prev(open))) == token.Typedef {
		nc.Flags = nc.Flags.Set(token.FlagVarFirst)
	}
	oc.Parent = token.FuncType
	k.get(oc.Match).Parent = token.FuncType
	pc := k.get(params.Match)
	params.Kind, pc.Kind = token.FParenOpen, token.FParenClose
	params.Parent, pc.Parent = token.FuncType, token.FuncType
	params.Flags = params.Flags.Set(token.FlagParamList)
	k.ctx.Stats.Retyped++
	return true
}

// castOrGroup marks "(type)x" casts. A paren holding a known type is a
// strong cast; a lone unknown word only casts when a value follows.
func (k *classifier) castOrGroup(open chunk.Index) {
	oc := k.get(open)
	if p := k.get(k.prev(open)); p != nil && (isValue(p) || p.Kind == token.AngleClose) {
		return
	}
	strong, words := false, 0
	for j := k.next(open); j != oc.Match; j = k.next(j) {
		c := k.get(j)
		if c == nil {
			return
		}
		switch c.Kind {
		case token.Type:
			strong = true
		case token.Word:
			words++
			if k.types[c.Text] {
				strong = true
			}
		case token.Qualifier, token.Struct, token.Union, token.Enum, token.DCMember:
		case token.Star, token.Amp, token.Caret, token.TSquare:
			// (T *) is a cast whatever T is, (a * b) is not
			nx := k.get(k.next(j))
			if nx == nil || nx.ID != oc.Match && !nx.Is(token.Star, token.Amp, token.Caret, token.Qualifier) {
				return
			}
			if words == 1 || strong {
				strong = true
				continue
			}
			return
		case token.AngleOpen:
			strong = true
			j = c.Match
		case token.Member:
			if c.Text != "." || !k.ctx.Is(dialect.Java|dialect.CS|dialect.D) {
				return
			}
		default:
			return
		}
	}
	if words > 1 && !strong {
		return
	}
	n := k.get(k.next(oc.Match))
	if n == nil {
		return
	}
	castable := n.Is(token.Word, token.Number, token.String, token.This, token.Type)
	if strong {
		castable = castable || n.Is(token.ParenOpen, token.Not, token.Inv, token.Star, token.Amp,
			token.Minus, token.Plus, token.Incdec, token.Sizeof, token.New, token.BraceOpen)
	}
	if !castable || (!strong && words != 1) {
		return
	}

	for j := k.next(open); j != oc.Match; j = k.next(j) {
		c := k.get(j)
		switch c.Kind {
		case token.Star, token.Caret:
			c.Kind = token.PtrType
		case token.Amp:
			c.Kind = token.ByRef
		}
	}
	oc.Parent = token.Cast
	k.get(oc.Match).Parent = token.Cast
	k.ctx.Stats.Retyped++
	if !strong {
		k.ctx.Decide("symbols.cast", "weak cast at %d:%d", oc.OrigLine, oc.OrigCol)
	}
}
