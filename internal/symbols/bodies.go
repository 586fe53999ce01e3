package symbols

import (
	"reform/internal/chunk"
	"reform/internal/token"
)

// markBraceParents gives the braces nothing else claimed a parent:
// initializer lists become Assign.
func (k *classifier) markBraceParents() {
	var stack []token.Kind
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.InPreproc() {
			return
		}
		switch c.Kind {
		case token.BraceClose:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			return
		case token.BraceOpen:
		default:
			return
		}
		if c.Parent == token.Invalid && k.initializer(i, stack) {
			k.setBraceParent(i, token.Assign)
		}
		stack = append(stack, c.Parent)
	})
}

func (k *classifier) initializer(i chunk.Index, stack []token.Kind) bool {
	p := k.get(k.prev(i))
	if p == nil {
		return false
	}
	switch p.Kind {
	case token.Assign, token.Return, token.TSquare, token.SquareClose:
		return true
	case token.BraceOpen, token.Comma:
		// nested initializer or a braced argument
		if n := len(stack); n > 0 && stack[n-1] == token.Assign {
			return true
		}
		return p.Kind == token.Comma && p.ParenLevel > 0
	case token.FParenOpen, token.ParenOpen:
		return true
	case token.Word, token.Type:
		// T v{1}, new T{...}
		return p.Flags.Has(token.FlagVarDef) || k.kindOf(k.prev(p.ID)) == token.New
	case token.AngleClose:
		return k.kindOf(k.prev(k.prev(p.Match))) == token.New
	}
	return false
}

// propagateBodyFlags copies struct/enum/class/initializer/call/sparen
// context onto every chunk inside the matching brackets.
func (k *classifier) propagateBodyFlags() {
	stack := []token.Flags{0}
	for i := k.l.Head(); i != 0; i = k.l.Next(i) {
		c := k.get(i)
		if c.InPreproc() {
			continue
		}
		if c.Kind.IsClose() && c.Kind != token.AngleClose {
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
		top := stack[len(stack)-1]
		c.Flags = c.Flags.Set(top)
		if !c.Kind.IsOpen() || c.Kind == token.AngleOpen {
			continue
		}
		inner := top
		switch {
		case c.Kind == token.BraceOpen:
			switch c.Parent {
			case token.Enum:
				inner = inner.Set(token.FlagInEnum)
			case token.Struct, token.Union:
				inner = inner.Set(token.FlagInStruct)
			case token.Class:
				inner = inner.Set(token.FlagInClass)
			case token.Assign:
				inner = inner.Set(token.FlagInArrayInit)
			case token.FuncDef:
				// a function body is not inside its class or struct
				inner = inner.Clear(token.FlagInStruct | token.FlagInClass | token.FlagInEnum)
			}
		case c.Kind == token.FParenOpen && c.Parent == token.FuncCall:
			inner = inner.Set(token.FlagInFcnCall)
		case c.Kind == token.SParenOpen:
			inner = inner.Set(token.FlagInSParen)
		}
		stack = append(stack, inner)
	}
}
