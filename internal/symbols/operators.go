package symbols

import (
	"reform/internal/chunk"
	"reform/internal/token"
)

// markOperators decides between the unary, binary and declarator meanings
// of * & - + ^ and the two positions of ++/--.
func (k *classifier) markOperators() {
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		switch c.Kind {
		case token.Star, token.Amp, token.Minus, token.Plus, token.Caret, token.Incdec:
		default:
			return
		}
		p := k.get(k.prev(i))
		switch c.Kind {
		case token.Star:
			switch {
			case p != nil && p.Kind == token.PtrType:
				c.Kind = token.PtrType
			case p != nil && p.Kind == token.Deref:
				c.Kind = token.Deref
			case k.typeLike(p):
				c.Kind = token.PtrType
			case isValue(p):
				c.Kind = token.Arith
			default:
				c.Kind = token.Deref
			}
		case token.Amp:
			switch {
			case k.typeLike(p):
				c.Kind = token.ByRef
			case isValue(p):
				c.Kind = token.Arith
			default:
				c.Kind = token.AddrOf
			}
		case token.Minus:
			c.Kind = token.Neg
			if isValue(p) {
				c.Kind = token.Arith
			}
		case token.Plus:
			c.Kind = token.Pos
			if isValue(p) {
				c.Kind = token.Arith
			}
		case token.Caret:
			c.Kind = token.Arith
		case token.Incdec:
			c.Kind = token.IncdecBefore
			if isValue(p) && p.Kind != token.IncdecAfter {
				c.Kind = token.IncdecAfter
			}
		}
	})
}
