package symbols

import (
	"reform/internal/chunk"
	"reform/internal/token"
)

// learnTypes collects the names introduced by typedef and by
// struct/union/enum/class declarations, then re-types every use of them.
func (k *classifier) learnTypes() {
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.InPreproc() {
			return
		}
		switch c.Kind {
		case token.Typedef:
			if name := k.typedefName(i); name != 0 {
				n := k.get(name)
				n.Kind, n.Parent = token.Type, token.Typedef
				k.types[n.Text] = true
				k.ctx.Decide("symbols.typedef", "%s at %d:%d", n.Text, n.OrigLine, n.OrigCol)
			}
		case token.Struct, token.Union, token.Enum, token.Class:
			n := k.next(i)
			// enum class / enum struct
			if c.Kind == token.Enum && (k.kindOf(n) == token.Class || k.kindOf(n) == token.Struct) {
				n = k.next(n)
			}
			if nc := k.get(n); nc != nil && nc.Kind == token.Word {
				k.types[nc.Text] = true
			}
		}
	})

	if len(k.types) == 0 {
		return
	}
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.Kind != token.Word || !k.types[c.Text] {
			return
		}
		if k.kindOf(k.prev(i)) == token.Member {
			return
		}
		c.Kind = token.Type
		k.ctx.Stats.Retyped++
	})
}

// typedefName finds the name a typedef statement declares: the last word at
// the statement's own level, or the word inside "(*name)" for function
// pointer typedefs.
func (k *classifier) typedefName(i chunk.Index) chunk.Index {
	td := k.get(i)
	var last chunk.Index
	for j := k.next(i); j != 0; j = k.next(j) {
		c := k.get(j)
		if c.Level < td.Level {
			return last
		}
		if c.Level > td.Level {
			continue
		}
		if c.Kind == token.Semicolon && c.ParenLevel == td.ParenLevel {
			return last
		}
		if c.Kind == token.ParenOpen && c.ParenLevel == td.ParenLevel {
			if s := k.next(j); k.kindOf(s) == token.Star || k.kindOf(s) == token.Caret {
				if w := k.next(s); k.kindOf(w) == token.Word {
					return w
				}
			}
		}
		if c.ParenLevel == td.ParenLevel && c.Kind == token.Word {
			last = j
		}
	}
	return last
}

// markTypeBodies gives struct/union/enum/class/namespace braces their parent
// and turns the declared name into a type. "extern "C" {" braces get Extern.
func (k *classifier) markTypeBodies() {
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.InPreproc() {
			return
		}
		switch c.Kind {
		case token.Struct, token.Union, token.Enum, token.Class, token.Namespace:
			k.typeBody(i, c.Kind)
		case token.Extern:
			n := k.next(i)
			if k.kindOf(n) == token.String {
				n = k.next(n)
			}
			if k.kindOf(n) == token.BraceOpen {
				k.setBraceParent(n, token.Extern)
			}
		}
	})
}

func (k *classifier) typeBody(i chunk.Index, kw token.Kind) {
	named := false
	colon := false
	for j := k.next(i); j != 0; j = k.next(j) {
		c := k.get(j)
		switch c.Kind {
		case token.BraceOpen:
			k.setBraceParent(j, kw)
			return
		case token.Word, token.Type:
			if kw == token.Namespace {
				continue
			}
			if !named && !colon {
				if c.Kind == token.Word {
					c.Kind = token.Type
					k.ctx.Stats.Retyped++
				}
				k.types[c.Text] = true
				named = true
			}
		case token.Class, token.Struct:
			// enum class
			if kw != token.Enum {
				return
			}
		case token.Colon:
			colon = true
		case token.Comma:
			if !colon {
				return
			}
		case token.AngleOpen:
			if c.Match != 0 {
				j = c.Match
			}
		case token.DCMember, token.Member, token.Qualifier, token.Access, token.Annotation:
		case token.ParenOpen:
			// attributes: struct __attribute__((packed)) s
			if c.Match == 0 || k.kindOf(k.prev(j)) != token.Word || named {
				return
			}
			j = c.Match
		default:
			return
		}
	}
}

func (k *classifier) setBraceParent(i chunk.Index, parent token.Kind) {
	c := k.get(i)
	c.Parent = parent
	if m := k.get(c.Match); m != nil {
		m.Parent = parent
	}
}
