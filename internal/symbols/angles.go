package symbols

import (
	"reform/internal/chunk"
	"reform/internal/dialect"
	"reform/internal/token"
)

const maxAngleScan = 256

// markAngles turns "<" ... ">" into an angle pair when it follows a name or
// "template" and everything between looks like a type list. A ">>" that
// closes two levels becomes one AngleClose matched by both opens.
func (k *classifier) markAngles() {
	if !k.ctx.Is(dialect.CPP | dialect.CS | dialect.Java) {
		return
	}
	k.code(func(i chunk.Index, c *chunk.Chunk) {
		if c.Kind != token.Compare || c.Text != "<" {
			return
		}
		p := k.get(k.prev(i))
		if p == nil || !p.Is(token.Word, token.Type, token.Template) {
			return
		}
		k.tryAngles(i, p.Kind == token.Template)
	})
}

func (k *classifier) tryAngles(open chunk.Index, template bool) {
	opens := []chunk.Index{open}
	type pair struct{ open, closing chunk.Index }
	var pairs []pair

	steps := 0
	for j := k.next(open); j != 0 && steps < maxAngleScan; j = k.next(j) {
		steps++
		c := k.get(j)
		switch c.Kind {
		case token.Compare:
			switch c.Text {
			case "<":
				opens = append(opens, j)
				continue
			case ">":
				pairs = append(pairs, pair{opens[len(opens)-1], j})
				opens = opens[:len(opens)-1]
			default:
				return
			}
		case token.Arith:
			if c.Text != ">>" || len(opens) < 2 {
				return
			}
			pairs = append(pairs, pair{opens[len(opens)-1], j}, pair{opens[len(opens)-2], j})
			opens = opens[:len(opens)-2]
		case token.Word, token.Type, token.Qualifier, token.DCMember, token.Comma,
			token.Star, token.Amp, token.Number, token.TSquare, token.Question,
			token.Struct, token.Class, token.Enum, token.Ellipsis, token.Sizeof:
			continue
		case token.Member:
			if c.Text != "." {
				return
			}
			continue
		case token.ParenOpen, token.SquareOpen:
			// function types and array extents
			if c.Match == 0 {
				return
			}
			j = c.Match
			continue
		case token.Assign:
			if !template || c.Text != "=" {
				return
			}
			continue
		default:
			return
		}
		if len(opens) == 0 {
			break
		}
	}
	if len(opens) != 0 {
		return
	}
	for _, p := range pairs {
		o, cl := k.get(p.open), k.get(p.closing)
		o.Kind, cl.Kind = token.AngleOpen, token.AngleClose
		o.Match, cl.Match = p.closing, p.open
	}
	k.ctx.Stats.Retyped += len(pairs)
}
