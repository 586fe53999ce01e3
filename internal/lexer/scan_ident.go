package lexer

import (
	"reform/internal/dialect"
	"reform/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword
// для текущего языка. Слова из списка типов пользователя становятся Type.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
	}
	lx.scanIdentTail()

	tok := lx.emit(token.Word, start)
	if k, ok := token.LookupKeyword(tok.Text, lx.opts.Lang); ok {
		tok.Kind = k
		return tok
	}
	if _, ok := lx.types[tok.Text]; ok {
		tok.Kind = token.Type
	}
	return tok
}

func (lx *Lexer) scanIdentTail() {
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// scanAnnotation reads "@Name" (Java, D attributes) or "@name", the C#
// verbatim identifier, which is just a word.
func (lx *Lexer) scanAnnotation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'
	lx.scanIdentTail()
	if lx.opts.Lang.Has(dialect.CS) {
		return lx.emit(token.Word, start)
	}
	return lx.emit(token.Annotation, start)
}
