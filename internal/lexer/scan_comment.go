package lexer

import (
	"strings"

	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/token"
)

// scanComment reads "// ..." or "/* ... */". The cursor is on the '/'.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.Bump() == '/' {
		return lx.scanLineComment(start)
	}

	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.BumpN(2)
			return lx.blockComment(start)
		}
		lx.cursor.Bump()
	}
	lx.warn(diag.LexUnterminatedBlockComment, start, "unterminated block comment closed at end of file")
	lx.giveBackBlanks(start)
	return lx.blockComment(start)
}

// giveBackBlanks ends a construct that ran into EOF before its trailing
// blanks. They lex as newlines again, so a final newline added on output
// does not end up inside the construct on the next run.
func (lx *Lexer) giveBackBlanks(start Mark) {
	text := lx.cursor.TextFrom(start)
	if n := len(text) - len(strings.TrimRight(text, " \t\r\n\f\v")); n > 0 {
		lx.cursor.Off -= uint32(n)
	}
}

// в C и C++ строчный комментарий продолжается через backslash-newline
func (lx *Lexer) scanLineComment(start Mark) token.Token {
	continues := lx.opts.Lang.Has(dialect.CFamily) && lx.pp == ppNone
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '\\' && continues && lx.isLineContinuation() {
			for lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.CommentCpp, start)
	// хвостовые пробелы остаются Leading следующего токена
	trimmed := strings.TrimRight(tok.Text, " \t\r\f\v")
	if n := len(tok.Text) - len(trimmed); n > 0 {
		lx.cursor.Off -= uint32(n)
		tok = lx.emit(token.CommentCpp, start)
	}
	return tok
}

// scanNestedComment reads D's nesting "/+ ... +/".
func (lx *Lexer) scanNestedComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.cursor.HasPrefix("/+"):
			lx.cursor.BumpN(2)
			depth++
		case lx.cursor.HasPrefix("+/"):
			lx.cursor.BumpN(2)
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.warn(diag.LexUnterminatedBlockComment, start, "unterminated block comment closed at end of file")
		lx.giveBackBlanks(start)
	}
	return lx.blockComment(start)
}

func (lx *Lexer) blockComment(start Mark) token.Token {
	tok := lx.emit(token.Comment, start)
	if strings.IndexByte(tok.Text, '\n') >= 0 {
		tok.Kind = token.CommentMulti
	}
	return tok
}
