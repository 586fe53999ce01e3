package lexer

import (
	"strings"

	"reform/internal/token"
)

// scanDirective reads the directive word after '#'. Anything else (a line
// marker "# 12", an empty "#") leaves the line as PpOther.
func (lx *Lexer) scanDirective() token.Token {
	lx.pp = ppBody
	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.scanToken()
	}
	start := lx.cursor.Mark()
	lx.scanIdentTail()
	tok := lx.emit(token.PpOther, start)
	tok.Kind = token.Directive(tok.Text, lx.opts.Lang)
	lx.ppKind = tok.Kind
	lx.ppName = tok.Text
	return tok
}

// в #error, #warning и #region остаток строки - свободный текст
func (lx *Lexer) isRestOfLineDirective() bool {
	switch lx.ppName {
	case "error", "warning", "region", "endregion", "ident", "sccs":
	default:
		return false
	}
	return !lx.cursor.EOF() && lx.cursor.Peek() != '\n'
}

func (lx *Lexer) scanRestOfLine() token.Token {
	lx.ppCount++
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	trimmed := strings.TrimRight(text, " \t\r\f\v")
	lx.cursor.Off -= uint32(len(text) - len(trimmed))
	return lx.emit(token.String, start)
}

// scanHeaderName reads <path/to/header.h> after #include as one string.
func (lx *Lexer) scanHeaderName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '>':
			lx.cursor.Bump()
			return lx.emit(token.String, start)
		case '\n':
			lx.cursor.Reset(start)
			lx.cursor.Bump()
			return lx.emit(token.Compare, start)
		}
		lx.cursor.Bump()
	}
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	return lx.emit(token.Compare, start)
}

// scanMacroName reads the name after #define; a '(' glued to it makes a
// function-like macro.
func (lx *Lexer) scanMacroName() token.Token {
	start := lx.cursor.Mark()
	lx.scanIdentTail()
	tok := lx.emit(token.Macro, start)
	if lx.cursor.Peek() == '(' {
		tok.Kind = token.MacroFunc
	}
	return tok
}
