package lexer

import (
	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/token"
)

// stringPrefix describes an encoding or raw-string prefix before '"'.
type stringPrefix struct {
	text string
	raw  bool
	lang dialect.Lang
}

// длинные префиксы раньше коротких
var stringPrefixes = []stringPrefix{
	{text: "u8R", raw: true, lang: dialect.CPP},
	{text: "LR", raw: true, lang: dialect.CPP},
	{text: "uR", raw: true, lang: dialect.CPP},
	{text: "UR", raw: true, lang: dialect.CPP},
	{text: "R", raw: true, lang: dialect.CPP},
	{text: "u8", lang: dialect.CFamily},
	{text: "L", lang: dialect.CFamily},
	{text: "u", lang: dialect.CFamily},
	{text: "U", lang: dialect.CFamily},
	{text: "$@", lang: dialect.CS},
	{text: "@$", lang: dialect.CS},
	{text: "@", lang: dialect.CS},
	{text: "$", lang: dialect.CS},
	{text: "r", lang: dialect.D},
	{text: "x", lang: dialect.D},
}

// isStringStart reports whether a string literal (with optional prefix)
// starts at the cursor.
func (lx *Lexer) isStringStart() bool {
	switch lx.cursor.Peek() {
	case '"':
		return true
	case '`':
		return lx.opts.Lang.Has(dialect.D)
	}
	_, ok := lx.matchPrefix()
	return ok
}

func (lx *Lexer) matchPrefix() (stringPrefix, bool) {
	for _, p := range stringPrefixes {
		if !lx.opts.Lang.Has(p.lang) {
			continue
		}
		if lx.cursor.HasPrefix(p.text + `"`) {
			return p, true
		}
	}
	return stringPrefix{}, false
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '`' {
		return lx.scanWysiwyg(start, '`')
	}
	if lx.opts.Lang.Has(dialect.Java) && lx.cursor.HasPrefix(`"""`) {
		return lx.scanTextBlock(start)
	}

	prefix, _ := lx.matchPrefix()
	lx.cursor.BumpN(len(prefix.text))
	switch {
	case prefix.raw:
		return lx.scanRawString(start)
	case prefix.text == "r":
		return lx.scanWysiwyg(start, '"')
	case prefix.text == "@" || prefix.text == "$@" || prefix.text == "@$":
		return lx.scanVerbatim(start)
	}
	return lx.scanQuoted(start, '"', diag.LexUnterminatedString)
}

func (lx *Lexer) scanChar() token.Token {
	return lx.scanQuoted(lx.cursor.Mark(), '\'', diag.LexUnterminatedChar)
}

// scanQuoted reads a '"' or '\'' literal with backslash escapes. An
// unterminated literal stops before the end of its line.
func (lx *Lexer) scanQuoted(start Mark, quote byte, code diag.Code) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(token.String, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' && lx.pp == ppNone {
				// строка продолжена через backslash-newline
				lx.cursor.Bump()
				continue
			}
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		case '\n':
			lx.warn(code, start, "unterminated literal closed at end of line")
			return lx.emit(token.String, start)
		}
		lx.cursor.Bump()
	}
	lx.warn(code, start, "unterminated literal closed at end of file")
	lx.giveBackBlanks(start)
	return lx.emit(token.String, start)
}

// scanRawString reads R"delim( ... )delim". The cursor is on the '"'.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // '"'
	dm := lx.cursor.Mark()
	for b := lx.cursor.Peek(); b != '(' && b != '\n' && b != '"' && !lx.cursor.EOF(); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '(' {
		lx.warn(diag.LexUnterminatedRawString, start, "malformed raw string delimiter")
		return lx.emit(token.String, start)
	}
	closing := ")" + lx.cursor.TextFrom(dm) + `"`
	lx.cursor.Bump() // '('
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix(closing) {
			lx.cursor.BumpN(len(closing))
			return lx.emit(token.String, start)
		}
		lx.cursor.Bump()
	}
	lx.warn(diag.LexUnterminatedRawString, start, "unterminated raw string closed at end of file")
	lx.giveBackBlanks(start)
	return lx.emit(token.String, start)
}

// scanWysiwyg reads D r"..." and `...`: no escapes, may span lines.
func (lx *Lexer) scanWysiwyg(start Mark, quote byte) token.Token {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == quote {
			return lx.emit(token.String, start)
		}
	}
	lx.warn(diag.LexUnterminatedString, start, "unterminated string closed at end of file")
	lx.giveBackBlanks(start)
	return lx.emit(token.String, start)
}

// scanVerbatim reads C# @"..." where "" stands for one quote.
func (lx *Lexer) scanVerbatim(start Mark) token.Token {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		if lx.cursor.Peek() == '"' {
			lx.cursor.Bump()
			continue
		}
		return lx.emit(token.String, start)
	}
	lx.warn(diag.LexUnterminatedString, start, "unterminated string closed at end of file")
	lx.giveBackBlanks(start)
	return lx.emit(token.String, start)
}

// scanTextBlock reads a Java """ text block.
func (lx *Lexer) scanTextBlock(start Mark) token.Token {
	lx.cursor.BumpN(3)
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\\' {
			lx.cursor.BumpN(2)
			continue
		}
		if lx.cursor.HasPrefix(`"""`) {
			lx.cursor.BumpN(3)
			return lx.emit(token.String, start)
		}
		lx.cursor.Bump()
	}
	lx.warn(diag.LexUnterminatedString, start, "unterminated text block closed at end of file")
	lx.giveBackBlanks(start)
	return lx.emit(token.String, start)
}
