package lexer

import (
	"reform/internal/dialect"
	"reform/internal/source"
	"reform/internal/token"
)

// ppMode tracks where the lexer is inside a directive line.
type ppMode uint8

const (
	ppNone ppMode = iota
	ppDirective
	ppBody
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	types  map[string]struct{}

	lineStart bool // only blanks seen since the last newline
	last      token.Kind

	pp      ppMode
	ppKind  token.Kind // directive of the current line
	ppName  string
	ppCount int // tokens after the directive word
}

func New(file *source.File, opts Options) *Lexer {
	if opts.Lang == dialect.None {
		opts.Lang = dialect.C
	}
	types := make(map[string]struct{}, len(opts.Types))
	for _, t := range opts.Types {
		types[t] = struct{}{}
	}
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		types:     types,
		lineStart: true,
	}
}

// Next returns the next token with the blanks before it in Leading.
// At the end of input it returns a token of kind Invalid; its Leading holds
// trailing blanks, if any.
func (lx *Lexer) Next() token.Token {
	leading := lx.scanBlanks()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.Invalid, Leading: leading, Span: lx.emptySpan()}
	}

	tok := lx.scanToken()
	tok.Leading = leading

	if lx.pp != ppNone {
		tok.Flags = tok.Flags.Set(token.FlagInPreproc)
	}
	if tok.Kind == token.Newline {
		// конец директивы, если строка не продолжена через '\'
		if lx.last != token.NlCont {
			if lx.pp != ppNone {
				tok.Flags = tok.Flags.Clear(token.FlagInPreproc)
			}
			lx.pp = ppNone
		}
		lx.lineStart = true
	} else {
		lx.lineStart = false
	}
	lx.last = tok.Kind
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		return lx.scanNewlines()
	case ch == '\\' && lx.isLineContinuation():
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.NlCont, m)
	case ch == '#' && lx.lineStart && lx.pp == ppNone && lx.hasPreprocessor():
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.pp = ppDirective
		lx.ppKind = token.PpOther
		lx.ppName = ""
		lx.ppCount = 0
		return lx.emit(token.Preproc, m)
	case lx.pp == ppDirective:
		return lx.scanDirective()
	case lx.pp == ppBody && lx.ppCount == 0 && lx.isRestOfLineDirective():
		return lx.scanRestOfLine()
	case lx.pp == ppBody && lx.ppKind == token.PpInclude && ch == '<':
		lx.ppCount++
		return lx.scanHeaderName()
	case lx.pp == ppBody && lx.ppKind == token.PpDefine && lx.ppCount == 0 && isIdentStartByte(ch):
		lx.ppCount++
		return lx.scanMacroName()
	}

	if lx.pp == ppBody {
		lx.ppCount++
	}
	switch {
	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		return lx.scanComment()
	case ch == '/' && lx.cursor.PeekAt(1) == '+' && lx.opts.Lang.Has(dialect.D):
		return lx.scanNestedComment()
	case lx.isStringStart():
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	case ch == '@' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanAnnotation()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	}
	return lx.scanOperatorOrPunct()
}

// scanBlanks collects spaces, tabs and stray control whitespace.
func (lx *Lexer) scanBlanks() string {
	m := lx.cursor.Mark()
	for isBlank(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return lx.cursor.TextFrom(m)
}

// scanNewlines eats a run of line breaks together with the blanks between
// them; blanks after the last break are left for the next token.
func (lx *Lexer) scanNewlines() token.Token {
	m := lx.cursor.Mark()
	count := 0
	for lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
		count++
		// продолженная директива: ровно один перевод строки
		if lx.pp != ppNone && lx.last == token.NlCont {
			break
		}
		save := lx.cursor.Mark()
		for isBlank(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() != '\n' {
			lx.cursor.Reset(save)
			break
		}
	}
	tok := lx.emit(token.Newline, m)
	tok.NlCount = count
	return tok
}

func (lx *Lexer) isLineContinuation() bool {
	for n := uint32(1); ; n++ {
		switch lx.cursor.PeekAt(n) {
		case ' ', '\t':
			continue
		case '\n':
			return true
		}
		return false
	}
}

func (lx *Lexer) hasPreprocessor() bool {
	return lx.opts.Lang.Has(dialect.C | dialect.CPP | dialect.CS)
}

func (lx *Lexer) emit(kind token.Kind, m Mark) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All lexes the whole file. The final Invalid token is not included; its
// trailing blanks, if any, come back as an empty Newline token so the
// concatenated Leading+Text still covers every byte.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.IsEOF() {
			if tok.Leading != "" {
				toks = append(toks, token.Token{Kind: token.Newline, Leading: tok.Leading, Span: tok.Span})
			}
			return toks
		}
		toks = append(toks, tok)
	}
}
