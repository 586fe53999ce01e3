package lexer

import (
	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/token"
)

type punct struct {
	text string
	kind token.Kind
	lang dialect.Lang
}

// Жадность: таблицы по длине, сначала 4-символьные, затем 3, 2 и 1.
var puncts = [...][]punct{
	{
		{">>>=", token.Assign, dialect.D | dialect.Java},
	},
	{
		{"<<=", token.Assign, dialect.All},
		{">>=", token.Assign, dialect.All},
		{"...", token.Ellipsis, dialect.All},
		{"->*", token.Member, dialect.CPP},
		{">>>", token.Arith, dialect.D | dialect.Java},
		{"!<>", token.Compare, dialect.D},
		{"^^=", token.Assign, dialect.D},
		{"<=>", token.Compare, dialect.CPP},
		{"??=", token.Assign, dialect.CS},
	},
	{
		{"+=", token.Assign, dialect.All},
		{"-=", token.Assign, dialect.All},
		{"*=", token.Assign, dialect.All},
		{"/=", token.Assign, dialect.All},
		{"%=", token.Assign, dialect.All},
		{"&=", token.Assign, dialect.All},
		{"|=", token.Assign, dialect.All},
		{"^=", token.Assign, dialect.All},
		{"~=", token.Assign, dialect.D},
		{"==", token.Compare, dialect.All},
		{"!=", token.Compare, dialect.All},
		{"<=", token.Compare, dialect.All},
		{">=", token.Compare, dialect.All},
		{"<<", token.Arith, dialect.All},
		{">>", token.Arith, dialect.All},
		{"&&", token.Bool, dialect.All},
		{"||", token.Bool, dialect.All},
		{"++", token.Incdec, dialect.All},
		{"--", token.Incdec, dialect.All},
		{"->", token.Member, dialect.CFamily | dialect.CS},
		{"->", token.Lambda, dialect.Java},
		{"::", token.DCMember, dialect.CPP | dialect.CS | dialect.Java},
		{".*", token.Member, dialect.CPP},
		{"..", token.Ellipsis, dialect.D},
		{"=>", token.Lambda, dialect.D | dialect.CS},
		{"??", token.Bool, dialect.CS},
		{"^^", token.Arith, dialect.D},
		{"[]", token.TSquare, dialect.All},
	},
	{
		{";", token.Semicolon, dialect.All},
		{",", token.Comma, dialect.All},
		{"?", token.Question, dialect.All},
		{":", token.Colon, dialect.All},
		{"=", token.Assign, dialect.All},
		{"+", token.Plus, dialect.All},
		{"-", token.Minus, dialect.All},
		{"*", token.Star, dialect.All},
		{"&", token.Amp, dialect.All},
		{"^", token.Caret, dialect.All},
		{"/", token.Arith, dialect.All},
		{"%", token.Arith, dialect.All},
		{"|", token.Arith, dialect.All},
		{"<", token.Compare, dialect.All},
		{">", token.Compare, dialect.All},
		{"!", token.Not, dialect.All},
		{"~", token.Inv, dialect.All},
		{".", token.Member, dialect.All},
		{"(", token.ParenOpen, dialect.All},
		{")", token.ParenClose, dialect.All},
		{"[", token.SquareOpen, dialect.All},
		{"]", token.SquareClose, dialect.All},
		{"{", token.BraceOpen, dialect.All},
		{"}", token.BraceClose, dialect.All},
	},
}

// scanOperatorOrPunct picks the longest punctuator valid for the language.
// Inside a directive '#' and '##' are stringize/paste operators.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if lx.pp != ppNone && lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		lx.cursor.Eat('#')
		return lx.emit(token.Pound, start)
	}

	for _, group := range puncts {
		for _, p := range group {
			if p.lang.Has(lx.opts.Lang) && lx.cursor.HasPrefix(p.text) {
				lx.cursor.BumpN(len(p.text))
				return lx.emit(p.kind, start)
			}
		}
	}

	// неизвестный символ: целая UTF-8 руна, чтобы не резать её посередине
	if _, sz := lx.peekRune(); sz > 1 {
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	lx.warn(diag.LexUnknownChar, start, "unknown character")
	return lx.emit(token.Unknown, start)
}
