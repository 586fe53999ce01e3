package lexer

import (
	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/token"
)

// Поддержка: 0x.., 0b.., восьмеричные, десятичные, дробные с экспонентой,
// hex-float (0x1.8p3), суффиксы (u, l, f, ...) и разделители разрядов:
// '\'' в C++, '_' в D/Java/C#.
// Неверные формы - предупреждение, токен всё равно завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	sep := lx.digitSeparator()

	digits := func(ok func(byte) bool) int {
		n := 0
		for {
			b := lx.cursor.Peek()
			switch {
			case ok(b):
				n++
			case b == sep && sep != 0 && n > 0 && ok(lx.cursor.PeekAt(1)):
			default:
				return n
			}
			lx.cursor.Bump()
		}
	}

	hex := false
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.BumpN(2)
			hex = true
			if digits(isHex) == 0 && lx.cursor.Peek() != '.' {
				lx.warn(diag.LexBadNumber, start, "expected hex digits after 0x")
			}
		case 'b', 'B':
			lx.cursor.BumpN(2)
			if digits(isBin) == 0 {
				lx.warn(diag.LexBadNumber, start, "expected binary digits after 0b")
			}
			lx.scanNumberSuffix()
			return lx.emit(token.Number, start)
		}
	}
	if !hex {
		digits(isDec)
	}

	// дробная часть; ".." в D - это оператор, не число
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		next := lx.cursor.PeekAt(1)
		if hex || isDec(next) || !isIdentStartByte(next) || lx.opts.Lang.Has(dialect.CFamily) {
			lx.cursor.Bump()
			if hex {
				digits(isHex)
			} else {
				digits(isDec)
			}
		}
	}

	// экспонента: e/E для десятичных, p/P для hex-float
	if e := lx.cursor.Peek(); (!hex && (e == 'e' || e == 'E')) || (hex && (e == 'p' || e == 'P')) {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if digits(isDec) == 0 {
			lx.cursor.Reset(m)
			if !hex {
				lx.warn(diag.LexBadNumber, start, "expected digit after exponent")
			}
		}
	}

	lx.scanNumberSuffix()
	return lx.emit(token.Number, start)
}

// scanNumberSuffix eats u, l, f, i and friends; user-defined literal
// suffixes in C++ are just trailing identifier characters.
func (lx *Lexer) scanNumberSuffix() {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) digitSeparator() byte {
	switch {
	case lx.opts.Lang.Has(dialect.CPP):
		return '\''
	case lx.opts.Lang.Has(dialect.D | dialect.Java | dialect.CS):
		return '_'
	}
	return 0
}
