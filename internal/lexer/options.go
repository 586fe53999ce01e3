package lexer

import (
	"reform/internal/diag"
	"reform/internal/dialect"
)

type Options struct {
	Lang dialect.Lang
	// Types are extra words lexed as type names.
	Types    []string
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) warn(code diag.Code, m Mark, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(lx.opts.Reporter, code, lx.cursor.SpanFrom(m), msg).Emit()
}
