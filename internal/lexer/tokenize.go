package lexer

import (
	"strconv"

	"reform/internal/chunk"
	"reform/internal/state"
	"reform/internal/trace"
)

// Tokenize lexes ctx.File and stores the chunk stream in ctx.List.
func Tokenize(ctx *state.Ctx) {
	toks := All(ctx.File, Options{
		Lang:     ctx.Lang,
		Types:    ctx.Opts.Types,
		Reporter: ctx.Reporter,
	})
	file := ctx.File
	ctx.List = chunk.FromTokens(toks, func(off uint32) (uint32, uint32) {
		pos := file.Position(off)
		return pos.Line, pos.Col
	})
	if ctx.Tracer != nil && ctx.Tracer.Enabled() {
		trace.Point(ctx.Tracer, trace.ScopeStage, "tokens", strconv.Itoa(ctx.List.Len()), ctx.Span)
	}
}
