// Package state carries what every pipeline stage of one file shares.
package state

import (
	"fmt"

	"reform/internal/chunk"
	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/token"
	"reform/internal/trace"
)

// VBrace records a braceless body found by the brace resolver. The
// materializer turns it into chunks once classification is done.
type VBrace struct {
	// After is the chunk the opening brace follows: the ')' of if/for/while,
	// or else/do.
	After chunk.Index
	// CloseAfter is the last chunk of the body, normally its ';'.
	CloseAfter chunk.Index
	// BranchEnds close the same body in later #else/#elif branches.
	BranchEnds []chunk.Index
	// Parent is the statement keyword owning the body.
	Parent token.Kind
	// Level/BraceLevel/PPLevel are the values of the braces themselves.
	Level      int
	BraceLevel int
	PPLevel    int
}

// Stats counts what the stages did; it ends up in the -p dump and in traces.
type Stats struct {
	VBraces        int
	BracesAdded    int
	BracesRemoved  int
	Retyped        int
	AlignedGroups  int
	Warnings       int
	ParenRecovered int
}

// Ctx is the per-file pipeline state. Stages run one after another, so
// nothing here is locked.
type Ctx struct {
	List     *chunk.List
	Opts     *options.Config
	Lang     dialect.Lang
	File     *source.File
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// Span is the trace span of the stage currently running.
	Span    uint64
	VBraces []VBrace
	Stats   Stats
}

// New builds a context for one file.
func New(file *source.File, list *chunk.List, opts *options.Config, lang dialect.Lang) *Ctx {
	return &Ctx{
		List:     list,
		Opts:     opts,
		Lang:     lang,
		File:     file,
		Reporter: diag.NopReporter{},
		Tracer:   trace.Nop,
	}
}

// Is reports whether the file is in one of langs.
func (c *Ctx) Is(langs dialect.Lang) bool {
	return c.Lang&langs != 0
}

// Get is shorthand for c.List.Get.
func (c *Ctx) Get(i chunk.Index) *chunk.Chunk {
	return c.List.Get(i)
}

// Decide records a heuristic choice under the current stage span.
func (c *Ctx) Decide(name, format string, args ...any) {
	if c.Tracer == nil || !c.Tracer.Enabled() {
		return
	}
	trace.Point(c.Tracer, trace.ScopeDecision, name, fmt.Sprintf(format, args...), c.Span)
}

// Warn reports a warning at chunk i.
func (c *Ctx) Warn(code diag.Code, i chunk.Index, msg string) {
	c.Stats.Warnings++
	diag.ReportWarning(c.Reporter, code, c.spanOf(i), msg).Emit()
}

// Error reports an error at chunk i. Stages keep going after it.
func (c *Ctx) Error(code diag.Code, i chunk.Index, msg string) *diag.ReportBuilder {
	return diag.ReportError(c.Reporter, code, c.spanOf(i), msg)
}

// Info reports a note-level finding at chunk i.
func (c *Ctx) Info(code diag.Code, i chunk.Index, msg string) {
	diag.ReportInfo(c.Reporter, code, c.spanOf(i), msg).Emit()
}

func (c *Ctx) spanOf(i chunk.Index) source.Span {
	ch := c.List.Get(i)
	if ch == nil {
		if c.File != nil {
			return source.Span{File: c.File.ID}
		}
		return source.Span{}
	}
	return ch.Span
}

// SpanOf returns the source span of chunk i.
func (c *Ctx) SpanOf(i chunk.Index) source.Span { return c.spanOf(i) }
