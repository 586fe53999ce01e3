// Package output turns the planned chunk stream into text and writes the
// parsed-stream debug dump.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"

	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/state"
	"reform/internal/token"
)

// Render writes the formatted text of ctx to w.
func Render(ctx *state.Ctx, w io.Writer) error {
	text := Text(ctx)
	if _, err := w.Write(text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Text returns the formatted text of ctx with the file's line endings.
func Text(ctx *state.Ctx) []byte {
	o := ctx.Opts
	l := ctx.List
	size := 0
	if ctx.File != nil {
		size = len(ctx.File.Content)
	}
	out := NewWriter(size+size/8, o.OutputTabSize, o.IndentWithTabs == 1)

	var prev *chunk.Chunk
	for c := range l.All() {
		if !c.IsVisible() {
			continue
		}
		if prev != nil && c.NlBefore > 0 {
			n := c.NlBefore
			if o.NlMax > 0 {
				n = min(n, o.NlMax)
			}
			out.Newlines(n)
		}
		switch {
		case prev == nil || c.NlBefore > 0:
			out.PadTo(c.Column)
		default:
			pad := c.Column - out.Column()
			if pad <= 0 && c.Column > prev.EndColumn() {
				pad = 1
			}
			out.Space(pad)
		}
		writeChunk(ctx, out, c)
		prev = c
	}
	endOfFile(ctx, out, prev != nil)
	return finish(ctx, out.Bytes())
}

func writeChunk(ctx *state.Ctx, out *Writer, c *chunk.Chunk) {
	if !c.IsMultiLine() {
		out.WriteString(c.Text)
		return
	}
	lines := strings.Split(c.Text, "\n")
	if !c.Kind.IsComment() {
		// raw strings and the like are copied verbatim
		out.WriteString(lines[0])
		for _, ln := range lines[1:] {
			out.buf = append(out.buf, '\n')
			out.col = 1
			out.WriteString(ln)
		}
		return
	}
	delta := 0
	if ctx.Opts.CmtIndentMulti {
		delta = c.Column - origColumn(ctx, c)
	}
	out.WriteString(strings.TrimRight(lines[0], " \t"))
	for _, ln := range lines[1:] {
		out.Newlines(1)
		body := strings.TrimLeft(ln, " \t")
		if body == "" {
			continue
		}
		width := indentWidth(ln[:len(ln)-len(body)], ctx.Opts.InputTabSize)
		out.PadTo(max(width+delta, 0) + 1)
		out.WriteString(strings.TrimRight(body, " \t"))
	}
}

// origColumn is the display column a chunk started at in the input.
func origColumn(ctx *state.Ctx, c *chunk.Chunk) int {
	l := ctx.List
	if p := l.Get(l.Prev(c.ID)); p == nil || p.Kind == token.Newline {
		return c.LeadingWidth(ctx.Opts.InputTabSize) + 1
	}
	if ctx.File == nil {
		return int(c.OrigCol)
	}
	// measure the source line up to the chunk
	start, err := safecast.Conv[int](c.Span.Start)
	if err != nil || start > len(ctx.File.Content) {
		return int(c.OrigCol)
	}
	lineStart := bytes.LastIndexByte(ctx.File.Content[:start], '\n') + 1
	return indentWidth(string(ctx.File.Content[lineStart:start]), ctx.Opts.InputTabSize) + 1
}

// indentWidth measures s with tabs expanded.
func indentWidth(s string, tabSize int) int {
	if tabSize <= 0 {
		tabSize = 8
	}
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabSize - w%tabSize
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func endOfFile(ctx *state.Ctx, out *Writer, any bool) {
	o := ctx.Opts
	if !any {
		return
	}
	switch o.NlEndOfFile {
	case options.Remove:
		out.TrimNewlines()
	case options.Add, options.Force:
		out.Newlines(max(o.NlEndOfFileMin, 1))
	default:
		out.Newlines(trailingNewlines(ctx.List))
	}
}

// trailingNewlines counts the line breaks after the last printed chunk.
func trailingNewlines(l *chunk.List) int {
	n := 0
	for i := l.Tail(); i != 0; i = l.Prev(i) {
		c := l.Get(i)
		if c.IsVisible() {
			break
		}
		if c.Kind == token.Newline {
			n += c.NlCount
		}
	}
	return n
}

// finish applies the configured line ending.
func finish(ctx *state.Ctx, text []byte) []byte {
	switch ctx.Opts.Newlines {
	case options.LineEndingCRLF:
		return bytes.ReplaceAll(text, []byte("\n"), []byte("\r\n"))
	case options.LineEndingLF:
		return text
	}
	if ctx.File == nil {
		return text
	}
	return ctx.File.Restore(text)
}
