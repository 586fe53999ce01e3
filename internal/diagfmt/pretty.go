package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reform/internal/diag"
	"reform/internal/source"
)

type palette struct {
	err, warn, info, code, path, caret, dim *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan, color.Bold),
		code:  mk(color.Bold),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		dim:   mk(color.FgHiBlack),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		if file == nil {
			fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprintf("%s:%d:%d", formatPath(file.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col),
			pal.severity(d.Severity).Sprint(d.Severity),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		excerpt(w, fs, d.Primary, int(opts.Context), pal)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil {
				fmt.Fprintf(w, "  note: %s\n", n.Msg)
				continue
			}
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n", pal.info.Sprint("note:"),
				pal.path.Sprintf("%s:%d:%d", formatPath(nf.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col), n.Msg)
		}
	}
}

// excerpt печатает строку span'а с контекстом и подчёркиванием.
func excerpt(w io.Writer, fs *source.FileSet, span source.Span, context int, pal palette) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := max(int(start.Line)-max(context, 0), 1)
	last := int(start.Line) + max(context, 0)
	width := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		n32, err := safecast.Conv[uint32](ln)
		if err != nil || ln > len(file.LineIdx)+1 {
			break
		}
		text := strings.TrimRight(file.GetLine(n32), "\r\n")
		text = strings.ReplaceAll(text, "\t", "    ")
		fmt.Fprintf(w, " %s %s %s\n", pal.dim.Sprintf("%*d", width, ln), pal.dim.Sprint("|"), text)
		if ln != int(start.Line) {
			continue
		}
		line := file.GetLine(start.Line)
		col := min(int(start.Col)-1, len(line))
		pad := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", "    "))
		n := 1
		if !span.Empty() && end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(line))
			n = max(runewidth.StringWidth(strings.ReplaceAll(line[col:stop], "\t", "    ")), 1)
		}
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", width), pal.dim.Sprint("|"),
			strings.Repeat(" ", pad), pal.caret.Sprint("^"+strings.Repeat("~", n-1)))
	}
}
