package diagfmt

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"reform/internal/diag"
	"reform/internal/source"
)

// ShortOpts configures the one-line-per-diagnostic output.
type ShortOpts struct {
	PathMode PathMode
	BaseDir  string
	Notes    bool
}

type shortLine struct {
	path      string
	line, col uint32
	sev       string
	code      string
	msg       string
	notes     []string
}

// Short writes diagnostics in the form editors and CI logs parse:
//
//	path:line:col: severity: message [CODE]
//
// sorted by position. Notes, when enabled, follow their diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	lines := make([]shortLine, 0, bag.Len())
	for _, d := range bag.Items() {
		sl := shortLine{sev: severityLabel(d.Severity), code: d.Code.ID(), msg: oneLine(d.Message)}
		sl.path, sl.line, sl.col = resolveStart(fs, d.Primary, opts.PathMode, opts.BaseDir)
		if opts.Notes {
			for _, n := range d.Notes {
				p, l, c := resolveStart(fs, n.Span, opts.PathMode, opts.BaseDir)
				sl.notes = append(sl.notes, fmt.Sprintf("%s:%d:%d: note: %s", p, l, c, oneLine(n.Msg)))
			}
		}
		lines = append(lines, sl)
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.code, b.code),
		)
	})

	for _, sl := range lines {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n", sl.path, sl.line, sl.col, sl.sev, sl.msg, sl.code); err != nil {
			return err
		}
		for _, n := range sl.notes {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveStart(fs *source.FileSet, span source.Span, mode PathMode, base string) (path string, line, col uint32) {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>", 0, 0
	}
	start, _ := fs.Resolve(span)
	return formatPath(f.Path, mode, base), start.Line, start.Col
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(msg), " "))
}
