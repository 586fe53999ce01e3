package main

import (
	"fmt"
	"io"
	"os"

	"reform/internal/diag"
	"reform/internal/diagfmt"
	"reform/internal/source"
)

type diagPrinter struct {
	format string
	pretty diagfmt.PrettyOpts
	out    io.Writer
}

func readDiagFormat(value string) (string, error) {
	switch value {
	case "", "pretty":
		return "pretty", nil
	case "short", "json":
		return value, nil
	}
	return "", fmt.Errorf("invalid --diag-format %q (expected pretty|short|json)", value)
}

// print writes bag in the chosen format. Nothing is written for an empty bag.
func (p diagPrinter) print(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	out := p.out
	if out == nil {
		out = os.Stderr
	}
	bag.Sort()
	bag.Dedup()
	var err error
	switch p.format {
	case "short":
		err = diagfmt.Short(out, bag, fs, diagfmt.ShortOpts{Notes: p.pretty.ShowNotes})
	case "json":
		err = diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: p.pretty.ShowNotes})
	default:
		diagfmt.Pretty(out, bag, fs, p.pretty)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "reform: writing diagnostics: %v\n", err)
	}
}
