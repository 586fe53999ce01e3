package diagfmt

import (
	"bytes"
	"testing"

	"reform/internal/diag"
	"reform/internal/source"
)

func TestShortSortedWithNotes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("testdata/sample.c", []byte("{\n#if A\n}\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.StrUnmatchedClose,
		source.Span{File: file, Start: 8, End: 9}, "unmatched '}'\nclamped"))
	bag.Add(diag.New(diag.SevInfo, diag.StrUnbalancedBranches,
		source.Span{File: file, Start: 2, End: 3}, "branches differ").
		WithNote(source.Span{File: file, Start: 0, End: 1}, "opened here"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, ShortOpts{Notes: true}); err != nil {
		t.Fatal(err)
	}
	want := "testdata/sample.c:2:1: info: branches differ [STR2004]\n" +
		"testdata/sample.c:1:1: note: opened here\n" +
		"testdata/sample.c:3:1: warning: unmatched '}' clamped [STR2001]\n"
	if got := buf.String(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestShortUnknownFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: 42}, "gone"))
	var buf bytes.Buffer
	if err := Short(&buf, bag, source.NewFileSet(), ShortOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<unknown>:0:0: error: gone [IO4001]\n" {
		t.Fatalf("got %q", got)
	}
}
