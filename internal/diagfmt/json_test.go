package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"reform/internal/diag"
	"reform/internal/source"
)

func TestJSONPositions(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int main(void) {\n\tchar *s = \"abc\n}\n")
	fileID := fs.AddVirtual("src/test.c", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 28, End: 32},
		"unterminated string literal",
	))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 || output.Dropped != 0 {
		t.Fatalf("count=%d dropped=%d", output.Count, output.Dropped)
	}

	d := output.Diagnostics[0]
	if d.Severity != "error" || d.Code != "LEX1002" {
		t.Errorf("severity=%s code=%s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "test.c" || loc.Offset != 28 || loc.Length != 4 {
		t.Errorf("location = %+v", loc)
	}
	if loc.Line != 2 || loc.Col != 12 {
		t.Errorf("position = %d:%d, want 2:12", loc.Line, loc.Col)
	}
}

func TestJSONNotesAndMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("void f(void) {\n"))

	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.New(
			diag.SevWarning,
			diag.StrUnclosedBrace,
			source.Span{File: fileID, Start: 13, End: 14},
			"'{' is never closed",
		).WithNote(source.Span{File: fileID, Start: 0, End: 4}, "in this function"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2, IncludeNotes: true})
	if out.Count != 2 || out.Dropped != 1 {
		t.Fatalf("count=%d dropped=%d", out.Count, out.Dropped)
	}
	notes := out.Diagnostics[0].Notes
	if len(notes) != 1 || notes[0].Message != "in this function" {
		t.Fatalf("notes = %+v", notes)
	}
	// без IncludePositions строк нет
	if out.Diagnostics[0].Location.Line != 0 {
		t.Errorf("unexpected line %d", out.Diagnostics[0].Location.Line)
	}
}
