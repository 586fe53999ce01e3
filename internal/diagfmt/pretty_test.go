package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"reform/internal/diag"
	"reform/internal/source"
)

func unterminated(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("int a;\nchar *s = \"abc\nint b;\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.c", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 17, End: 21},
		"Unterminated string literal",
	).WithNote(source.Span{File: fileID, Start: 7, End: 11}, "in this declaration"))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := unterminated(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.c:2:11"},
		{"Relative path", PathModeRelative, "src/test.c:2:11"},
		{"Basename only", PathModeBasename, "test.c:2:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{
				Context:  0,
				PathMode: tt.mode,
				BaseDir:  "/home/user/project",
			})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: Unterminated string literal") {
				t.Errorf("Expected header line, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto: файлы вне BaseDir показываются как есть
func TestPathModeAuto(t *testing.T) {
	if got := formatPath("/elsewhere/a.c", PathModeAuto, "/home/user"); got != "/elsewhere/a.c" {
		t.Errorf("outside base: %q", got)
	}
	if got := formatPath("/home/user/a.c", PathModeAuto, "/home/user"); got != "a.c" {
		t.Errorf("inside base: %q", got)
	}
	if got := formatPath("a.c", PathModeAuto, ""); got != "a.c" {
		t.Errorf("no base: %q", got)
	}
}

func TestPrettyExcerpt(t *testing.T) {
	bag, fs := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"test.c:2:11: ERROR LEX1002: Unterminated string literal",
		" 1 | int a;",
		" 2 | char *s = \"abc",
		"   |           ^~~~",
		" 3 | int b;",
	}
	if len(lines) < len(want) {
		t.Fatalf("short output:\n%s", buf.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if strings.Contains(buf.String(), "note:") {
		t.Error("notes printed without ShowNotes")
	}
}

func TestPrettyEmptySpanGetsOneCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.c", []byte("int a;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 4}, "here"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "\n   |     ^\n") {
		t.Fatalf("caret line missing:\n%s", buf.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: test.c:2:1: in this declaration") {
		t.Errorf("missing note:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := unterminated(t)
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("escape codes without Color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("no escape codes with Color")
	}
}
