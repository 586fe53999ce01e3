package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"reform/internal/align"
	"reform/internal/braces"
	"reform/internal/cleanup"
	"reform/internal/comments"
	"reform/internal/dialect"
	"reform/internal/indent"
	"reform/internal/labels"
	"reform/internal/lexer"
	"reform/internal/newlines"
	"reform/internal/options"
	"reform/internal/output"
	"reform/internal/source"
	"reform/internal/space"
	"reform/internal/state"
	"reform/internal/symbols"
)

func run(t *testing.T, src string, tweak func(*options.Config)) *state.Ctx {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	opts := options.Defaults()
	if tweak != nil {
		tweak(opts)
	}
	ctx := state.New(file, nil, opts, dialect.C)
	lexer.Tokenize(ctx)
	cleanup.Tokens(ctx)
	braces.Resolve(ctx)
	symbols.Classify(ctx)
	labels.Combine(ctx)
	braces.Materialize(ctx)
	newlines.Plan(ctx)
	space.Apply(ctx)
	comments.Mark(ctx)
	indent.Apply(ctx)
	align.All(ctx)
	indent.Apply(ctx)
	align.TrailingComments(ctx)
	return ctx
}

func render(t *testing.T, src string, tweak func(*options.Config)) string {
	t.Helper()
	var buf bytes.Buffer
	if err := output.Render(run(t, src, tweak), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderBasic(t *testing.T) {
	got := render(t, "int main(void){return 0;}", nil)
	want := "int main(void) {\n    return 0;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNoTrailingWhitespace(t *testing.T) {
	got := render(t, "int a;   \n/* x */   \nint b;\t\n", nil)
	for i, ln := range strings.Split(got, "\n") {
		if strings.TrimRight(ln, " \t") != ln {
			t.Errorf("line %d has trailing blanks: %q", i+1, ln)
		}
	}
}

func TestLeadingBlankLinesDropped(t *testing.T) {
	got := render(t, "\n\n\nint a;\n", nil)
	if got != "int a;\n" {
		t.Errorf("got %q", got)
	}
}

func TestNlMax(t *testing.T) {
	got := render(t, "int a;\n\n\n\n\nint b;\n", func(o *options.Config) { o.NlMax = 2 })
	if got != "int a;\n\nint b;\n" {
		t.Errorf("got %q", got)
	}
}

func TestEndOfFile(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value options.IARF
		min   int
		want  string
	}{
		{"force adds missing", "int a;", options.Force, 1, "int a;\n"},
		{"force trims extra", "int a;\n\n\n", options.Force, 1, "int a;\n"},
		{"force min 2", "int a;", options.Force, 2, "int a;\n\n"},
		{"remove", "int a;\n\n", options.Remove, 1, "int a;"},
		{"ignore keeps", "int a;\n\n", options.Ignore, 1, "int a;\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.src, func(o *options.Config) {
				o.NlEndOfFile = tt.value
				o.NlEndOfFileMin = tt.min
			})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTabIndent(t *testing.T) {
	got := render(t, "void f(void)\n{\nif (x) {\ny();\n}\n}\n", func(o *options.Config) {
		o.IndentWithTabs = 1
		o.IndentColumns = 8
		o.OutputTabSize = 8
	})
	want := "void f(void)\n{\n\tif (x) {\n\t\ty();\n\t}\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCRLFKept(t *testing.T) {
	got := render(t, "int a;\r\nint b;\r\n", nil)
	if got != "int a;\r\nint b;\r\n" {
		t.Errorf("got %q", got)
	}
	got = render(t, "int a;\r\nint b;\r\n", func(o *options.Config) { o.Newlines = options.LineEndingLF })
	if got != "int a;\nint b;\n" {
		t.Errorf("lf: got %q", got)
	}
}

func TestBlockCommentReindented(t *testing.T) {
	src := "void f(void)\n{\n/* one\n * two\n */\nx();\n}\n"
	got := render(t, src, nil)
	want := "void f(void)\n{\n    /* one\n     * two\n     */\n    x();\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVirtualBracesInvisible(t *testing.T) {
	got := render(t, "void f(void)\n{\nif (x)\ny();\n}\n", nil)
	want := "void f(void)\n{\n    if (x)\n        y();\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDumpText(t *testing.T) {
	ctx := run(t, "int a;\n", nil)
	var buf bytes.Buffer
	if err := output.DumpParsed(ctx, &buf, "text"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# test.c lang=C") {
		t.Errorf("header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, `"int"`) || !strings.Contains(out, `"a"`) {
		t.Errorf("chunks missing:\n%s", out)
	}
}

func TestDumpJSON(t *testing.T) {
	ctx := run(t, "int a;\n", nil)
	var buf bytes.Buffer
	if err := output.DumpParsed(ctx, &buf, "json"); err != nil {
		t.Fatal(err)
	}
	var got output.DumpOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.Chunks) != ctx.List.Len() {
		t.Errorf("chunks = %d, want %d", len(got.Chunks), ctx.List.Len())
	}
	if got.Chunks[0].Text != "int" || got.Chunks[0].Column != 1 {
		t.Errorf("first chunk %+v", got.Chunks[0])
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	ctx := run(t, "int a;\n", nil)
	if err := output.DumpParsed(ctx, &bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected error")
	}
}
