package newlines_test

import (
	"testing"

	"reform/internal/braces"
	"reform/internal/chunk"
	"reform/internal/cleanup"
	"reform/internal/dialect"
	"reform/internal/labels"
	"reform/internal/lexer"
	"reform/internal/newlines"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/symbols"
	"reform/internal/token"
)

func plan(t *testing.T, src string, tweak func(*options.Config)) *state.Ctx {
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
	if opts.NlSqueezeIfdef {
		newlines.SqueezeIfdef(ctx)
	}
	return ctx
}

// lines renders the visible chunks with one space between them and the
// planned breaks between lines.
func lines(ctx *state.Ctx) string {
	var out []byte
	first := true
	for c := range ctx.List.All() {
		if !c.IsVisible() {
			continue
		}
		if !first {
			if c.NlBefore > 0 {
				for range c.NlBefore {
					out = append(out, '\n')
				}
			} else {
				out = append(out, ' ')
			}
		}
		first = false
		out = append(out, c.Text...)
	}
	return string(out)
}

func find(t *testing.T, ctx *state.Ctx, text string) *chunk.Chunk {
	t.Helper()
	for c := range ctx.List.All() {
		if c.Text == text {
			return c
		}
	}
	t.Fatalf("no chunk %q", text)
	return nil
}

func TestBreaksAfterBracesAndSemicolons(t *testing.T) {
	ctx := plan(t, "void f(void) { a(); b(); }", nil)
	want := "void f ( void ) {\na ( ) ;\nb ( ) ;\n}"
	if got := lines(ctx); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestFunctionBraceForced(t *testing.T) {
	ctx := plan(t, "int main(void) {\n  return 0;\n}\n", func(o *options.Config) {
		o.NlFdefBrace = options.Add
	})
	brace := find(t, ctx, "{")
	if brace.NlBefore != 1 || !brace.Flags.Has(token.FlagNlRequired) {
		t.Errorf("brace NlBefore = %d, flags %s", brace.NlBefore, brace.Flags)
	}
}

func TestIfBraceRemoved(t *testing.T) {
	ctx := plan(t, "void f(int x)\n{\n  if (x)\n  {\n    g();\n  }\n}\n", func(o *options.Config) {
		o.NlIfBrace = options.Remove
	})
	var inner *chunk.Chunk
	for c := range ctx.List.All() {
		if c.Kind == token.BraceOpen && c.Parent == token.If {
			inner = c
		}
	}
	if inner == nil {
		t.Fatal("no if brace")
	}
	if inner.NlBefore != 0 {
		t.Errorf("if brace NlBefore = %d", inner.NlBefore)
	}
}

func TestElseCuddling(t *testing.T) {
	ctx := plan(t, "void f(int x) {\n  if (x) {\n    g();\n  }\n  else {\n    h();\n  }\n}\n", func(o *options.Config) {
		o.NlBraceElse = options.Remove
	})
	if e := find(t, ctx, "else"); e.NlBefore != 0 {
		t.Errorf("else NlBefore = %d", e.NlBefore)
	}
}

func TestInitializerStaysOnOneLine(t *testing.T) {
	ctx := plan(t, "int a[] = { 1, 2, 3 };\n", nil)
	for c := range ctx.List.All() {
		if c.IsVisible() && c.Text != "int" && c.NlBefore != 0 {
			t.Errorf("%q moved to a new line", c.Text)
		}
	}
}

func TestForHeaderNotBroken(t *testing.T) {
	ctx := plan(t, "void f(void) { for (i = 0; i < 3; i++) g(); }", nil)
	if c := find(t, ctx, "i"); c.NlBefore != 0 {
		t.Errorf("for header broken: NlBefore = %d", c.NlBefore)
	}
}

func TestLineCommentForcesBreak(t *testing.T) {
	ctx := plan(t, "void f(int x) { if (x) { g(); } // note\n else { h(); } }", func(o *options.Config) {
		o.NlBraceElse = options.Remove
	})
	if c := find(t, ctx, "else"); c.NlBefore == 0 {
		t.Error("code joined onto a // comment")
	}
}

func TestDirectiveKeepsItsLine(t *testing.T) {
	ctx := plan(t, "int a;\n#define X 1\nint b;\n", nil)
	pound := find(t, ctx, "#")
	if pound.NlBefore != 1 {
		t.Errorf("# NlBefore = %d", pound.NlBefore)
	}
	var b *chunk.Chunk
	for c := range ctx.List.All() {
		if c.Text == "int" && c.OrigLine == 3 {
			b = c
		}
	}
	if b == nil || b.NlBefore != 1 {
		t.Error("line after directive joined")
	}
}

func TestBlankLinesKept(t *testing.T) {
	ctx := plan(t, "int a;\n\n\nint b;\n", nil)
	var b *chunk.Chunk
	for c := range ctx.List.All() {
		if c.Text == "int" && c.OrigLine == 4 {
			b = c
		}
	}
	if b == nil || b.NlBefore != 3 {
		t.Errorf("blank lines lost")
	}
}

func TestCollapseEmptyBody(t *testing.T) {
	ctx := plan(t, "void f(void)\n{\n}\n", func(o *options.Config) {
		o.NlCollapseEmpty = true
	})
	if c := find(t, ctx, "}"); c.NlBefore != 0 {
		t.Errorf("} NlBefore = %d", c.NlBefore)
	}
}

func TestSqueezeIfdef(t *testing.T) {
	src := "#ifdef A\n\n\nint a;\n\n#else\n\nint b;\n\n\n#endif\n"
	ctx := plan(t, src, func(o *options.Config) { o.NlSqueezeIfdef = true })
	for c := range ctx.List.All() {
		if c.IsVisible() && c.NlBefore > 1 {
			t.Errorf("%q at line %d keeps %d breaks", c.Text, c.OrigLine, c.NlBefore)
		}
	}
}
