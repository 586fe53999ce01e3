package align_test

import (
	"strings"
	"testing"

	"reform/internal/align"
	"reform/internal/braces"
	"reform/internal/chunk"
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
	"reform/internal/token"
)

func aligned(t *testing.T, src string, tweak func(*options.Config)) (*state.Ctx, []string) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	opts := options.Defaults()
	tweak(opts)
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
	align.Preprocessor(ctx)
	indent.Apply(ctx)
	align.All(ctx)
	indent.Apply(ctx)
	align.TrailingComments(ctx)
	if opts.AlignNlCont {
		align.BackslashNewline(ctx)
	}
	return ctx, render(ctx)
}

func render(ctx *state.Ctx) []string {
	return strings.Split(strings.TrimRight(string(output.Text(ctx)), "\n"), "\n")
}

func check(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestDeclarationRun(t *testing.T) {
	ctx, got := aligned(t, "int a;\nfloat bb;\ndouble ccc;\n", func(o *options.Config) {
		o.AlignVarDefSpan = 1
	})
	check(t, got, []string{
		"int    a;",
		"float  bb;",
		"double ccc;",
	})
	for c := range ctx.List.All() {
		if c.Flags.Has(token.FlagVarDef) && c.AlignClass != chunk.AlignVarDef {
			t.Errorf("%q class = %s", c.Text, c.AlignClass)
		}
	}
}

func TestDeclarationStarsAlignWithNames(t *testing.T) {
	_, got := aligned(t, "int *a;\nlong bb;\n", func(o *options.Config) {
		o.AlignVarDefSpan = 1
	})
	check(t, got, []string{
		"int  *a;",
		"long bb;",
	})
}

func TestAssignRun(t *testing.T) {
	_, got := aligned(t, "void f(void) {\na = 1;\nbbb = 2;\n}\n", func(o *options.Config) {
		o.AlignAssignSpan = 1
	})
	check(t, got, []string{
		"void f(void) {",
		"    a   = 1;",
		"    bbb = 2;",
		"}",
	})
}

func TestSpanBreaksRun(t *testing.T) {
	_, got := aligned(t, "void f(void) {\na = 1;\n\nbbb = 2;\n}\n", func(o *options.Config) {
		o.AlignAssignSpan = 1
	})
	check(t, got, []string{
		"void f(void) {",
		"    a = 1;",
		"",
		"    bbb = 2;",
		"}",
	})
}

func TestAssignThreshold(t *testing.T) {
	_, got := aligned(t, "void f(void) {\na = 1;\nbbbbbbbbbb = 2;\n}\n", func(o *options.Config) {
		o.AlignAssignSpan = 1
		o.AlignAssignThresh = 4
	})
	check(t, got, []string{
		"void f(void) {",
		"    a = 1;",
		"    bbbbbbbbbb = 2;",
		"}",
	})
}

func TestEnumValues(t *testing.T) {
	_, got := aligned(t, "enum e {\nA = 1,\nBBB = 2\n};\n", func(o *options.Config) {
		o.AlignEnumEquSpan = 1
	})
	check(t, got, []string{
		"enum e {",
		"    A   = 1,",
		"    BBB = 2",
		"};",
	})
}

func TestTrailingComments(t *testing.T) {
	_, got := aligned(t, "int a; // x\nint bbb; // y\n", func(o *options.Config) {
		o.AlignRightCmtSpan = 1
	})
	check(t, got, []string{
		"int a;   // x",
		"int bbb; // y",
	})
}

func TestDefineValues(t *testing.T) {
	_, got := aligned(t, "#define A 1\n#define BBB 2\n", func(o *options.Config) {
		o.AlignPPDefineSpan = 1
	})
	check(t, got, []string{
		"#define A   1",
		"#define BBB 2",
	})
}

func TestBackslashes(t *testing.T) {
	ctx, _ := aligned(t, "#define M(x) \\\n  do { x; } \\\n  while (0)\n", func(o *options.Config) {
		o.AlignNlCont = true
	})
	var cols []int
	for c := range ctx.List.All() {
		if c.Kind == token.NlCont {
			cols = append(cols, c.Column)
		}
	}
	if len(cols) != 2 || cols[0] != cols[1] {
		t.Errorf("backslash columns %v", cols)
	}
}

func TestTypedefNames(t *testing.T) {
	_, got := aligned(t, "typedef int myint;\ntypedef unsigned long ulong_t;\n", func(o *options.Config) {
		o.AlignTypedefSpan = 1
	})
	check(t, got, []string{
		"typedef int           myint;",
		"typedef unsigned long ulong_t;",
	})
}
