package indent_test

import (
	"strings"
	"testing"

	"reform/internal/braces"
	"reform/internal/cleanup"
	"reform/internal/comments"
	"reform/internal/dialect"
	"reform/internal/indent"
	"reform/internal/labels"
	"reform/internal/lexer"
	"reform/internal/newlines"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/space"
	"reform/internal/state"
	"reform/internal/symbols"
)

func indented(t *testing.T, lang dialect.Lang, src string, tweak func(*options.Config)) []string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.src", []byte(src)))
	opts := options.Defaults()
	if tweak != nil {
		tweak(opts)
	}
	ctx := state.New(file, nil, opts, lang)
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

	var lines []string
	var sb strings.Builder
	col := 1
	for c := range ctx.List.All() {
		if !c.IsVisible() {
			continue
		}
		if c.NlBefore > 0 && sb.Len() > 0 {
			lines = append(lines, sb.String())
			sb.Reset()
			col = 1
		}
		for col < c.Column {
			sb.WriteByte(' ')
			col++
		}
		sb.WriteString(c.Text)
		col += c.Width()
	}
	return append(lines, sb.String())
}

func check(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestNesting(t *testing.T) {
	got := indented(t, dialect.C, "if(x){foo();}", nil)
	check(t, got, []string{
		"if (x) {",
		"    foo();",
		"}",
	})
}

func TestNestedBlocks(t *testing.T) {
	got := indented(t, dialect.C, "void f(void) {\nif (a) {\nb();\n}\n}\n", nil)
	check(t, got, []string{
		"void f(void) {",
		"    if (a) {",
		"        b();",
		"    }",
		"}",
	})
}

func TestSwitchCases(t *testing.T) {
	src := "void f(int x) { switch (x) { case 1: g(); break; default: break; } }"
	got := indented(t, dialect.C, src, func(o *options.Config) { o.NlAfterCase = true })
	check(t, got, []string{
		"void f(int x) {",
		"    switch (x) {",
		"    case 1:",
		"        g();",
		"        break;",
		"    default:",
		"        break;",
		"    }",
		"}",
	})
}

func TestSwitchCaseOffset(t *testing.T) {
	src := "void f(int x) {\nswitch (x) {\ncase 1:\ng();\n}\n}\n"
	got := indented(t, dialect.C, src, func(o *options.Config) { o.IndentSwitchCase = 4 })
	check(t, got, []string{
		"void f(int x) {",
		"    switch (x) {",
		"        case 1:",
		"            g();",
		"    }",
		"}",
	})
}

func TestBracelessBody(t *testing.T) {
	got := indented(t, dialect.C, "void f(int x)\n{\nif (x)\ng();\nh();\n}\n", nil)
	check(t, got, []string{
		"void f(int x)",
		"{",
		"    if (x)",
		"        g();",
		"    h();",
		"}",
	})
}

func TestParenHang(t *testing.T) {
	got := indented(t, dialect.C, "void f(void) {\nfoo(a,\nb);\n}\n", nil)
	check(t, got, []string{
		"void f(void) {",
		"    foo(a,",
		"        b);",
		"}",
	})
}

func TestContinuationLine(t *testing.T) {
	got := indented(t, dialect.C, "void f(void) {\nx = a +\nb;\n}\n", nil)
	check(t, got, []string{
		"void f(void) {",
		"    x = a +",
		"        b;",
		"}",
	})
}

func TestPreprocessorIndent(t *testing.T) {
	src := "#if A\n  #define X 1\n#endif\n"
	got := indented(t, dialect.C, src, func(o *options.Config) { o.PPIndent = options.Add })
	check(t, got, []string{"#if A", " #define X 1", "#endif"})

	got = indented(t, dialect.C, src, func(o *options.Config) { o.PPIndent = options.Remove })
	check(t, got, []string{"#if A", "#define X 1", "#endif"})
}

func TestConditionalBranchesShareIndent(t *testing.T) {
	src := "void f(void) {\n#ifdef A\nif (a) {\n#else\nif (b) {\n#endif\ng();\n}\n}\n"
	got := indented(t, dialect.C, src, nil)
	check(t, got, []string{
		"void f(void) {",
		"#ifdef A",
		"    if (a) {",
		"#else",
		"    if (b) {",
		"#endif",
		"        g();",
		"    }",
		"}",
	})
}

func TestAccessSpecifiers(t *testing.T) {
	got := indented(t, dialect.CPP, "class A {\npublic:\nint x;\n};\n", nil)
	check(t, got, []string{
		"class A {",
		"public:",
		"    int x;",
		"};",
	})
}

func TestNamespaceBody(t *testing.T) {
	got := indented(t, dialect.CPP, "namespace n {\nint x;\n}\n", nil)
	check(t, got, []string{"namespace n {", "int x;", "}"})

	got = indented(t, dialect.CPP, "namespace n {\nint x;\n}\n", func(o *options.Config) { o.IndentNamespace = true })
	check(t, got, []string{"namespace n {", "    int x;", "}"})
}

func TestLabelColumn(t *testing.T) {
	got := indented(t, dialect.C, "void f(void) {\nagain:\ng();\n}\n", nil)
	check(t, got, []string{"void f(void) {", "again:", "    g();", "}"})
}
