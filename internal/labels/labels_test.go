package labels_test

import (
	"testing"

	"reform/internal/braces"
	"reform/internal/chunk"
	"reform/internal/cleanup"
	"reform/internal/dialect"
	"reform/internal/labels"
	"reform/internal/lexer"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/symbols"
	"reform/internal/token"
)

func combine(t *testing.T, lang dialect.Lang, src string) *state.Ctx {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.src", []byte(src)))
	ctx := state.New(file, nil, options.Defaults(), lang)
	lexer.Tokenize(ctx)
	cleanup.Tokens(ctx)
	braces.Resolve(ctx)
	symbols.Classify(ctx)
	labels.Combine(ctx)
	return ctx
}

func colons(ctx *state.Ctx) []*chunk.Chunk {
	var out []*chunk.Chunk
	for c := range ctx.List.All() {
		if c.Text == ":" {
			out = append(out, c)
		}
	}
	return out
}

func TestColonKinds(t *testing.T) {
	tests := []struct {
		name string
		lang dialect.Lang
		src  string
		want []token.Kind
	}{
		{
			name: "switch",
			lang: dialect.C,
			src:  "void f(int x) { switch (x) { case 1: break; default: break; } }",
			want: []token.Kind{token.CaseColon, token.CaseColon},
		},
		{
			name: "ternary",
			lang: dialect.C,
			src:  "int f(int a) { return a ? 1 : 2; }",
			want: []token.Kind{token.CondColon},
		},
		{
			name: "nested ternary",
			lang: dialect.C,
			src:  "int f(int a, int b) { return a ? b ? 1 : 2 : 3; }",
			want: []token.Kind{token.CondColon, token.CondColon},
		},
		{
			name: "label",
			lang: dialect.C,
			src:  "void f(void) { again: f(); goto again; }",
			want: []token.Kind{token.LabelColon},
		},
		{
			name: "bitfield",
			lang: dialect.C,
			src:  "struct s { unsigned a : 3; };",
			want: []token.Kind{token.BitColon},
		},
		{
			name: "access and base class",
			lang: dialect.CPP,
			src:  "class B : public A { public: int x; };",
			want: []token.Kind{token.ClassColon, token.PrivateColon},
		},
		{
			name: "constructor initializer",
			lang: dialect.CPP,
			src:  "A::A() : x(1) {}",
			want: []token.Kind{token.ClassColon},
		},
		{
			name: "range for",
			lang: dialect.CPP,
			src:  "void f() { for (auto x : v) g(x); }",
			want: []token.Kind{token.BitColon},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := combine(t, tt.lang, tt.src)
			got := colons(ctx)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d colons, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if c.Kind != tt.want[i] {
					t.Errorf("colon %d = %s, want %s", i, c.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLabelWordIsRetyped(t *testing.T) {
	ctx := combine(t, dialect.C, "void f(void) { again: f(); }")
	for c := range ctx.List.All() {
		if c.Text == "again" && c.Kind != token.Label {
			t.Errorf("again kind = %s", c.Kind)
		}
	}
}

func TestNoColonLeftUnresolved(t *testing.T) {
	src := "#define PICK(a, b) ((a) ? (b) : 0)\nstruct s { int a : 1; };\nint g(int x) { switch (x) { case 2: return x ? 1 : 0; } return 0; }\n"
	ctx := combine(t, dialect.C, src)
	for c := range ctx.List.All() {
		if c.Kind == token.Colon {
			t.Errorf("unresolved colon at %d:%d", c.OrigLine, c.OrigCol)
		}
	}
}
