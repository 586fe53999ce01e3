package comments_test

import (
	"testing"

	"reform/internal/braces"
	"reform/internal/chunk"
	"reform/internal/cleanup"
	"reform/internal/comments"
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

func mark(t *testing.T, src string) []*chunk.Chunk {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	ctx := state.New(file, nil, options.Defaults(), dialect.C)
	lexer.Tokenize(ctx)
	cleanup.Tokens(ctx)
	braces.Resolve(ctx)
	symbols.Classify(ctx)
	labels.Combine(ctx)
	braces.Materialize(ctx)
	newlines.Plan(ctx)
	comments.Mark(ctx)
	var out []*chunk.Chunk
	for c := range ctx.List.All() {
		if c.Kind.IsComment() {
			out = append(out, c)
		}
	}
	return out
}

func TestTrailingAndWhole(t *testing.T) {
	got := mark(t, "/* head */\nint a; // tail\n// own line\nint b; /* also tail */\n")
	want := []token.Kind{token.CommentWhole, token.CommentEnd, token.CommentWhole, token.CommentEnd}
	if len(got) != len(want) {
		t.Fatalf("got %d comments", len(got))
	}
	for i, c := range got {
		if c.Parent != want[i] {
			t.Errorf("%q parent = %s, want %s", c.Text, c.Parent, want[i])
		}
		if (want[i] == token.CommentEnd) != c.Flags.Has(token.FlagRightComment) {
			t.Errorf("%q right-comment flag = %v", c.Text, c.Flags.Has(token.FlagRightComment))
		}
	}
}

func TestBoxComment(t *testing.T) {
	got := mark(t, "/*\n * box\n * lines\n */\nint a;\n/* not\n   boxed */\nint b;\n")
	if len(got) != 2 {
		t.Fatalf("got %d comments", len(got))
	}
	if !got[0].Flags.Has(token.FlagBoxComment) {
		t.Error("box comment not flagged")
	}
	if got[1].Flags.Has(token.FlagBoxComment) {
		t.Error("plain block comment flagged as box")
	}
}

func TestCommentPulledOntoLineIsTrailing(t *testing.T) {
	got := mark(t, "void f(void) { g(); /* why */ }")
	if len(got) != 1 || got[0].Parent != token.CommentEnd {
		t.Fatalf("got %v", got)
	}
}
