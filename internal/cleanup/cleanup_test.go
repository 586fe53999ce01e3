package cleanup_test

import (
	"testing"

	"reform/internal/chunk"
	"reform/internal/cleanup"
	"reform/internal/dialect"
	"reform/internal/lexer"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/token"
)

func prepare(t *testing.T, lang dialect.Lang, src string) *state.Ctx {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.src", []byte(src)))
	ctx := state.New(file, nil, options.Defaults(), lang)
	lexer.Tokenize(ctx)
	cleanup.Tokens(ctx)
	return ctx
}

func find(ctx *state.Ctx, text string, nth int) *chunk.Chunk {
	for c := range ctx.List.All() {
		if c.Text == text {
			if nth == 0 {
				return c
			}
			nth--
		}
	}
	return nil
}

func TestOperatorValues(t *testing.T) {
	ctx := prepare(t, dialect.CPP, "bool operator==(A a); void operator()(); void* operator new[](size_t); operator bool();")

	if c := find(ctx, "==", 0); c.Kind != token.OperatorVal {
		t.Errorf("== kind = %s", c.Kind)
	}
	if c := find(ctx, "(", 1); c.Kind != token.OperatorVal {
		t.Errorf("call operator '(' kind = %s", c.Kind)
	}
	if c := find(ctx, ")", 1); c.Kind != token.OperatorVal {
		t.Errorf("call operator ')' kind = %s", c.Kind)
	}
	// the parameter list after operator() is a real paren
	if c := find(ctx, "(", 2); c.Kind != token.ParenOpen {
		t.Errorf("parameter '(' kind = %s", c.Kind)
	}
	if c := find(ctx, "new", 0); c.Kind != token.OperatorVal {
		t.Errorf("new kind = %s", c.Kind)
	}
	if c := find(ctx, "[]", 0); c.Kind != token.OperatorVal {
		t.Errorf("[] kind = %s", c.Kind)
	}
	if c := find(ctx, "bool", 1); c.Kind != token.Type {
		t.Errorf("conversion target kind = %s", c.Kind)
	}
}

func TestDeleteArray(t *testing.T) {
	ctx := prepare(t, dialect.CPP, "delete[] p;")
	c := find(ctx, "[]", 0)
	if c.Kind != token.TSquare || c.Parent != token.Delete {
		t.Errorf("[] = %s/%s", c.Kind, c.Parent)
	}
}

func TestElseIf(t *testing.T) {
	ctx := prepare(t, dialect.C, "if (a) x(); else if (b) y(); else\nif (c) z();")
	if !find(ctx, "if", 1).Flags.Has(token.FlagElseIf) {
		t.Error("same-line else if must be flagged")
	}
	if find(ctx, "if", 0).Flags.Has(token.FlagElseIf) {
		t.Error("plain if flagged")
	}
	if find(ctx, "if", 2).Flags.Has(token.FlagElseIf) {
		t.Error("if on the next line flagged")
	}
}

func TestTypeRun(t *testing.T) {
	ctx := prepare(t, dialect.C, "unsigned long int x; int y;")
	if find(ctx, "unsigned", 0).Flags.Has(token.FlagTypeRun) {
		t.Error("first type keyword flagged")
	}
	for _, w := range []string{"long", "int"} {
		if !find(ctx, w, 0).Flags.Has(token.FlagTypeRun) {
			t.Errorf("%s not flagged", w)
		}
	}
	if find(ctx, "int", 1).Flags.Has(token.FlagTypeRun) {
		t.Error("type after ';' flagged")
	}
}

func TestJavaRules(t *testing.T) {
	ctx := prepare(t, dialect.Java, "public @interface Marker {}\nvoid f() { synchronized (lock) { } }\nsynchronized void g();")
	if c := find(ctx, "@interface", 0); c.Kind != token.Class {
		t.Errorf("@interface kind = %s", c.Kind)
	}
	if c := find(ctx, "synchronized", 0); c.Kind != token.Lock {
		t.Errorf("synchronized statement kind = %s", c.Kind)
	}
	if c := find(ctx, "synchronized", 1); c.Kind != token.Qualifier {
		t.Errorf("synchronized modifier kind = %s", c.Kind)
	}
}

func TestCSharpUsingStatement(t *testing.T) {
	ctx := prepare(t, dialect.CS, "using System;\nvoid F() { using (var r = Open()) { } }")
	if c := find(ctx, "using", 0); c.Kind != token.Using {
		t.Errorf("using directive kind = %s", c.Kind)
	}
	if c := find(ctx, "using", 1); c.Kind != token.Lock {
		t.Errorf("using statement kind = %s", c.Kind)
	}
}

func TestIdempotent(t *testing.T) {
	src := "bool operator<(A); if (a) {} else if (b) {} unsigned short s; delete[] q;"
	ctx := prepare(t, dialect.CPP, src)
	type shape struct {
		kind, parent token.Kind
		flags        token.Flags
	}
	var before []shape
	for c := range ctx.List.All() {
		before = append(before, shape{c.Kind, c.Parent, c.Flags})
	}
	retyped := ctx.Stats.Retyped

	cleanup.Tokens(ctx)

	i := 0
	for c := range ctx.List.All() {
		if got := (shape{c.Kind, c.Parent, c.Flags}); got != before[i] {
			t.Errorf("chunk %d %q changed on second run: %+v -> %+v", i, c.Text, before[i], got)
		}
		i++
	}
	if ctx.Stats.Retyped != retyped {
		t.Errorf("second run fired %d rules", ctx.Stats.Retyped-retyped)
	}
	if ctx.List.Source() != src {
		t.Error("cleanup changed the text")
	}
}
