package lexer

import (
	"testing"

	"reform/internal/source"
)

func cursorOver(content string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.AddVirtual("test.c", []byte(content))))
}

func TestCursorWalk(t *testing.T) {
	c := cursorOver("a\nb")
	for i, want := range []byte("a\nb") {
		if c.EOF() {
			t.Fatalf("EOF at %d", i)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("byte %d = %q, want %q", i, got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("cursor past the end still yields bytes")
	}
}

func TestCursorLookahead(t *testing.T) {
	c := cursorOver("/*x*/")
	if b0, b1, ok := c.Peek2(); !ok || b0 != '/' || b1 != '*' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if c.PeekAt(3) != '*' || c.PeekAt(5) != 0 {
		t.Fatalf("PeekAt wrong")
	}
	if !c.HasPrefix("/*") || c.HasPrefix("//") || c.HasPrefix("/*x*/ ") {
		t.Fatalf("HasPrefix wrong")
	}
	c.BumpN(4)
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 succeeded on the last byte")
	}
	c.BumpN(10)
	if !c.EOF() {
		t.Fatalf("BumpN ran past the limit without reaching EOF")
	}
}

func TestCursorMarks(t *testing.T) {
	c := cursorOver("int  x;")
	c.BumpN(5)
	m := c.Mark()
	if !c.Eat('x') || c.Eat('x') {
		t.Fatalf("Eat wrong")
	}
	sp := c.SpanFrom(m)
	if sp.Start != 5 || sp.End != 6 || c.TextFrom(m) != "x" {
		t.Fatalf("span %d..%d text %q", sp.Start, sp.End, c.TextFrom(m))
	}
	c.Reset(m)
	if c.Peek() != 'x' {
		t.Fatalf("Reset did not rewind")
	}
}

func TestCursorLimit(t *testing.T) {
	c := cursorOver("abc #define")
	c.Limit = 3
	c.BumpN(3)
	if !c.EOF() || c.Peek() != 0 || c.HasPrefix(" ") {
		t.Fatalf("cursor ignored its limit")
	}
}
