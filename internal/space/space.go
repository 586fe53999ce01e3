// Package space decides the gap between chunks that share an output line
// and lays out the columns of every line as if it started at column 1.
// The indentation engine later moves whole lines.
package space

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/state"
	"reform/internal/token"
)

// Apply sets Column for every printed chunk.
func Apply(ctx *state.Ctx) {
	l := ctx.List
	var prev *chunk.Chunk
	for i := l.Head(); i != 0; i = l.Next(i) {
		c := l.Get(i)
		if !c.IsVisible() {
			continue
		}
		if prev == nil || c.NlBefore > 0 {
			c.Column = 1
			prev = c
			continue
		}
		c.Column = prev.EndColumn() + Gap(ctx, prev, c)
		prev = c
	}
}

// Gap returns the number of blanks between l and r on one line.
func Gap(ctx *state.Ctx, l, r *chunk.Chunk) int {
	name, v := lookup(ctx.Opts, l, r)
	n := 0
	switch v {
	case options.Add, options.Force:
		n = 1
	case options.Ignore:
		n = original(ctx, l, r, name == "trailing-comment")
	}
	if n == 0 && needsSpace(l, r) {
		ctx.Decide("space.safety", "%q %q keep a blank", l.Text, r.Text)
		n = 1
	}
	if n > 0 && mustTouch(l, r) {
		n = 0
	}
	return n
}

func lookup(o *options.Config, l, r *chunk.Chunk) (string, options.IARF) {
	for _, ru := range rules {
		if ru.match(l, r) {
			return ru.name, ru.opt(o)
		}
	}
	return "", options.Ignore
}

// original measures the gap the input had: a joined line counts as one
// blank; only trailing comments keep a wider gap.
func original(ctx *state.Ctx, l, r *chunk.Chunk, wide bool) int {
	if ctx.List.NewlineBetween(l.ID, r.ID) {
		return 1
	}
	if r.Leading == "" {
		return 0
	}
	if wide {
		return max(r.LeadingWidth(ctx.Opts.InputTabSize), 1)
	}
	return 1
}

// needsSpace reports whether printing l and r with no gap would change how
// they lex.
func needsSpace(l, r *chunk.Chunk) bool {
	if l.Text == "" || r.Text == "" {
		return false
	}
	a, _ := utf8.DecodeLastRuneInString(l.Text)
	b, _ := utf8.DecodeRuneInString(r.Text)
	if isIdent(a) && isIdent(b) {
		return true
	}
	if l.Kind == token.Macro {
		// "#define X (1)" is not "#define X(1)"
		return r.Kind.IsParenOpen()
	}
	if l.Kind == token.Number && b == '.' {
		return true
	}
	return glues(a, b)
}

// mustTouch is the reverse: "#define F(x)" must stay a function-like macro.
func mustTouch(l, r *chunk.Chunk) bool {
	return l.Kind == token.MacroFunc && r.Kind.IsParenOpen()
}

func isIdent(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= utf8.RuneSelf
}

// glued pairs form a longer operator or a comment opener.
var glued = []string{
	"++", "--", "&&", "||", "<<", ">>", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=",
	"&=", "|=", "^=", "->", "::", "//", "/*", "*/", "..", "##", "=>", "<:", ":>", "<%", "%>",
}

func glues(a, b rune) bool {
	if a >= utf8.RuneSelf || b >= utf8.RuneSelf {
		return false
	}
	var sb strings.Builder
	sb.WriteRune(a)
	sb.WriteRune(b)
	s := sb.String()
	for _, g := range glued {
		if s == g {
			return true
		}
	}
	return false
}
