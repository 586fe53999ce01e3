package token

import (
	"reform/internal/source"
)

// Token represents a single lexeme with its location and leading whitespace.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading string
	Flags   Flags
	// NlCount is the number of line breaks in a Newline token.
	NlCount int
}

// IsEOF reports whether the token is the zero token returned at end of input.
func (t Token) IsEOF() bool { return t.Kind == Invalid }
