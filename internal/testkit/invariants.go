// Package testkit holds checks on the chunk stream shared by the tests of
// several packages: properties every run must keep, whatever the options.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"reform/internal/chunk"
	"reform/internal/source"
	"reform/internal/token"
)

// CheckLevels verifies the nesting levels of a resolved stream: no level
// is negative, a matched pair shares its levels, and code inside a real
// brace pair sits deeper than the braces.
func CheckLevels(l *chunk.List) error {
	for c := range l.All() {
		if c.Level < 0 || c.BraceLevel < 0 || c.ParenLevel < 0 || c.PPLevel < 0 {
			return fmt.Errorf("chunk %d %q: negative level %d/%d/%d/%d",
				c.ID, c.Text, c.Level, c.BraceLevel, c.ParenLevel, c.PPLevel)
		}
		if c.Level > c.BraceLevel {
			return fmt.Errorf("chunk %d %q: level %d above brace level %d", c.ID, c.Text, c.Level, c.BraceLevel)
		}
		if c.Match == 0 || !c.Kind.IsOpen() || c.Kind == token.AngleOpen {
			continue
		}
		m := l.Get(c.Match)
		if m == nil || m.Match != c.ID {
			return fmt.Errorf("chunk %d %q: broken match link", c.ID, c.Text)
		}
		if m.Level != c.Level || m.BraceLevel != c.BraceLevel {
			return fmt.Errorf("chunk %d %q: level %d/%d, its partner %d/%d",
				c.ID, c.Text, c.Level, c.BraceLevel, m.Level, m.BraceLevel)
		}
		if c.Kind != token.BraceOpen || c.InPreproc() || l.Next(c.ID) == m.ID {
			continue
		}
		for in := range l.Range(l.Next(c.ID), l.Prev(m.ID)) {
			if in.InPreproc() || in.Kind == token.Newline || in.Kind.IsComment() {
				continue
			}
			if in.Level <= c.Level {
				return fmt.Errorf("chunk %d %q inside '{' at %d:%d has level %d, want > %d",
					in.ID, in.Text, c.OrigLine, c.OrigCol, in.Level, c.Level)
			}
		}
	}
	return nil
}

// CheckSpans verifies that every chunk taken from the input points inside
// file and that such chunks appear in source order.
func CheckSpans(l *chunk.List, file *source.File) error {
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("content length: %w", err)
	}
	var last uint32
	for c := range l.All() {
		if c.IsSynthetic() {
			continue
		}
		if c.Span.End > size || c.Span.Start > c.Span.End {
			return fmt.Errorf("chunk %d %q: span %d..%d outside the file", c.ID, c.Text, c.Span.Start, c.Span.End)
		}
		if c.Span.Start < last {
			return fmt.Errorf("chunk %d %q: starts at %d before %d", c.ID, c.Text, c.Span.Start, last)
		}
		last = c.Span.Start
	}
	return nil
}
