package options

import (
	"fmt"
	"strings"
)

// IARF is the four-way option value used by newline and spacing rules.
type IARF uint8

const (
	Ignore IARF = iota
	Add
	Remove
	Force
)

func (v IARF) String() string {
	switch v {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Force:
		return "force"
	}
	return "ignore"
}

// ParseIARF accepts the option names case-insensitively.
func ParseIARF(s string) (IARF, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "i":
		return Ignore, nil
	case "add", "a":
		return Add, nil
	case "remove", "r":
		return Remove, nil
	case "force", "f":
		return Force, nil
	}
	return Ignore, fmt.Errorf("expected ignore|add|remove|force, got %q", s)
}

// Adds reports whether the value asks for the thing to be present.
func (v IARF) Adds() bool { return v == Add || v == Force }

// Removes reports whether the value asks for the thing to be absent.
func (v IARF) Removes() bool { return v == Remove }

// LineEnding selects the newline sequence of the output.
type LineEnding uint8

const (
	LineEndingAuto LineEnding = iota
	LineEndingLF
	LineEndingCRLF
)

func (e LineEnding) String() string {
	switch e {
	case LineEndingLF:
		return "lf"
	case LineEndingCRLF:
		return "crlf"
	}
	return "auto"
}

// ParseLineEnding parses auto|lf|crlf.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return LineEndingAuto, nil
	case "lf":
		return LineEndingLF, nil
	case "crlf":
		return LineEndingCRLF, nil
	}
	return LineEndingAuto, fmt.Errorf("expected auto|lf|crlf, got %q", s)
}
