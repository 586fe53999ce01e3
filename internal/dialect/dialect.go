package dialect

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Lang is a set of languages. Keyword tables use it as a mask; a resolved
// file carries exactly one bit.
type Lang uint8

const (
	C Lang = 1 << iota
	CPP
	D
	CS
	Java

	// None is the zero value returned for unknown tags.
	None Lang = 0
	// All matches every language.
	All = C | CPP | D | CS | Java
	// CFamily are the languages with a C preprocessor.
	CFamily = C | CPP
)

type langEntry struct {
	ext  []string
	tag  string
	lang Lang
}

var languages = []langEntry{
	{ext: []string{".c", ".h"}, tag: "C", lang: C},
	{ext: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}, tag: "CPP", lang: CPP},
	{ext: []string{".d", ".di"}, tag: "D", lang: D},
	{ext: []string{".cs"}, tag: "CS", lang: CS},
	{ext: []string{".java"}, tag: "JAVA", lang: Java},
}

// Has reports whether l shares any language with other.
func (l Lang) Has(other Lang) bool {
	return l&other != 0
}

// String returns the tag of the first language in l.
func (l Lang) String() string {
	for _, e := range languages {
		if l&e.lang != 0 {
			return e.tag
		}
	}
	return "???"
}

func (l Lang) GoString() string {
	return fmt.Sprintf("dialect.Lang(%s)", l.String())
}

// FromTag parses a language tag, case-insensitively.
func FromTag(tag string) (Lang, bool) {
	for _, e := range languages {
		if strings.EqualFold(tag, e.tag) {
			return e.lang, true
		}
	}
	return None, false
}

// FromFilename picks the language from the file extension, defaulting to C.
func FromFilename(name string) Lang {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range languages {
		for _, x := range e.ext {
			if ext == x {
				return e.lang
			}
		}
	}
	return C
}

// IsHeader reports whether name has an extension shared by C and C++.
func IsHeader(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".h")
}

// Extensions lists every extension FromFilename recognizes.
func Extensions() []string {
	var out []string
	for _, e := range languages {
		out = append(out, e.ext...)
	}
	return out
}
