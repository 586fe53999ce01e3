package chunk

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"reform/internal/source"
	"reform/internal/token"
)

// Index addresses a chunk inside a List. Zero means "no chunk".
type Index uint32

// AlignClass records which alignment pass owns a chunk's column.
type AlignClass uint8

const (
	AlignNone AlignClass = iota
	AlignVarDef
	AlignAssign
	AlignEnumEqu
	AlignTypedef
	AlignPPDefine
	AlignTrailingComment
	AlignNlCont
)

func (a AlignClass) String() string {
	switch a {
	case AlignVarDef:
		return "var_def"
	case AlignAssign:
		return "assign"
	case AlignEnumEqu:
		return "enum_equ"
	case AlignTypedef:
		return "typedef"
	case AlignPPDefine:
		return "pp_define"
	case AlignTrailingComment:
		return "trailing_comment"
	case AlignNlCont:
		return "nl_cont"
	}
	return ""
}

// Chunk is one token of the stream plus everything the stages learned about it.
type Chunk struct {
	ID      Index
	Kind    token.Kind
	Parent  token.Kind
	Text    string
	Leading string
	Span    source.Span
	Flags   token.Flags

	// position in the input; both zero for synthetic chunks
	OrigLine uint32
	OrigCol  uint32
	// NlCount is the number of line breaks a Newline chunk stands for.
	NlCount int

	Level      int // real braces only
	BraceLevel int // real and virtual braces
	ParenLevel int
	PPLevel    int

	// NlBefore is the number of line breaks emitted before this chunk.
	NlBefore int
	// Column is the 1-based output column; 0 until spacing runs.
	Column int

	AlignClass AlignClass
	// Match links an opening bracket with its closing partner and back.
	Match Index

	prev, next Index
}

// Is reports whether c has one of the given kinds.
func (c *Chunk) Is(kinds ...token.Kind) bool {
	if c == nil {
		return false
	}
	for _, k := range kinds {
		if c.Kind == k {
			return true
		}
	}
	return false
}

// IsVisible reports whether the renderer prints the chunk.
func (c *Chunk) IsVisible() bool {
	return c != nil && c.Kind != token.Newline && !c.Kind.IsVirtual()
}

// IsSynthetic reports whether the chunk was inserted by a stage.
func (c *Chunk) IsSynthetic() bool {
	return c != nil && c.Flags.Has(token.FlagSynthetic)
}

// InPreproc reports whether c belongs to a directive line.
func (c *Chunk) InPreproc() bool {
	return c != nil && c.Flags.Has(token.FlagInPreproc)
}

// IsMultiLine reports whether the chunk text spans lines.
func (c *Chunk) IsMultiLine() bool {
	return strings.IndexByte(c.Text, '\n') >= 0
}

// Width is the display width of the chunk's last line.
func (c *Chunk) Width() int {
	text := c.Text
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return runewidth.StringWidth(text)
}

// EndColumn is the column right after the chunk.
// Multi-line chunks end relative to the start of their last line.
func (c *Chunk) EndColumn() int {
	if c.IsMultiLine() {
		return c.Width() + 1
	}
	return c.Column + c.Width()
}

// LeadingWidth is the width of the original whitespace before the chunk,
// with tabs expanded at tabSize from origCol-1.
func (c *Chunk) LeadingWidth(tabSize int) int {
	if c.Leading == "" {
		return 0
	}
	if tabSize <= 0 {
		tabSize = 8
	}
	// Leading is only blanks and tabs, one byte each
	start := max(int(c.OrigCol)-1-len(c.Leading), 0)
	col := start
	for _, r := range c.Leading {
		if r == '\t' {
			col += tabSize - col%tabSize
			continue
		}
		col++
	}
	return col - start
}
