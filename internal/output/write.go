package output

import (
	"github.com/mattn/go-runewidth"
)

// Writer accumulates rendered text and tracks the display column of the
// current line.
type Writer struct {
	buf         []byte
	col         int
	tabSize     int
	useTabs     bool
	atLineStart bool
}

// NewWriter creates a writer for output of roughly size bytes.
func NewWriter(size, tabSize int, useTabs bool) *Writer {
	if tabSize <= 0 {
		tabSize = 8
	}
	return &Writer{
		buf:         make([]byte, 0, size),
		col:         1,
		tabSize:     tabSize,
		useTabs:     useTabs,
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Column is the display column the next byte lands in.
func (w *Writer) Column() int {
	return w.col
}

// PadTo moves to column col. At the start of a line the indent may use
// tabs; elsewhere only spaces are written.
func (w *Writer) PadTo(col int) {
	if w.atLineStart && w.useTabs {
		for w.col+w.tabSize-(w.col-1)%w.tabSize <= col {
			w.buf = append(w.buf, '\t')
			w.col += w.tabSize - (w.col-1)%w.tabSize
		}
	}
	for w.col < col {
		w.buf = append(w.buf, ' ')
		w.col++
	}
}

// Space writes n blanks.
func (w *Writer) Space(n int) {
	for range n {
		w.buf = append(w.buf, ' ')
		w.col++
	}
}

// WriteString writes text that holds no line break.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.col += runewidth.StringWidth(s)
	w.atLineStart = false
}

// Newlines ends the current line n times. Trailing blanks are dropped first.
func (w *Writer) Newlines(n int) {
	w.trimTrailing()
	for range n {
		w.buf = append(w.buf, '\n')
	}
	w.col = 1
	w.atLineStart = true
}

func (w *Writer) trimTrailing() {
	end := len(w.buf)
	for end > 0 && (w.buf[end-1] == ' ' || w.buf[end-1] == '\t') {
		end--
	}
	w.buf = w.buf[:end]
}

// TrimNewlines removes every line break at the end of the output.
func (w *Writer) TrimNewlines() {
	end := len(w.buf)
	for end > 0 && (w.buf[end-1] == '\n' || w.buf[end-1] == ' ' || w.buf[end-1] == '\t') {
		end--
	}
	w.buf = w.buf[:end]
}
