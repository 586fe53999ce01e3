package chunk

import (
	"iter"
	"strings"

	"reform/internal/token"
)

// List is the ordered chunk stream.
type List struct {
	arena      *Arena[Chunk]
	head, tail Index
	count      int
}

// NewList creates an empty list with room for capHint chunks.
func NewList(capHint uint) *List {
	return &List{arena: NewArena[Chunk](capHint)}
}

// FromTokens builds a list in token order.
func FromTokens(toks []token.Token, origin func(off uint32) (line, col uint32)) *List {
	l := NewList(uint(len(toks)))
	for _, tok := range toks {
		line, col := origin(tok.Span.Start)
		l.Append(Chunk{
			Kind:     tok.Kind,
			Text:     tok.Text,
			Leading:  tok.Leading,
			Span:     tok.Span,
			Flags:    tok.Flags,
			NlCount:  tok.NlCount,
			OrigLine: line,
			OrigCol:  col,
		})
	}
	return l
}

// Get returns the chunk at i, nil for 0.
func (l *List) Get(i Index) *Chunk {
	return l.arena.Get(uint32(i))
}

func (l *List) Head() Index { return l.head }
func (l *List) Tail() Index { return l.tail }
func (l *List) Len() int    { return l.count }

// Next returns the successor of i in document order.
func (l *List) Next(i Index) Index {
	if c := l.Get(i); c != nil {
		return c.next
	}
	return 0
}

// Prev returns the predecessor of i in document order.
func (l *List) Prev(i Index) Index {
	if c := l.Get(i); c != nil {
		return c.prev
	}
	return 0
}

// Append adds c at the end of the list.
func (l *List) Append(c Chunk) Index {
	id := Index(l.arena.Allocate(c))
	n := l.Get(id)
	n.ID = id
	n.prev = l.tail
	n.next = 0
	if l.tail != 0 {
		l.Get(l.tail).next = id
	} else {
		l.head = id
	}
	l.tail = id
	l.count++
	return id
}

// InsertAfter links c right after at. at == 0 inserts at the head.
func (l *List) InsertAfter(at Index, c Chunk) Index {
	if at == 0 {
		return l.insertHead(c)
	}
	if at == l.tail {
		return l.Append(c)
	}
	id := Index(l.arena.Allocate(c))
	n, a := l.Get(id), l.Get(at)
	n.ID = id
	n.prev = at
	n.next = a.next
	l.Get(a.next).prev = id
	a.next = id
	l.count++
	return id
}

// InsertBefore links c right before at.
func (l *List) InsertBefore(at Index, c Chunk) Index {
	return l.InsertAfter(l.Prev(at), c)
}

func (l *List) insertHead(c Chunk) Index {
	if l.head == 0 {
		return l.Append(c)
	}
	id := Index(l.arena.Allocate(c))
	n := l.Get(id)
	n.ID = id
	n.next = l.head
	l.Get(l.head).prev = id
	l.head = id
	l.count++
	return id
}

// All iterates chunks in document order. Insertions after the current chunk
// are visited.
func (l *List) All() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for i := l.head; i != 0; i = l.Next(i) {
			if !yield(l.Get(i)) {
				return
			}
		}
	}
}

// Range iterates from first up to and including last.
func (l *List) Range(first, last Index) iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for i := first; i != 0; i = l.Next(i) {
			if !yield(l.Get(i)) || i == last {
				return
			}
		}
	}
}

// Source reproduces the input from Leading+Text. Before any stage inserts
// chunks it is byte-identical to the lexed buffer.
func (l *List) Source() string {
	var sb strings.Builder
	for c := range l.All() {
		sb.WriteString(c.Leading)
		sb.WriteString(c.Text)
	}
	return sb.String()
}
