package braces

import (
	"slices"

	"reform/internal/chunk"
	"reform/internal/token"
)

type frameKind uint8

const (
	frameBrace frameKind = iota + 1
	frameVBrace
	frameParen
	frameStmt
)

// stage is how far a statement frame got through its syntax.
type stage uint8

const (
	stageNone stage = iota
	// if/for/while/switch/catch/lock: expecting '('
	stageParen1
	// after the ')' or after else/try/finally: expecting the body
	stageBrace2
	// after do: expecting the body
	stageBraceDo
	// body of if done: else may follow
	stageElse
	// body of do done: expecting while
	stageWhile
	// do ... while: expecting '('
	stageWodParen
	// do ... while (...): expecting ';'
	stageWodSemi
)

var stageNames = [...]string{"none", "paren1", "brace2", "braceDo", "else", "while", "wodParen", "wodSemi"}

func (s stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "?"
}

type frame struct {
	kind frameKind
	// tok is the bracket kind for brace/paren frames and the keyword for
	// statement frames.
	tok  token.Kind
	open chunk.Index
	// parent is the statement owning a brace or vbrace body.
	parent token.Kind
	stage  stage
	// vb indexes ctx.VBraces for virtual frames.
	vb int
	// reopened marks a virtual body entered again by a later #else branch.
	reopened bool
	// end is the last chunk of a finished statement body.
	end chunk.Index
}

// frameStack is the open-construct stack of the code being resolved.
type frameStack struct {
	frames []frame
}

func (s *frameStack) push(f frame) { s.frames = append(s.frames, f) }

// pop removes and returns the top frame; ok is false on an empty stack.
func (s *frameStack) pop() (frame, bool) {
	if len(s.frames) == 0 {
		return frame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *frameStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *frameStack) len() int { return len(s.frames) }

// depth counts brace and vbrace frames.
func (s *frameStack) depth() int {
	n := 0
	for _, f := range s.frames {
		if f.kind == frameBrace || f.kind == frameVBrace {
			n++
		}
	}
	return n
}

// findOpen returns the position of the nearest paren frame of kind tok that
// is not hidden behind a brace; -1 when there is none.
func (s *frameStack) findOpen(tok token.Kind) int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		switch f.kind {
		case frameParen:
			if f.tok == tok {
				return i
			}
		case frameBrace:
			return -1
		}
	}
	return -1
}

// hasBrace reports whether any real brace is open.
func (s *frameStack) hasBrace() bool {
	return slices.ContainsFunc(s.frames, func(f frame) bool { return f.kind == frameBrace })
}

func (s *frameStack) clone() frameStack {
	return frameStack{frames: slices.Clone(s.frames)}
}

// parseState is everything #else has to rewind.
type parseState struct {
	frames     frameStack
	level      int
	braceLevel int
	parenLevel int
}

func (p *parseState) clone() parseState {
	c := *p
	c.frames = p.frames.clone()
	return c
}

// ppFrame is one #if ... #endif in flight.
type ppFrame struct {
	open chunk.Index
	// entry is the state before the #if line
	entry parseState
	// ifEnd is the state at the end of the #if branch, set by the first #else
	ifEnd    *parseState
	branches int
}

// ppStack tracks conditional directives independently of the code frames.
type ppStack struct {
	frames []ppFrame
}

func (s *ppStack) push(f ppFrame) { s.frames = append(s.frames, f) }

func (s *ppStack) pop() (ppFrame, bool) {
	if len(s.frames) == 0 {
		return ppFrame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *ppStack) top() *ppFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *ppStack) len() int { return len(s.frames) }
