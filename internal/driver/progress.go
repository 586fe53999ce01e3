package driver

import "time"

// Phase describes a coarse step of formatting one file, as shown by the
// progress view.
type Phase string

const (
	// PhaseLex covers tokenizing and token cleanup.
	PhaseLex Phase = "lex"
	// PhaseStructure covers brace resolution and classification.
	PhaseStructure Phase = "structure"
	// PhaseLayout covers newlines, spacing, and indentation.
	PhaseLayout Phase = "layout"
	// PhaseAlign covers the alignment passes.
	PhaseAlign Phase = "align"
	// PhaseWrite covers rendering and writing the result.
	PhaseWrite Phase = "write"
)

// Status captures progress state within a phase.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is in the phase.
	StatusWorking Status = "working"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusError indicates the file could not be formatted.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Phase   Phase
	Status  Status
	Err     error
	Changed bool
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
