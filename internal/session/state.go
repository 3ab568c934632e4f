package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Phase is the state-machine phase derived from State.
type Phase int

const (
	PhaseMenu     Phase = iota // No operation chosen
	PhaseAwaiting              // Exercise shown, waiting for an answer
	PhaseFeedback              // Answer judged, auto-advance pending
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseAwaiting:
		return "awaiting"
	case PhaseFeedback:
		return "feedback"
	}
	return "unknown"
}

// Feedback is the verdict on the most recent submission.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	}
	return "none"
}

// State is the observable session state owned by a Controller.
type State struct {
	// Operation is the drilled operation; nil on the menu.
	Operation *problemgen.Operation

	// Exercise is the active exercise; nil exactly when Operation is nil.
	Exercise *problemgen.Exercise

	// Input is the raw answer text, unvalidated until submission.
	Input string

	// Feedback is set only while the auto-advance is pending.
	Feedback Feedback

	// Score accumulates over the whole session, across operation switches.
	Score Score

	// ShownAt is when the active exercise was first displayed.
	ShownAt time.Time
}

// Phase derives the state-machine phase.
func (s State) Phase() Phase {
	switch {
	case s.Operation == nil:
		return PhaseMenu
	case s.Feedback != FeedbackNone:
		return PhaseFeedback
	default:
		return PhaseAwaiting
	}
}

// clone returns a copy that shares no pointers with s.
func (s State) clone() State {
	out := s
	if s.Operation != nil {
		op := *s.Operation
		out.Operation = &op
	}
	if s.Exercise != nil {
		ex := *s.Exercise
		out.Exercise = &ex
	}
	return out
}
