// Package drill is the exercise screen: one exercise, an answer field and
// the verdict of the last submission.
package drill

import (
	"context"
	"log"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// DrillScreen implements screen.Screen for an operation being drilled.
// The controller must already have an operation selected.
type DrillScreen struct {
	ctrl      *session.Controller
	attempts  store.AttemptRepo
	sessionID string
	input     components.TextInput

	// last is the most recent submission, shown while in feedback.
	last *session.Submission
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a DrillScreen. attempts may be nil, in which case
// submissions are not journaled.
func New(ctrl *session.Controller, attempts store.AttemptRepo, sessionID string) *DrillScreen {
	return &DrillScreen{
		ctrl:      ctrl,
		attempts:  attempts,
		sessionID: sessionID,
		input:     components.NewTextInput("Type your answer...", true, 6),
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *DrillScreen) Title() string {
	if op := s.ctrl.Snapshot().Operation; op != nil {
		return op.Name()
	}
	return "Drill"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.ctrl.Phase() == session.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Skip ahead"},
			{Key: "Esc", Description: "Menu"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "New exercise"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if s.ctrl.AutoAdvance(msg.adv) {
			s.reset()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and friends.
	if s.ctrl.Phase() == session.PhaseAwaiting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.ctrl.ReturnToMenu()
		s.reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		if s.ctrl.RequestNewExercise() {
			s.reset()
		}
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	if s.ctrl.Phase() != session.PhaseAwaiting {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.ctrl.EditAnswer(s.input.Value())
	return s, cmd
}

// submitAnswer judges the current input and schedules the auto-advance.
func (s *DrillScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	sub, ok := s.ctrl.SubmitAnswer()
	if !ok {
		return s, nil
	}
	s.last = &sub
	s.journal(sub)
	return s, advanceCmd(sub.Advance)
}

// journal records sub. Failures are logged and never interrupt the drill.
func (s *DrillScreen) journal(sub session.Submission) {
	if s.attempts == nil {
		return
	}
	err := s.attempts.AppendAttempt(context.Background(), store.AttemptEventData{
		SessionID:      s.sessionID,
		Operation:      sub.Exercise.Op.Key(),
		OperandA:       sub.Exercise.A,
		OperandB:       sub.Exercise.B,
		ExpectedAnswer: sub.Exercise.Answer,
		LearnerAnswer:  sub.Input,
		Correct:        sub.Correct,
		TimeMs:         sub.ResponseTime.Milliseconds(),
	})
	if err != nil {
		log.Printf("drill: journal attempt: %v", err)
	}
}

func (s *DrillScreen) reset() {
	s.input.Clear()
	s.last = nil
}
