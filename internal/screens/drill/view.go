package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	if st.Exercise == nil {
		return layout.Center(theme.Hint.Render("Pick an operation from the menu."), width, height)
	}

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(centered.Render(layout.RenderScore(st.Score.String())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Exercise.Render(st.Exercise.Text())))
	b.WriteString("\n\n")

	switch st.Feedback {
	case session.FeedbackNone:
		b.WriteString(centered.Render(s.input.View()))
	default:
		b.WriteString(centered.Render(renderAnswer(st.Input)))
		b.WriteString("\n\n")
		b.WriteString(centered.Render(renderFeedback(st.Feedback, *st.Exercise)))
	}

	return layout.Center(b.String(), width, height)
}

func renderAnswer(input string) string {
	if strings.TrimSpace(input) == "" {
		return theme.Hint.Render("(no answer)")
	}
	return theme.Body.Render(input)
}

// renderFeedback renders the verdict line. A wrong answer also shows the
// worked exercise.
func renderFeedback(fb session.Feedback, ex problemgen.Exercise) string {
	if fb == session.FeedbackCorrect {
		return theme.Correct.Render("Correct!")
	}
	return theme.Incorrect.Render("Try again") + "\n" +
		theme.Hint.Render(fmt.Sprintf("%d %s %d = %d", ex.A, ex.Op.Symbol(), ex.B, ex.Answer))
}
