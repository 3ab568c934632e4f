package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// recentLimit is how many of the latest attempts are listed.
const recentLimit = 5

type summaryLoadedMsg struct {
	ByOperation []session.OperationResult
	Recent      []store.AttemptEvent
	Err         error
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	score     session.Score
	elapsed   time.Duration
	attempts  store.AttemptRepo
	sessionID string

	summary *session.SessionSummary
	recent  []store.AttemptEvent
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. The per-operation breakdown is read from
// attempts when the screen is shown; with a nil repo only totals appear.
func New(score session.Score, attempts store.AttemptRepo, sessionID string, elapsed time.Duration) *SummaryScreen {
	return &SummaryScreen{
		score:     score,
		elapsed:   elapsed,
		attempts:  attempts,
		sessionID: sessionID,
		summary:   session.BuildSummary(score, elapsed, nil),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		tallies, err := s.attempts.OperationTallies(ctx, s.sessionID)
		if err != nil {
			return summaryLoadedMsg{Err: err}
		}
		byOp, err := operationResults(tallies)
		if err != nil {
			return summaryLoadedMsg{Err: err}
		}

		recent, err := s.attempts.RecentAttempts(ctx, s.sessionID, recentLimit)
		if err != nil {
			return summaryLoadedMsg{ByOperation: byOp}
		}
		return summaryLoadedMsg{ByOperation: byOp, Recent: recent}
	}
}

// operationResults converts journal tallies into summary rows.
func operationResults(tallies []store.OperationTally) ([]session.OperationResult, error) {
	results := make([]session.OperationResult, 0, len(tallies))
	for _, t := range tallies {
		op, err := problemgen.ParseOperation(t.Operation)
		if err != nil {
			return nil, fmt.Errorf("journal tally: %w", err)
		}
		results = append(results, session.OperationResult{
			Operation:       op,
			Score:           session.Score{Correct: t.Correct, Attempted: t.Attempted},
			AvgResponseTime: time.Duration(t.AvgTimeMs * float64(time.Millisecond)),
		})
	}
	return results, nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
		{Key: "Esc", Description: "Keep practicing"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.summary = session.BuildSummary(s.score, s.elapsed, msg.ByOperation)
		s.recent = msg.Recent
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, tea.Quit
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(centered.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Exercises: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Score.Attempted, sum.Score.Correct, sum.Accuracy*100)
	b.WriteString(centered.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(centered.Foreground(theme.Error).Render("Breakdown unavailable: " + s.errMsg))
		return b.String()
	}

	if len(sum.ByOperation) > 0 {
		b.WriteString(section("Operations", width))
		for _, r := range sum.ByOperation {
			line := fmt.Sprintf("%s %-15s %6s correct   avg %s",
				r.Operation.Symbol(), r.Operation.Name(), r.Score.String(),
				r.AvgResponseTime.Round(100*time.Millisecond))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(line)))
			b.WriteString("\n")
		}
	}

	if len(s.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(section("Latest", width))
		for _, a := range s.recent {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAttempt(a)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func section(title string, width int) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}

func renderAttempt(a store.AttemptEvent) string {
	symbol := "?"
	if op, err := problemgen.ParseOperation(a.Operation); err == nil {
		symbol = op.Symbol()
	}
	answer := a.LearnerAnswer
	if answer == "" {
		answer = "-"
	}
	line := fmt.Sprintf("%d %s %d = %d   you said %s", a.OperandA, symbol, a.OperandB, a.ExpectedAnswer, answer)
	if a.Correct {
		return theme.Correct.Render("✓ ") + theme.Body.Render(line)
	}
	return theme.Incorrect.Render("✗ ") + theme.Body.Render(line)
}
