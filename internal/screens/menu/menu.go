// Package menu is the root screen: pick an operation, finish, or quit.
package menu

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/drill"
	"github.com/abhisek/mathdrill/internal/screens/summary"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// MenuScreen lists the operations to drill.
type MenuScreen struct {
	ctrl      *session.Controller
	attempts  store.AttemptRepo
	sessionID string
	startedAt time.Time
	menu      components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)

// New creates the menu. startedAt marks the start of the session for the
// summary screen.
func New(ctrl *session.Controller, attempts store.AttemptRepo, sessionID string, startedAt time.Time) *MenuScreen {
	m := &MenuScreen{
		ctrl:      ctrl,
		attempts:  attempts,
		sessionID: sessionID,
		startedAt: startedAt,
	}

	items := make([]components.MenuItem, 0, len(problemgen.Operations)+2)
	for i, op := range problemgen.Operations {
		items = append(items, components.MenuItem{
			Label:    op.Symbol() + "  " + op.Name(),
			Shortcut: string(rune('1' + i)),
			Action:   func() tea.Cmd { return m.StartDrill(op) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "Finish", Shortcut: "f", Action: m.finish},
		components.MenuItem{Label: "Quit", Shortcut: "q", Action: func() tea.Cmd { return tea.Quit }},
	)
	m.menu = components.NewMenu(items)
	return m
}

// StartDrill selects op and returns the command pushing its drill screen.
func (m *MenuScreen) StartDrill(op problemgen.Operation) tea.Cmd {
	m.ctrl.SelectOperation(op)
	scr := drill.New(m.ctrl, m.attempts, m.sessionID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (m *MenuScreen) finish() tea.Cmd {
	scr := summary.New(m.ctrl.Score(), m.attempts, m.sessionID, time.Since(m.startedAt))
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Width(width).Render("What shall we practice?"),
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render("Score "+layout.RenderScore(m.ctrl.Score().String())),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, m.menu.View()),
		theme.Subtitle.Width(width).Render("Press 1-4 to start a drill"),
	)

	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (m *MenuScreen) Title() string {
	return "Menu"
}
