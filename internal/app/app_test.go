package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/session"
)

// fixedGenerator always returns the same exercise for the requested op.
type fixedGenerator struct{}

func (fixedGenerator) Generate(op problemgen.Operation) (problemgen.Exercise, error) {
	return problemgen.Exercise{A: 6, B: 3, Op: op, Answer: 2}, nil
}

func testModel(start *problemgen.Operation) (AppModel, *session.Controller) {
	ctrl := session.NewController(fixedGenerator{}, session.Options{})
	return newAppModel(Options{Controller: ctrl, SessionID: "s1", StartOperation: start}), ctrl
}

// drain runs cmd and feeds navigation messages back into the model.
func drain(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case router.PushScreenMsg, router.PopScreenMsg:
		next, c := m.Update(msg)
		m = drain(t, next.(AppModel), c)
	}
	return m
}

func TestApp_StartsAtMenu(t *testing.T) {
	m, ctrl := testModel(nil)
	m = drain(t, m, m.Init())

	if m.router.Depth() != 1 || m.router.Active().Title() != "Menu" {
		t.Errorf("expected menu at root, got %q depth %d", m.router.Active().Title(), m.router.Depth())
	}
	if ctrl.Phase() != session.PhaseMenu {
		t.Errorf("Phase = %v, want menu", ctrl.Phase())
	}
}

func TestApp_StartOperationSkipsMenu(t *testing.T) {
	op := problemgen.Division
	m, ctrl := testModel(&op)
	m = drain(t, m, m.Init())

	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if m.router.Active().Title() != "Division" {
		t.Errorf("active = %q, want Division", m.router.Active().Title())
	}
	if ctrl.Phase() != session.PhaseAwaiting {
		t.Errorf("Phase = %v, want awaiting", ctrl.Phase())
	}
}

func TestApp_MenuShortcutThenEsc(t *testing.T) {
	m, ctrl := testModel(nil)

	next, cmd := m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	m = drain(t, next.(AppModel), cmd)
	if m.router.Active().Title() != "Subtraction" {
		t.Fatalf("active = %q, want Subtraction", m.router.Active().Title())
	}

	next, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = drain(t, next.(AppModel), cmd)
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d after esc, want 1", m.router.Depth())
	}
	if ctrl.Phase() != session.PhaseMenu {
		t.Errorf("Phase = %v, want menu", ctrl.Phase())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := testModel(nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_ViewShowsScore(t *testing.T) {
	op := problemgen.Addition
	m, ctrl := testModel(&op)
	m = drain(t, m, m.Init())
	ctrl.SubmitAnswer()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := next.(AppModel).render()
	if !strings.Contains(out, "0/1") {
		t.Errorf("expected score badge in view:\n%s", out)
	}
}

func TestApp_ViewTooSmall(t *testing.T) {
	m, _ := testModel(nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
