package session

import (
	"testing"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// queueGenerator hands out pre-built exercises and records requested ops.
type queueGenerator struct {
	queue []problemgen.Exercise
	ops   []problemgen.Operation
}

func (g *queueGenerator) Generate(op problemgen.Operation) (problemgen.Exercise, error) {
	g.ops = append(g.ops, op)
	if len(g.queue) == 0 {
		return problemgen.Exercise{A: 1, B: 1, Op: op, Answer: 0}, nil
	}
	ex := g.queue[0]
	g.queue = g.queue[1:]
	return ex, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(queue ...problemgen.Exercise) (*Controller, *queueGenerator, *fakeClock) {
	gen := &queueGenerator{queue: queue}
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return NewController(gen, Options{Now: clock.Now}), gen, clock
}

var (
	div28by4 = problemgen.Exercise{A: 28, B: 4, Op: problemgen.Division, Answer: 7}
	div18by9 = problemgen.Exercise{A: 18, B: 9, Op: problemgen.Division, Answer: 2}
	sub5by3  = problemgen.Exercise{A: 5, B: 3, Op: problemgen.Subtraction, Answer: 2}
	add2and2 = problemgen.Exercise{A: 2, B: 2, Op: problemgen.Addition, Answer: 4}
)

func TestNewController_StartsAtMenu(t *testing.T) {
	c, _, _ := newTestController()
	st := c.Snapshot()

	if st.Phase() != PhaseMenu {
		t.Errorf("Phase = %s, want menu", st.Phase())
	}
	if st.Operation != nil || st.Exercise != nil {
		t.Error("expected no operation and no exercise")
	}
	if st.Score != (Score{}) {
		t.Errorf("Score = %+v, want zero", st.Score)
	}
	if c.FeedbackDelay() != time.Second {
		t.Errorf("FeedbackDelay = %s, want 1s", c.FeedbackDelay())
	}
}

func TestSelectOperation(t *testing.T) {
	c, gen, _ := newTestController(div28by4)
	c.SelectOperation(problemgen.Division)

	st := c.Snapshot()
	if st.Phase() != PhaseAwaiting {
		t.Fatalf("Phase = %s, want awaiting", st.Phase())
	}
	if *st.Operation != problemgen.Division {
		t.Errorf("Operation = %s, want division", *st.Operation)
	}
	if *st.Exercise != div28by4 {
		t.Errorf("Exercise = %+v, want %+v", *st.Exercise, div28by4)
	}
	if st.Exercise.Text() != "28 ÷ 4 = ?" {
		t.Errorf("Text = %q", st.Exercise.Text())
	}
	if len(gen.ops) != 1 || gen.ops[0] != problemgen.Division {
		t.Errorf("generator ops = %v", gen.ops)
	}
}

func TestSelectOperation_ReplacesContext(t *testing.T) {
	c, _, _ := newTestController(div28by4, add2and2)
	c.SelectOperation(problemgen.Division)
	c.EditAnswer("3")
	c.SelectOperation(problemgen.Addition)

	st := c.Snapshot()
	if *st.Operation != problemgen.Addition || *st.Exercise != add2and2 {
		t.Errorf("expected addition context, got %+v", st)
	}
	if st.Input != "" {
		t.Errorf("Input = %q, want cleared", st.Input)
	}
}

func TestEditAnswer_OnlyWhileAwaiting(t *testing.T) {
	c, _, _ := newTestController(div28by4)

	if c.EditAnswer("5") {
		t.Error("EditAnswer should be ignored on the menu")
	}

	c.SelectOperation(problemgen.Division)
	if !c.EditAnswer("not a number") {
		t.Fatal("EditAnswer should apply while awaiting")
	}
	if got := c.Snapshot().Input; got != "not a number" {
		t.Errorf("Input = %q, want verbatim text", got)
	}

	c.SubmitAnswer()
	if c.EditAnswer("9") {
		t.Error("EditAnswer should be ignored during feedback")
	}
}

func TestDivisionScenario(t *testing.T) {
	c, gen, clock := newTestController(div28by4, div18by9)
	c.SelectOperation(problemgen.Division)
	clock.Advance(2500 * time.Millisecond)
	c.EditAnswer("7")

	sub, ok := c.SubmitAnswer()
	if !ok {
		t.Fatal("expected submit to apply")
	}
	if !sub.Correct || sub.Exercise != div28by4 || sub.Input != "7" {
		t.Errorf("unexpected submission: %+v", sub)
	}
	if sub.ResponseTime != 2500*time.Millisecond {
		t.Errorf("ResponseTime = %s, want 2.5s", sub.ResponseTime)
	}
	if sub.Advance.Delay != time.Second {
		t.Errorf("Advance.Delay = %s, want 1s", sub.Advance.Delay)
	}

	st := c.Snapshot()
	if st.Phase() != PhaseFeedback || st.Feedback != FeedbackCorrect {
		t.Errorf("expected correct feedback, got %s/%s", st.Phase(), st.Feedback)
	}
	if st.Score != (Score{Correct: 1, Attempted: 1}) {
		t.Errorf("Score = %+v, want 1/1", st.Score)
	}

	if !c.AutoAdvance(sub.Advance) {
		t.Fatal("expected auto-advance to apply")
	}
	st = c.Snapshot()
	if st.Phase() != PhaseAwaiting || st.Feedback != FeedbackNone {
		t.Errorf("expected awaiting with no feedback, got %s/%s", st.Phase(), st.Feedback)
	}
	if *st.Exercise != div18by9 || *st.Operation != problemgen.Division {
		t.Errorf("expected next division exercise, got %+v", *st.Exercise)
	}
	if st.Input != "" {
		t.Errorf("Input = %q, want cleared", st.Input)
	}
	if len(gen.ops) != 2 || gen.ops[1] != problemgen.Division {
		t.Errorf("generator ops = %v", gen.ops)
	}
}

func TestSubtractionEmptyInputScenario(t *testing.T) {
	c, _, _ := newTestController(sub5by3)
	c.SelectOperation(problemgen.Subtraction)

	sub, ok := c.SubmitAnswer()
	if !ok {
		t.Fatal("expected submit to apply")
	}
	if sub.Correct {
		t.Error("empty input must be incorrect")
	}

	st := c.Snapshot()
	if st.Feedback != FeedbackIncorrect {
		t.Errorf("Feedback = %s, want incorrect", st.Feedback)
	}
	if st.Score != (Score{Correct: 0, Attempted: 1}) {
		t.Errorf("Score = %+v, want 0/1", st.Score)
	}
}

func TestSubmitAnswer_Guards(t *testing.T) {
	c, _, _ := newTestController(div28by4)

	if _, ok := c.SubmitAnswer(); ok {
		t.Error("submit on the menu should be ignored")
	}

	c.SelectOperation(problemgen.Division)
	c.EditAnswer("7")
	if _, ok := c.SubmitAnswer(); !ok {
		t.Fatal("first submit should apply")
	}
	if _, ok := c.SubmitAnswer(); ok {
		t.Error("submit during feedback should be ignored")
	}
	if got := c.Score(); got != (Score{Correct: 1, Attempted: 1}) {
		t.Errorf("Score = %+v, want 1/1", got)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	c, _, _ := newTestController()
	inputs := []string{"0", "1", "", "abc", "0", "-0", "0.5"}
	// The fallback exercise answers 0.
	wantCorrect := []bool{true, false, false, false, true, true, true}

	c.SelectOperation(problemgen.Addition)
	prev := c.Score()
	for i, in := range inputs {
		c.EditAnswer(in)
		sub, ok := c.SubmitAnswer()
		if !ok {
			t.Fatalf("submit %d ignored", i)
		}
		got := c.Score()
		if got.Attempted != prev.Attempted+1 {
			t.Fatalf("submit %d: Attempted %d -> %d", i, prev.Attempted, got.Attempted)
		}
		delta := got.Correct - prev.Correct
		if delta < 0 || delta > 1 {
			t.Fatalf("submit %d: Correct changed by %d", i, delta)
		}
		if (delta == 1) != wantCorrect[i] || sub.Correct != wantCorrect[i] {
			t.Errorf("submit %d (%q): correct = %v, want %v", i, in, sub.Correct, wantCorrect[i])
		}
		if got.Correct > got.Attempted {
			t.Fatalf("Correct %d exceeds Attempted %d", got.Correct, got.Attempted)
		}
		prev = got
		c.AutoAdvance(sub.Advance)
	}
}

func TestRequestNewExercise_KeepsScore(t *testing.T) {
	c, _, _ := newTestController(div28by4, div18by9, div28by4)

	if c.RequestNewExercise() {
		t.Error("new exercise on the menu should be ignored")
	}

	c.SelectOperation(problemgen.Division)
	c.EditAnswer("7")
	c.SubmitAnswer()
	before := c.Score()

	if !c.RequestNewExercise() {
		t.Fatal("expected new exercise during feedback")
	}
	st := c.Snapshot()
	if st.Score != before {
		t.Errorf("Score changed: %+v -> %+v", before, st.Score)
	}
	if st.Phase() != PhaseAwaiting || *st.Exercise != div18by9 {
		t.Errorf("expected fresh exercise awaiting, got %s %+v", st.Phase(), *st.Exercise)
	}

	c.EditAnswer("1")
	if !c.RequestNewExercise() {
		t.Fatal("expected new exercise while awaiting")
	}
	st = c.Snapshot()
	if st.Score != before || st.Input != "" {
		t.Errorf("unexpected state after skip: %+v", st)
	}
}

func TestRequestNewExercise_CancelsPendingAdvance(t *testing.T) {
	c, _, _ := newTestController(div28by4, div18by9, add2and2)
	c.SelectOperation(problemgen.Division)
	c.EditAnswer("7")
	sub, _ := c.SubmitAnswer()

	c.RequestNewExercise()
	if c.AutoAdvance(sub.Advance) {
		t.Error("stale advance must not apply after a manual skip")
	}
	if got := *c.Snapshot().Exercise; got != div18by9 {
		t.Errorf("exercise = %+v, want the skipped-to exercise", got)
	}
}

func TestReturnToMenu_CancelsPendingAdvance(t *testing.T) {
	c, _, _ := newTestController(div28by4, div18by9)
	c.SelectOperation(problemgen.Division)
	c.EditAnswer("7")
	sub, _ := c.SubmitAnswer()

	c.ReturnToMenu()
	if c.AutoAdvance(sub.Advance) {
		t.Fatal("stale advance must not resurrect the drill")
	}

	st := c.Snapshot()
	if st.Phase() != PhaseMenu {
		t.Errorf("Phase = %s, want menu", st.Phase())
	}
	if st.Operation != nil || st.Exercise != nil || st.Input != "" || st.Feedback != FeedbackNone {
		t.Errorf("expected cleared drill state, got %+v", st)
	}
	if st.Score != (Score{Correct: 1, Attempted: 1}) {
		t.Errorf("Score = %+v, want kept at 1/1", st.Score)
	}
}

func TestStaleAdvanceAfterReselect(t *testing.T) {
	c, _, _ := newTestController(div28by4, add2and2)
	c.SelectOperation(problemgen.Division)
	sub, _ := c.SubmitAnswer()

	c.ReturnToMenu()
	c.SelectOperation(problemgen.Addition)
	c.SubmitAnswer()

	if c.AutoAdvance(sub.Advance) {
		t.Error("advance from an earlier drill must not apply")
	}
	if got := *c.Snapshot().Exercise; got != add2and2 {
		t.Errorf("exercise = %+v, want addition exercise kept", got)
	}
}

func TestAutoAdvance_FiresOnce(t *testing.T) {
	c, _, _ := newTestController(div28by4, div18by9, add2and2)
	c.SelectOperation(problemgen.Division)
	sub, _ := c.SubmitAnswer()

	if !c.AutoAdvance(sub.Advance) {
		t.Fatal("expected first fire to apply")
	}
	if c.AutoAdvance(sub.Advance) {
		t.Error("second fire of the same handle must be ignored")
	}
	if c.AutoAdvance(Advance{}) {
		t.Error("zero handle must be ignored")
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	c, _, _ := newTestController(div28by4)
	c.SelectOperation(problemgen.Division)

	st := c.Snapshot()
	st.Exercise.Answer = 99
	*st.Operation = problemgen.Addition

	again := c.Snapshot()
	if again.Exercise.Answer != 7 || *again.Operation != problemgen.Division {
		t.Error("mutating a snapshot leaked into the controller")
	}
}

func TestOptions_FeedbackDelay(t *testing.T) {
	c := NewController(&queueGenerator{}, Options{FeedbackDelay: 250 * time.Millisecond})
	c.SelectOperation(problemgen.Multiplication)
	sub, _ := c.SubmitAnswer()
	if sub.Advance.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %s, want 250ms", sub.Advance.Delay)
	}
}

func TestInvalidOperationPanics(t *testing.T) {
	c := NewController(problemgen.New(nil), Options{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an operation outside the set")
		}
	}()
	c.SelectOperation(problemgen.Operation(42))
}

func TestAutoAdvance_FromTimerGoroutine(t *testing.T) {
	c := NewController(problemgen.New(nil), Options{FeedbackDelay: 5 * time.Millisecond})
	c.SelectOperation(problemgen.Division)
	sub, _ := c.SubmitAnswer()

	done := make(chan bool, 1)
	timer := time.AfterFunc(sub.Advance.Delay, func() { done <- c.AutoAdvance(sub.Advance) })
	defer timer.Stop()

	select {
	case applied := <-done:
		if !applied {
			t.Error("expected timer-driven advance to apply")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	if c.Phase() != PhaseAwaiting {
		t.Errorf("Phase = %s, want awaiting", c.Phase())
	}
}
