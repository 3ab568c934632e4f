package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// FeedbackDelay is how long feedback stays up before the next exercise.
const FeedbackDelay = 1000 * time.Millisecond

// ExerciseGenerator produces exercises. *problemgen.Generator satisfies it.
type ExerciseGenerator interface {
	Generate(op problemgen.Operation) (problemgen.Exercise, error)
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	// FeedbackDelay overrides the auto-advance delay.
	FeedbackDelay time.Duration

	// Now overrides the clock used for response times.
	Now func() time.Time
}

// Advance is the handle of a scheduled auto-advance. The driver fires it
// with Controller.AutoAdvance once Delay has elapsed. A handle is
// invalidated by every transition that leaves the feedback phase early.
type Advance struct {
	Delay time.Duration
	token uint64
}

// Submission describes one judged answer.
type Submission struct {
	Exercise     problemgen.Exercise
	Input        string
	Correct      bool
	ResponseTime time.Duration

	// Advance must be fired after Advance.Delay to move on.
	Advance Advance
}

// Controller owns a session's State and applies its transitions.
// All methods are safe to call from a timer goroutine, though the UI
// drives it from a single event loop.
type Controller struct {
	mu    sync.Mutex
	gen   ExerciseGenerator
	delay time.Duration
	now   func() time.Time
	state State

	// generation increments on every exercise change or cancellation;
	// pending holds the generation an outstanding Advance was issued for.
	generation uint64
	pending    uint64
}

// NewController returns a Controller at the menu with a zero score.
func NewController(gen ExerciseGenerator, opts Options) *Controller {
	c := &Controller{
		gen:   gen,
		delay: opts.FeedbackDelay,
		now:   opts.Now,
	}
	if c.delay <= 0 {
		c.delay = FeedbackDelay
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase()
}

// Score returns the session score.
func (c *Controller) Score() Score {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Score
}

// FeedbackDelay returns the configured auto-advance delay.
func (c *Controller) FeedbackDelay() time.Duration {
	return c.delay
}

// SelectOperation starts drilling op. Called mid-session it replaces the
// current operation and exercise.
func (c *Controller) SelectOperation(op problemgen.Operation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Operation = &op
	c.nextExercise()
}

// EditAnswer stores text verbatim. Ignored outside the awaiting phase.
func (c *Controller) EditAnswer(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase() != PhaseAwaiting {
		return false
	}
	c.state.Input = text
	return true
}

// SubmitAnswer judges the current input. It returns false without
// changing anything unless an exercise is awaiting an answer, so repeated
// submits during the feedback delay are ignored.
func (c *Controller) SubmitAnswer() (Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase() != PhaseAwaiting || c.state.Exercise == nil {
		return Submission{}, false
	}

	ex := *c.state.Exercise
	correct := problemgen.CheckAnswer(c.state.Input, ex)
	if correct {
		c.state.Feedback = FeedbackCorrect
	} else {
		c.state.Feedback = FeedbackIncorrect
	}
	c.state.Score.Record(correct)

	c.pending = c.generation
	return Submission{
		Exercise:     ex,
		Input:        c.state.Input,
		Correct:      correct,
		ResponseTime: c.now().Sub(c.state.ShownAt),
		Advance:      Advance{Delay: c.delay, token: c.pending},
	}, true
}

// AutoAdvance is the timed transition out of the feedback phase. It applies
// only if adv is still the outstanding handle; a handle superseded by
// RequestNewExercise, SelectOperation or ReturnToMenu is ignored.
func (c *Controller) AutoAdvance(adv Advance) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if adv.token == 0 || adv.token != c.pending || c.state.Phase() != PhaseFeedback {
		return false
	}
	c.nextExercise()
	return true
}

// RequestNewExercise skips to a fresh exercise for the current operation,
// cancelling any pending auto-advance. The score is untouched.
func (c *Controller) RequestNewExercise() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Operation == nil {
		return false
	}
	c.nextExercise()
	return true
}

// ReturnToMenu leaves the drill. The score is kept for the session.
func (c *Controller) ReturnToMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPending()
	c.state.Operation = nil
	c.state.Exercise = nil
	c.state.Input = ""
	c.state.Feedback = FeedbackNone
	c.state.ShownAt = time.Time{}
}

// nextExercise replaces the exercise for the current operation and clears
// input and feedback. Caller holds mu and has set Operation.
func (c *Controller) nextExercise() {
	c.cancelPending()

	ex, err := c.gen.Generate(*c.state.Operation)
	if err != nil {
		// Operations reach here only from problemgen.Operations or a
		// validated config value.
		panic(fmt.Sprintf("session: %v", err))
	}
	c.state.Exercise = &ex
	c.state.Input = ""
	c.state.Feedback = FeedbackNone
	c.state.ShownAt = c.now()
}

// cancelPending invalidates any outstanding Advance.
func (c *Controller) cancelPending() {
	c.generation++
	c.pending = 0
}
