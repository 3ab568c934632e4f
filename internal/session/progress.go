package session

import "fmt"

// Score counts submissions over a session.
type Score struct {
	Correct   int
	Attempted int
}

// Record adds one submission.
func (s *Score) Record(correct bool) {
	s.Attempted++
	if correct {
		s.Correct++
	}
}

// Accuracy returns Correct / Attempted, or 0 before any attempt.
func (s Score) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// String renders the "score/total" badge, e.g. "7/9".
func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Attempted)
}
