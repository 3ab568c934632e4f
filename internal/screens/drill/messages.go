package drill

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/session"
)

// autoAdvanceMsg is sent when the feedback display period ends.
type autoAdvanceMsg struct {
	adv session.Advance
}

// advanceCmd fires adv once its delay has elapsed.
func advanceCmd(adv session.Advance) tea.Cmd {
	return tea.Tick(adv.Delay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{adv: adv}
	})
}
