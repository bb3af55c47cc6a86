package countdown

import (
	"time"

	"focuskit/internal/core/model"
)

// CyclePolicy selects the next phase when a cyclic countdown reaches zero.
// Implementations must be pure.
type CyclePolicy interface {
	Initial() (Phase, time.Duration)
	Next(current Phase) (Phase, time.Duration)
}

// Pomodoro alternates work and break phases.
type Pomodoro struct {
	Work  time.Duration
	Break time.Duration
}

// NewPomodoro builds a policy from configuration.
func NewPomodoro(config model.PomodoroConfig) Pomodoro {
	return Pomodoro{Work: config.Work, Break: config.Break}
}

// Initial returns the phase and duration a fresh cycle starts with.
func (policy Pomodoro) Initial() (Phase, time.Duration) {
	return PhaseWork, policy.Work
}

// Next rotates work to break and break to work.
func (policy Pomodoro) Next(current Phase) (Phase, time.Duration) {
	if current == PhaseBreak {
		return PhaseWork, policy.Work
	}
	return PhaseBreak, policy.Break
}
