package countdown

import (
	"fmt"
	"time"
)

// State represents the run state of a countdown engine.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// Phase identifies the segment of a work/break cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventPhaseChange EventType = "phase_change"
	EventFinished    EventType = "finished"
)

// Snapshot is a point-in-time view of an engine.
type Snapshot struct {
	State     State
	Phase     Phase
	Remaining time.Duration
	Deadline  time.Time
}

// Hours returns the whole hours of the remaining time.
func (snapshot Snapshot) Hours() int {
	return int(snapshot.Remaining / time.Hour)
}

// Minutes returns the minutes component of the remaining time.
func (snapshot Snapshot) Minutes() int {
	return int((snapshot.Remaining % time.Hour) / time.Minute)
}

// Seconds returns the seconds component of the remaining time.
func (snapshot Snapshot) Seconds() int {
	return int((snapshot.Remaining % time.Minute) / time.Second)
}

// HMS formats the remaining time as HH:MM:SS.
func (snapshot Snapshot) HMS() string {
	return fmt.Sprintf("%02d:%02d:%02d", snapshot.Hours(), snapshot.Minutes(), snapshot.Seconds())
}

// MSS formats the remaining time as M:SS, folding hours into minutes.
func (snapshot Snapshot) MSS() string {
	return fmt.Sprintf("%d:%02d", int(snapshot.Remaining/time.Minute), snapshot.Seconds())
}

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}
