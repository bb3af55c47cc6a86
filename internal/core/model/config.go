package model

import "time"

// Notification is the content of an OS-level notification.
type Notification struct {
	Title string
	Body  string
}

// AlarmConfig describes the terminal side effects of a countdown.
type AlarmConfig struct {
	Enabled          bool
	SourceID         string
	VibrationPattern []time.Duration
}

// CountdownConfig contains runtime settings for a countdown engine.
type CountdownConfig struct {
	Initial      time.Duration
	MaxDuration  time.Duration
	Step         time.Duration
	TickInterval time.Duration

	Alarm AlarmConfig

	// Notification is scheduled for the deadline on every start. Nil disables it.
	Notification *Notification
}

// PomodoroConfig contains the phase durations of a work/break cycle.
type PomodoroConfig struct {
	Work  time.Duration
	Break time.Duration
}
