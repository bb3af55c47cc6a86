package preferences

import (
	"time"

	"focuskit/internal/core/model"
	"focuskit/resources"
)

const (
	notificationTitle = "Timer Finished"
	notificationBody  = "Your countdown has ended"
)

// Settings defines editable user preferences.
type Settings struct {
	TimerDuration time.Duration
	WorkDuration  time.Duration
	BreakDuration time.Duration

	AlarmEnabled         bool
	NotificationsEnabled bool
}

// DefaultSettings returns default settings for FocusKit.
func DefaultSettings() Settings {
	return Settings{
		TimerDuration:        25 * time.Minute,
		WorkDuration:         25 * time.Minute,
		BreakDuration:        5 * time.Minute,
		AlarmEnabled:         true,
		NotificationsEnabled: true,
	}
}

// AlarmPattern is the vibration played when a countdown finishes.
func AlarmPattern() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}
}

// PressPattern is the short pulse played on duration adjustments.
func PressPattern() []time.Duration {
	return []time.Duration{40 * time.Millisecond}
}

// TimerConfig converts settings to the countdown timer configuration.
func (settings Settings) TimerConfig() model.CountdownConfig {
	config := model.CountdownConfig{
		Initial:      settings.TimerDuration,
		TickInterval: time.Second,
		Alarm: model.AlarmConfig{
			Enabled:          settings.AlarmEnabled,
			SourceID:         resources.AlarmSound,
			VibrationPattern: AlarmPattern(),
		},
	}
	if settings.NotificationsEnabled {
		config.Notification = &model.Notification{Title: notificationTitle, Body: notificationBody}
	}
	return config
}

// PomodoroConfig converts settings to the work/break cycle durations.
func (settings Settings) PomodoroConfig() model.PomodoroConfig {
	return model.PomodoroConfig{
		Work:  settings.WorkDuration,
		Break: settings.BreakDuration,
	}
}

// CycleConfig is the countdown configuration of the Pomodoro engine. Phase
// changes are silent, so it carries no alarm or notification.
func (settings Settings) CycleConfig() model.CountdownConfig {
	return model.CountdownConfig{
		Initial:      settings.WorkDuration,
		TickInterval: time.Second,
	}
}
