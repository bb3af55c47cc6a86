package preferences

import (
	"testing"
	"time"

	"focuskit/resources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerConfigFromDefaults(t *testing.T) {
	config := DefaultSettings().TimerConfig()

	assert.Equal(t, 25*time.Minute, config.Initial)
	assert.True(t, config.Alarm.Enabled)
	assert.Equal(t, resources.AlarmSound, config.Alarm.SourceID)
	assert.Len(t, config.Alarm.VibrationPattern, 3)
	require.NotNil(t, config.Notification)
	assert.Equal(t, "Timer Finished", config.Notification.Title)
	assert.Equal(t, "Your countdown has ended", config.Notification.Body)
}

func TestNotificationsCanBeDisabled(t *testing.T) {
	settings := DefaultSettings()
	settings.NotificationsEnabled = false

	assert.Nil(t, settings.TimerConfig().Notification)
}

func TestCycleConfigIsSilent(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkDuration = 50 * time.Minute

	config := settings.CycleConfig()
	assert.Equal(t, 50*time.Minute, config.Initial)
	assert.False(t, config.Alarm.Enabled)
	assert.Nil(t, config.Notification)
	assert.Equal(t, 50*time.Minute, settings.PomodoroConfig().Work)
	assert.Equal(t, 5*time.Minute, settings.PomodoroConfig().Break)
}
