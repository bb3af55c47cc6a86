package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"focuskit/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	mu       sync.Mutex
	plays    int
	stops    int
	releases int
	playErr  error
}

func (resource *fakeResource) Play() error {
	resource.mu.Lock()
	defer resource.mu.Unlock()
	resource.plays++
	return resource.playErr
}

func (resource *fakeResource) Stop() error {
	resource.mu.Lock()
	defer resource.mu.Unlock()
	resource.stops++
	return nil
}

func (resource *fakeResource) Release() error {
	resource.mu.Lock()
	defer resource.mu.Unlock()
	resource.releases++
	return nil
}

type fakeAudio struct {
	mu        sync.Mutex
	acquired  []*fakeResource
	err       error
	playErr   error
	gate      chan struct{}
}

func (audio *fakeAudio) AcquireLooping(ctx context.Context, sourceID string) (AudioResource, error) {
	if audio.gate != nil {
		<-audio.gate
	}
	audio.mu.Lock()
	defer audio.mu.Unlock()
	if audio.err != nil {
		return nil, audio.err
	}
	resource := &fakeResource{playErr: audio.playErr}
	audio.acquired = append(audio.acquired, resource)
	return resource, nil
}

func (audio *fakeAudio) count() int {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	return len(audio.acquired)
}

type fakeNotifier struct {
	scheduled []time.Duration
	cancels   int
	err       error
}

func (notifier *fakeNotifier) Schedule(after time.Duration, _ model.Notification) (string, error) {
	if notifier.err != nil {
		return "", notifier.err
	}
	notifier.scheduled = append(notifier.scheduled, after)
	return "n-1", nil
}

func (notifier *fakeNotifier) CancelAll() error {
	notifier.cancels++
	return nil
}

type fakeVibrator struct {
	patterns [][]time.Duration
}

func (vibrator *fakeVibrator) Vibrate(pattern []time.Duration) {
	vibrator.patterns = append(vibrator.patterns, pattern)
}

func inline(run func()) { run() }

func TestStartAlarmTwiceAcquiresOnce(t *testing.T) {
	audio := &fakeAudio{}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")
	dispatcher.StartAlarm("alarm")

	require.Equal(t, 1, audio.count())
	assert.True(t, dispatcher.Active())
	assert.Equal(t, 1, audio.acquired[0].plays)
}

func TestStopAlarmTwiceReleasesOnce(t *testing.T) {
	audio := &fakeAudio{}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")
	dispatcher.StopAlarm()
	dispatcher.StopAlarm()

	require.Equal(t, 1, audio.count())
	assert.False(t, dispatcher.Active())
	assert.Equal(t, 1, audio.acquired[0].stops)
	assert.Equal(t, 1, audio.acquired[0].releases)
}

func TestStartAfterStopAcquiresFresh(t *testing.T) {
	audio := &fakeAudio{}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")
	dispatcher.StopAlarm()
	dispatcher.StartAlarm("alarm")

	require.Equal(t, 2, audio.count())
	assert.Equal(t, 1, audio.acquired[0].releases)
	assert.Equal(t, 0, audio.acquired[1].releases)
	assert.True(t, dispatcher.Active())
}

func TestStopDuringAcquisitionLeavesSilence(t *testing.T) {
	audio := &fakeAudio{gate: make(chan struct{})}
	dispatcher := NewDispatcher(Config{Audio: audio})

	dispatcher.StartAlarm("alarm")
	dispatcher.StartAlarm("alarm")
	dispatcher.StopAlarm()
	close(audio.gate)

	require.Eventually(t, func() bool { return audio.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		audio.acquired[0].mu.Lock()
		defer audio.acquired[0].mu.Unlock()
		return audio.acquired[0].releases == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, dispatcher.Active())
	assert.Equal(t, 0, audio.acquired[0].plays)
}

func TestAcquisitionFailureRetainsNothing(t *testing.T) {
	audio := &fakeAudio{err: ErrAudioUnsupported}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")
	assert.False(t, dispatcher.Active())

	audio.err = nil
	dispatcher.StartAlarm("alarm")
	assert.True(t, dispatcher.Active())
}

func TestPlaybackFailureReleasesResource(t *testing.T) {
	audio := &fakeAudio{playErr: errors.New("device busy")}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")

	require.Equal(t, 1, audio.count())
	assert.False(t, dispatcher.Active())
	assert.Equal(t, 1, audio.acquired[0].releases)
	assert.Equal(t, 0, audio.acquired[0].stops)
}

func TestScheduleCompletionSupersedesPrevious(t *testing.T) {
	notifier := &fakeNotifier{}
	dispatcher := NewDispatcher(Config{Notifier: notifier})
	content := model.Notification{Title: "Timer Finished"}

	dispatcher.ScheduleCompletion(10*time.Second, content)
	dispatcher.ScheduleCompletion(20*time.Second, content)

	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second}, notifier.scheduled)
	assert.Equal(t, 2, notifier.cancels)
	assert.Equal(t, "n-1", dispatcher.Pending())

	dispatcher.CancelNotifications()
	assert.Empty(t, dispatcher.Pending())
}

func TestScheduleRefusalIsSwallowed(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("permission denied")}
	dispatcher := NewDispatcher(Config{Notifier: notifier})

	dispatcher.ScheduleCompletion(time.Second, model.Notification{})

	assert.Empty(t, dispatcher.Pending())
}

func TestVibrateSkipsEmptyPattern(t *testing.T) {
	vibrator := &fakeVibrator{}
	dispatcher := NewDispatcher(Config{Vibrator: vibrator})

	dispatcher.Vibrate(nil)
	dispatcher.Vibrate([]time.Duration{40 * time.Millisecond})
	dispatcher.Vibrate([]time.Duration{40 * time.Millisecond})

	assert.Len(t, vibrator.patterns, 2)
}

func TestCloseRejectsLaterAlarms(t *testing.T) {
	audio := &fakeAudio{}
	dispatcher := NewDispatcher(Config{Audio: audio, Spawn: inline})

	dispatcher.StartAlarm("alarm")
	dispatcher.Close()
	dispatcher.Close()
	dispatcher.StartAlarm("alarm")

	require.Equal(t, 1, audio.count())
	assert.Equal(t, 1, audio.acquired[0].releases)
	assert.False(t, dispatcher.Active())
}
