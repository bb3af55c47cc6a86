package countdown

import (
	"sync"
	"time"

	"focuskit/internal/core/model"
)

type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = clock.current.Add(d)
}

// manualScheduler holds the registered callback until the test fires it.
type manualScheduler struct {
	callback func()
	handle   *manualHandle
	started  int
}

type manualHandle struct {
	canceled bool
}

func (handle *manualHandle) Cancel() {
	handle.canceled = true
}

func (scheduler *manualScheduler) Every(_ time.Duration, callback func()) Handle {
	scheduler.callback = callback
	scheduler.handle = &manualHandle{}
	scheduler.started++
	return scheduler.handle
}

func (scheduler *manualScheduler) active() bool {
	return scheduler.handle != nil && !scheduler.handle.canceled
}

// Fire invokes the callback once if the handle is live.
func (scheduler *manualScheduler) Fire() {
	if scheduler.active() {
		scheduler.callback()
	}
}

// Run advances the clock one second per fire.
func (scheduler *manualScheduler) Run(clock *fakeClock, seconds int) {
	for i := 0; i < seconds; i++ {
		clock.Advance(time.Second)
		scheduler.Fire()
	}
}

type fakeLifecycle struct {
	handlers []func(AppState)
	removed  int
}

func (lifecycle *fakeLifecycle) Subscribe(handler func(AppState)) func() {
	lifecycle.handlers = append(lifecycle.handlers, handler)
	return func() { lifecycle.removed++ }
}

func (lifecycle *fakeLifecycle) Emit(state AppState) {
	for _, handler := range lifecycle.handlers {
		handler(state)
	}
}

type recordingEffects struct {
	vibrations    int
	alarmsStarted int
	alarmsStopped int
	scheduled     []time.Duration
	cancels       int
	pending       bool
	closed        bool
}

func (effects *recordingEffects) Vibrate([]time.Duration) { effects.vibrations++ }

func (effects *recordingEffects) StartAlarm(string) { effects.alarmsStarted++ }

func (effects *recordingEffects) StopAlarm() { effects.alarmsStopped++ }

func (effects *recordingEffects) ScheduleCompletion(after time.Duration, _ model.Notification) {
	effects.scheduled = append(effects.scheduled, after)
	effects.pending = true
}

func (effects *recordingEffects) CancelNotifications() {
	effects.cancels++
	effects.pending = false
}

func (effects *recordingEffects) Close() { effects.closed = true }

type harness struct {
	clock     *fakeClock
	scheduler *manualScheduler
	lifecycle *fakeLifecycle
	effects   *recordingEffects
}

func newHarness() *harness {
	return &harness{
		clock:     newFakeClock(),
		scheduler: &manualScheduler{},
		lifecycle: &fakeLifecycle{},
		effects:   &recordingEffects{},
	}
}

func (h *harness) options(policy CyclePolicy) Options {
	return Options{
		Clock:     h.clock,
		Scheduler: h.scheduler,
		Effects:   h.effects,
		Lifecycle: h.lifecycle,
		Policy:    policy,
	}
}

func timerConfig(initial time.Duration) model.CountdownConfig {
	return model.CountdownConfig{
		Initial: initial,
		Alarm: model.AlarmConfig{
			Enabled:          true,
			SourceID:         "alarm",
			VibrationPattern: []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond},
		},
		Notification: &model.Notification{Title: "Timer Finished", Body: "Your countdown has ended"},
	}
}
