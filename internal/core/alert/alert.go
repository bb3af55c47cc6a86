// Package alert drives the user-facing side effects of a countdown:
// vibration, a looping alarm sound and completion notifications.
package alert

import (
	"context"
	"errors"
	"sync"
	"time"

	"focuskit/internal/core/model"

	"go.uber.org/zap"
)

// ErrAudioUnsupported indicates no audio backend is available on this system.
var ErrAudioUnsupported = errors.New("audio playback unsupported")

// Vibrator pulses the device. Odd pattern entries are pauses.
type Vibrator interface {
	Vibrate(pattern []time.Duration)
}

// AudioResource is an acquired, loopable sound.
type AudioResource interface {
	Play() error
	Stop() error
	Release() error
}

// AudioSource acquires looping audio resources. Acquisition may block.
type AudioSource interface {
	AcquireLooping(ctx context.Context, sourceID string) (AudioResource, error)
}

// Notifier schedules one-shot OS notifications.
type Notifier interface {
	Schedule(after time.Duration, notification model.Notification) (string, error)
	CancelAll() error
}

// Config contains the collaborators of a Dispatcher.
type Config struct {
	Vibrator Vibrator
	Audio    AudioSource
	Notifier Notifier
	Logger   *zap.Logger

	// Spawn runs audio acquisition. Defaults to a new goroutine.
	Spawn func(func())
}

// Dispatcher owns the single alarm resource and the single pending
// notification of one engine.
type Dispatcher struct {
	mu         sync.Mutex
	vibrator   Vibrator
	audio      AudioSource
	notifier   Notifier
	logger     *zap.Logger
	spawn      func(func())
	active     AudioResource
	acquiring  bool
	generation uint64
	cancel     context.CancelFunc
	pendingID  string
	closed     bool
}

// NewDispatcher creates a Dispatcher. Missing collaborators disable the
// corresponding effect.
func NewDispatcher(config Config) *Dispatcher {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Spawn == nil {
		config.Spawn = func(run func()) { go run() }
	}
	return &Dispatcher{
		vibrator: config.Vibrator,
		audio:    config.Audio,
		notifier: config.Notifier,
		logger:   config.Logger,
		spawn:    config.Spawn,
	}
}

// Vibrate fires the pattern without waiting for it to finish.
func (dispatcher *Dispatcher) Vibrate(pattern []time.Duration) {
	if dispatcher.vibrator == nil || len(pattern) == 0 {
		return
	}
	dispatcher.vibrator.Vibrate(pattern)
}

// StartAlarm acquires and plays the looping alarm unless one is already
// sounding or being acquired.
func (dispatcher *Dispatcher) StartAlarm(sourceID string) {
	dispatcher.mu.Lock()
	if dispatcher.closed || dispatcher.audio == nil || dispatcher.active != nil || dispatcher.acquiring {
		dispatcher.mu.Unlock()
		return
	}
	dispatcher.acquiring = true
	dispatcher.generation++
	generation := dispatcher.generation
	ctx, cancel := context.WithCancel(context.Background())
	dispatcher.cancel = cancel
	dispatcher.mu.Unlock()

	dispatcher.spawn(func() {
		dispatcher.acquire(ctx, generation, sourceID)
	})
}

func (dispatcher *Dispatcher) acquire(ctx context.Context, generation uint64, sourceID string) {
	resource, err := dispatcher.audio.AcquireLooping(ctx, sourceID)

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	current := generation == dispatcher.generation && dispatcher.acquiring
	if current {
		dispatcher.acquiring = false
		dispatcher.cancel = nil
	}
	if err != nil {
		dispatcher.logger.Warn("alarm unavailable", zap.String("source", sourceID), zap.Error(err))
		return
	}
	if !current || dispatcher.closed {
		// A stop arrived while the sound was loading.
		dispatcher.releaseLocked(resource, false)
		return
	}
	if err := resource.Play(); err != nil {
		dispatcher.logger.Warn("alarm playback failed", zap.String("source", sourceID), zap.Error(err))
		dispatcher.releaseLocked(resource, false)
		return
	}
	dispatcher.active = resource
	dispatcher.logger.Debug("alarm started", zap.String("source", sourceID))
}

// StopAlarm silences and releases the alarm, including one still loading.
func (dispatcher *Dispatcher) StopAlarm() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.stopAlarmLocked()
}

func (dispatcher *Dispatcher) stopAlarmLocked() {
	if dispatcher.acquiring {
		dispatcher.acquiring = false
		dispatcher.generation++
		if dispatcher.cancel != nil {
			dispatcher.cancel()
			dispatcher.cancel = nil
		}
	}
	if dispatcher.active == nil {
		return
	}
	resource := dispatcher.active
	dispatcher.active = nil
	dispatcher.releaseLocked(resource, true)
	dispatcher.logger.Debug("alarm stopped")
}

func (dispatcher *Dispatcher) releaseLocked(resource AudioResource, playing bool) {
	if playing {
		if err := resource.Stop(); err != nil {
			dispatcher.logger.Warn("stop alarm", zap.Error(err))
		}
	}
	if err := resource.Release(); err != nil {
		dispatcher.logger.Warn("release alarm", zap.Error(err))
	}
}

// ScheduleCompletion replaces the pending notification with one firing
// after the given duration.
func (dispatcher *Dispatcher) ScheduleCompletion(after time.Duration, notification model.Notification) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.notifier == nil || dispatcher.closed {
		return
	}
	dispatcher.cancelNotificationsLocked()

	id, err := dispatcher.notifier.Schedule(after, notification)
	if err != nil {
		dispatcher.logger.Warn("schedule notification", zap.Duration("after", after), zap.Error(err))
		return
	}
	dispatcher.pendingID = id
	dispatcher.logger.Debug("notification scheduled", zap.String("id", id), zap.Duration("after", after))
}

// CancelNotifications clears any pending notification.
func (dispatcher *Dispatcher) CancelNotifications() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.cancelNotificationsLocked()
}

func (dispatcher *Dispatcher) cancelNotificationsLocked() {
	if dispatcher.notifier == nil {
		return
	}
	if err := dispatcher.notifier.CancelAll(); err != nil {
		dispatcher.logger.Warn("cancel notifications", zap.Error(err))
	}
	dispatcher.pendingID = ""
}

// Active reports whether an alarm resource is currently held.
func (dispatcher *Dispatcher) Active() bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.active != nil
}

// Pending returns the id of the pending notification, if any.
func (dispatcher *Dispatcher) Pending() string {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.pendingID
}

// Close releases the alarm and rejects further alarms and notifications.
// Pending notifications are left to the OS.
func (dispatcher *Dispatcher) Close() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.closed {
		return
	}
	dispatcher.stopAlarmLocked()
	dispatcher.closed = true
}
