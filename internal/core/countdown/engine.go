// Package countdown implements a deadline-based countdown engine with an
// optional work/break cycle.
package countdown

import (
	"sync"
	"time"

	"focuskit/internal/core/model"

	"go.uber.org/zap"
)

const (
	defaultTickInterval = time.Second
	defaultStep         = time.Minute
	defaultMaxDuration  = 24*time.Hour + 59*time.Minute
)

// Effects is the side-effect surface the engine drives.
type Effects interface {
	Vibrate(pattern []time.Duration)
	StartAlarm(sourceID string)
	StopAlarm()
	ScheduleCompletion(after time.Duration, notification model.Notification)
	CancelNotifications()
	Close()
}

// Options contains the collaborators of an Engine.
type Options struct {
	Clock     Clock
	Scheduler Scheduler
	Effects   Effects
	Lifecycle Lifecycle
	Logger    *zap.Logger

	// Policy turns the engine into a cyclic countdown. Nil means zero is terminal.
	Policy CyclePolicy
}

// Engine is a countdown state machine whose remaining time is derived from
// an absolute deadline while running.
type Engine struct {
	mu          sync.Mutex
	config      model.CountdownConfig
	clock       Clock
	scheduler   Scheduler
	effects     Effects
	policy      CyclePolicy
	logger      *zap.Logger
	state       State
	phase       Phase
	remaining   time.Duration
	frozen      time.Duration
	deadline    time.Time
	tick        Handle
	unsubscribe func()
	events      []chan Event
	closed      bool
}

// New creates an idle Engine and subscribes it to the lifecycle signal.
func New(config model.CountdownConfig, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Effects == nil {
		options.Effects = noEffects{}
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	engine := &Engine{
		config:    withDefaults(config),
		clock:     options.Clock,
		scheduler: options.Scheduler,
		effects:   options.Effects,
		policy:    options.Policy,
		logger:    options.Logger,
	}
	engine.resetLocked()

	if options.Lifecycle != nil {
		engine.unsubscribe = options.Lifecycle.Subscribe(engine.handleLifecycle)
	}
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start runs the countdown from the current remaining time. It reports
// whether the engine entered the running state.
func (engine *Engine) Start() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.closed || engine.state == StateRunning {
		return false
	}
	left := engine.remaining
	if engine.state == StatePaused && engine.frozen > 0 {
		left = engine.frozen
	}
	if left <= 0 {
		engine.logger.Debug("start rejected: zero duration")
		return false
	}

	now := engine.clock.Now()
	engine.deadline = now.Add(left)
	engine.frozen = 0
	engine.state = StateRunning

	engine.effects.StopAlarm()
	if engine.config.Notification != nil {
		engine.effects.ScheduleCompletion(left, *engine.config.Notification)
	}
	engine.startTickLocked()

	engine.logger.Info("countdown started",
		zap.String("phase", string(engine.phase)),
		zap.Duration("duration", left),
		zap.Time("deadline", engine.deadline),
	)
	engine.emitLocked(EventStateChange, now)
	return true
}

// Pause freezes a running countdown. Pausing a finished countdown resets it.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.closed {
		return
	}
	switch engine.state {
	case StateRunning:
	case StateFinished:
		engine.stopLocked()
		return
	default:
		engine.effects.StopAlarm()
		return
	}

	now := engine.clock.Now()
	left := engine.deadline.Sub(now)
	if left.Truncate(time.Second) <= 0 {
		engine.zeroLocked(now)
		if engine.state != StateRunning {
			return
		}
		left = engine.deadline.Sub(now)
	}

	engine.cancelTickLocked()
	engine.frozen = left
	engine.remaining = left.Truncate(time.Second)
	engine.deadline = time.Time{}
	engine.state = StatePaused
	engine.effects.CancelNotifications()
	engine.effects.StopAlarm()

	engine.logger.Info("countdown paused", zap.Duration("remaining", engine.remaining))
	engine.emitLocked(EventStateChange, now)
}

// Stop returns the engine to idle with its configured initial duration.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.stopLocked()
}

// Reset is an alias of Stop.
func (engine *Engine) Reset() {
	engine.Stop()
}

func (engine *Engine) stopLocked() {
	engine.resetLocked()
	engine.effects.CancelNotifications()
	engine.effects.StopAlarm()

	engine.logger.Info("countdown reset", zap.Duration("remaining", engine.remaining))
	engine.emitLocked(EventStateChange, engine.clock.Now())
}

func (engine *Engine) resetLocked() {
	engine.cancelTickLocked()
	engine.deadline = time.Time{}
	engine.frozen = 0
	engine.state = StateIdle
	engine.phase = PhaseWork
	engine.remaining = engine.config.Initial
	if engine.policy != nil {
		engine.phase, engine.remaining = engine.policy.Initial()
	}
	if engine.remaining > engine.config.MaxDuration {
		engine.remaining = engine.config.MaxDuration
	}
}

// UpdateConfig replaces the configuration and cycle policy. An idle engine
// adopts the new initial duration at once; otherwise it applies from the
// next reset.
func (engine *Engine) UpdateConfig(config model.CountdownConfig, policy CyclePolicy) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.config = withDefaults(config)
	engine.policy = policy
	if engine.state == StateIdle {
		engine.resetLocked()
		engine.emitLocked(EventProgress, engine.clock.Now())
	}
}

func withDefaults(config model.CountdownConfig) model.CountdownConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}
	if config.Step <= 0 {
		config.Step = defaultStep
	}
	if config.MaxDuration <= 0 {
		config.MaxDuration = defaultMaxDuration
	}
	return config
}

// Increment adds one step to the duration of the next run.
func (engine *Engine) Increment() bool {
	return engine.adjust(engine.config.Step)
}

// Decrement removes one step from the duration of the next run.
func (engine *Engine) Decrement() bool {
	return engine.adjust(-engine.config.Step)
}

// SetDuration replaces the duration of the next run. Rejected while running.
func (engine *Engine) SetDuration(duration time.Duration) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.setDurationLocked(duration)
}

func (engine *Engine) adjust(delta time.Duration) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.setDurationLocked(engine.remaining + delta)
}

func (engine *Engine) setDurationLocked(duration time.Duration) bool {
	if engine.closed || engine.state == StateRunning {
		return false
	}
	duration = duration.Truncate(time.Second)
	if duration < 0 {
		duration = 0
	}
	if duration > engine.config.MaxDuration {
		duration = engine.config.MaxDuration
	}
	engine.remaining = duration
	if engine.state == StatePaused {
		engine.frozen = duration
	}
	if engine.state == StateFinished {
		engine.state = StateIdle
	}
	engine.emitLocked(EventProgress, engine.clock.Now())
	return true
}

// Tick recomputes the remaining time from the deadline. It is the
// scheduler callback.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.recomputeLocked()
}

// Reconcile repairs the remaining time after a period in which ticks may
// not have run.
func (engine *Engine) Reconcile() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateRunning {
		engine.logger.Debug("reconciling with deadline", zap.Time("deadline", engine.deadline))
	}
	engine.recomputeLocked()
}

func (engine *Engine) handleLifecycle(state AppState) {
	switch state {
	case AppForeground:
		engine.Reconcile()
	case AppBackground:
		engine.logger.Debug("entered background")
	}
}

func (engine *Engine) recomputeLocked() {
	if engine.closed || engine.state != StateRunning {
		return
	}
	now := engine.clock.Now()
	left := engine.deadline.Sub(now)
	if left <= 0 {
		engine.zeroLocked(now)
		return
	}
	engine.remaining = left.Truncate(time.Second)
	if engine.remaining == 0 {
		engine.zeroLocked(now)
		return
	}
	engine.emitLocked(EventProgress, now)
}

// zeroLocked handles the countdown reaching zero. It only acts on a
// running engine, so a second observation of the same zero is a no-op.
func (engine *Engine) zeroLocked(now time.Time) {
	if engine.state != StateRunning {
		return
	}

	if engine.policy != nil {
		next, duration := engine.policy.Next(engine.phase)
		if duration > 0 {
			engine.phase = next
			engine.remaining = duration
			engine.deadline = now.Add(duration)
			engine.logger.Info("phase rotated",
				zap.String("phase", string(next)),
				zap.Duration("duration", duration),
			)
			engine.emitLocked(EventPhaseChange, now)
			return
		}
	}

	engine.cancelTickLocked()
	engine.deadline = time.Time{}
	engine.remaining = 0
	engine.state = StateFinished
	engine.effects.CancelNotifications()
	if engine.config.Alarm.Enabled {
		engine.effects.Vibrate(engine.config.Alarm.VibrationPattern)
		engine.effects.StartAlarm(engine.config.Alarm.SourceID)
	}

	engine.logger.Info("countdown finished")
	engine.emitLocked(EventFinished, now)
}

// Snapshot returns the current engine state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// State returns the current run state.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Remaining returns the displayed remaining time in whole seconds.
func (engine *Engine) Remaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// Close cancels the tick, releases the alarm, unsubscribes from lifecycle
// events and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.cancelTickLocked()
	engine.effects.Close()
	unsubscribe := engine.unsubscribe
	engine.unsubscribe = nil
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startTickLocked() {
	engine.cancelTickLocked()
	engine.tick = engine.scheduler.Every(engine.config.TickInterval, engine.Tick)
}

func (engine *Engine) cancelTickLocked() {
	if engine.tick != nil {
		engine.tick.Cancel()
		engine.tick = nil
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:     engine.state,
		Phase:     engine.phase,
		Remaining: engine.remaining,
		Deadline:  engine.deadline,
	}
}

func (engine *Engine) emitLocked(eventType EventType, at time.Time) {
	event := Event{Type: eventType, Snapshot: engine.snapshotLocked(), At: at}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type noEffects struct{}

func (noEffects) Vibrate([]time.Duration) {}
func (noEffects) StartAlarm(string) {}
func (noEffects) StopAlarm() {}
func (noEffects) ScheduleCompletion(time.Duration, model.Notification) {}
func (noEffects) CancelNotifications() {}
func (noEffects) Close() {}
