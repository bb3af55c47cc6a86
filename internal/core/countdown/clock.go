package countdown

import (
	"sync"
	"time"
)

// Clock reports wall-clock time.
type Clock interface {
	Now() time.Time
}

// Handle cancels a repeating callback.
type Handle interface {
	Cancel()
}

// Scheduler runs a callback repeatedly until its handle is canceled.
type Scheduler interface {
	Every(interval time.Duration, callback func()) Handle
}

// AppState is an application lifecycle transition.
type AppState string

const (
	AppForeground AppState = "foreground"
	AppBackground AppState = "background"
)

// Lifecycle delivers foreground/background transitions.
type Lifecycle interface {
	Subscribe(handler func(AppState)) (unsubscribe func())
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time. The monotonic reading is
// stripped because it stops while the machine sleeps, and deadlines must
// keep counting through a suspend.
func (SystemClock) Now() time.Time {
	return time.Now().Round(0)
}

// TickerScheduler runs callbacks from a time.Ticker goroutine.
type TickerScheduler struct {
	// Dispatch hops a tick onto the owner's event loop. Defaults to a direct call.
	Dispatch func(func())
}

// Every starts a ticker that invokes callback each interval.
func (scheduler TickerScheduler) Every(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	dispatch := scheduler.Dispatch
	if dispatch == nil {
		dispatch = func(run func()) { run() }
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(interval, callback, dispatch)
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) run(interval time.Duration, callback func(), dispatch func(func())) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			dispatch(callback)
		}
	}
}

// Cancel stops the ticker. Safe to call more than once.
func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
