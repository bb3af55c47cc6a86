package platform

import (
	"sync"

	"focuskit/internal/core/countdown"

	"fyne.io/fyne/v2"
)

// LifecycleHub fans application lifecycle transitions out to subscribers.
type LifecycleHub struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(countdown.AppState)
}

// NewLifecycleHub creates a hub with no source attached.
func NewLifecycleHub() *LifecycleHub {
	return &LifecycleHub{handlers: make(map[int]func(countdown.AppState))}
}

// Subscribe registers a handler and returns its removal function.
func (hub *LifecycleHub) Subscribe(handler func(countdown.AppState)) func() {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	id := hub.next
	hub.next++
	hub.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			hub.mu.Lock()
			delete(hub.handlers, id)
			hub.mu.Unlock()
		})
	}
}

// Emit delivers a transition to every subscriber.
func (hub *LifecycleHub) Emit(state countdown.AppState) {
	hub.mu.Lock()
	handlers := make([]func(countdown.AppState), 0, len(hub.handlers))
	for _, handler := range hub.handlers {
		handlers = append(handlers, handler)
	}
	hub.mu.Unlock()

	for _, handler := range handlers {
		handler(state)
	}
}

// NewFyneLifecycle attaches a hub to the app's foreground hooks.
func NewFyneLifecycle(lifecycle fyne.Lifecycle) *LifecycleHub {
	hub := NewLifecycleHub()
	lifecycle.SetOnEnteredForeground(func() {
		hub.Emit(countdown.AppForeground)
	})
	lifecycle.SetOnExitedForeground(func() {
		hub.Emit(countdown.AppBackground)
	})
	return hub
}
