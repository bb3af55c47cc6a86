//go:build !windows

package platform

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"focuskit/internal/core/countdown"
)

// NewSignalLifecycle treats SIGCONT, sent when a suspended job is resumed,
// as a return to the foreground. The hub stops when ctx is done.
func NewSignalLifecycle(ctx context.Context) *LifecycleHub {
	hub := NewLifecycleHub()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGCONT)

	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				hub.Emit(countdown.AppForeground)
			}
		}
	}()
	return hub
}
