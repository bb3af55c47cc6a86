package platform

import "context"

// NewSignalLifecycle returns a hub without a source; Windows consoles have
// no job-control suspend.
func NewSignalLifecycle(_ context.Context) *LifecycleHub {
	return NewLifecycleHub()
}
