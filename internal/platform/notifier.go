package platform

import (
	"fmt"
	"io"
	"sync"
	"time"

	"focuskit/internal/core/model"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Delivery shows a notification to the user.
type Delivery func(model.Notification)

// Notifier delivers one-shot notifications after a delay.
type Notifier struct {
	mu      sync.Mutex
	deliver Delivery
	pending map[string]*time.Timer
}

// NewNotifier creates a Notifier using the given delivery function.
func NewNotifier(deliver Delivery) *Notifier {
	return &Notifier{
		deliver: deliver,
		pending: make(map[string]*time.Timer),
	}
}

// Schedule registers a notification for delivery after the given duration.
func (notifier *Notifier) Schedule(after time.Duration, notification model.Notification) (string, error) {
	if notifier.deliver == nil {
		return "", fmt.Errorf("schedule notification: no delivery configured")
	}
	if after < 0 {
		after = 0
	}
	id := uuid.NewString()

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.pending[id] = time.AfterFunc(after, func() {
		notifier.mu.Lock()
		_, live := notifier.pending[id]
		delete(notifier.pending, id)
		notifier.mu.Unlock()
		if live {
			notifier.deliver(notification)
		}
	})
	return id, nil
}

// CancelAll drops every pending notification.
func (notifier *Notifier) CancelAll() error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	for id, timer := range notifier.pending {
		timer.Stop()
		delete(notifier.pending, id)
	}
	return nil
}

// Pending returns the number of undelivered notifications.
func (notifier *Notifier) Pending() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.pending)
}

// FyneDelivery sends notifications through the desktop notification centre.
func FyneDelivery(app fyne.App) Delivery {
	return func(notification model.Notification) {
		app.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
	}
}

// TerminalDelivery prints notifications and logs them.
func TerminalDelivery(out io.Writer, logger *zap.Logger) Delivery {
	return func(notification model.Notification) {
		if out != nil {
			_, _ = fmt.Fprintf(out, "\n%s: %s\n", notification.Title, notification.Body)
		}
		if logger != nil {
			logger.Info("notification delivered", zap.String("title", notification.Title))
		}
	}
}
