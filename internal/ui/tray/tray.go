package tray

import (
	"fmt"

	"focuskit/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu state without publishing it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Timer: idle", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show FocusKit", invoke(&manager.callbacks.OnShow))
	manager.prefsItem = fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences))
	manager.startItem = fyne.NewMenuItem("Start timer", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause timer", invoke(&manager.callbacks.OnPause))
	manager.pauseItem.Disabled = true
	manager.resetItem = fyne.NewMenuItem("Reset timer", invoke(&manager.callbacks.OnReset))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetSnapshot mirrors the timer state in the menu.
func (manager *Manager) SetSnapshot(snapshot countdown.Snapshot) {
	running := snapshot.State == countdown.StateRunning
	manager.statusItem.Label = statusLabel(snapshot)
	manager.startItem.Disabled = running || snapshot.Remaining <= 0
	manager.pauseItem.Disabled = !running
	if snapshot.State == countdown.StatePaused {
		manager.startItem.Label = "Resume timer"
	} else {
		manager.startItem.Label = "Start timer"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("FocusKit",
		manager.statusItem,
		manager.showItem,
		manager.prefsItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	))
}

func statusLabel(snapshot countdown.Snapshot) string {
	switch snapshot.State {
	case countdown.StateRunning:
		return fmt.Sprintf("Timer: %s left", snapshot.HMS())
	case countdown.StatePaused:
		return fmt.Sprintf("Timer: %s (paused)", snapshot.HMS())
	case countdown.StateFinished:
		return "Timer: finished"
	default:
		return fmt.Sprintf("Timer: %s", snapshot.HMS())
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
