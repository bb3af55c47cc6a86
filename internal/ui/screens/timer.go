package screens

import (
	"time"

	"focuskit/internal/core/alert"
	"focuskit/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Timer is the countdown tab.
type Timer struct {
	controller   Controller
	vibrator     alert.Vibrator
	pressPattern []time.Duration
	display      *canvas.Text
	status       *canvas.Text
	plus         *widget.Button
	minus        *widget.Button
	start        *widget.Button
	pause        *widget.Button
	reset        *widget.Button
	content      fyne.CanvasObject
}

// NewTimer builds the timer tab. A nil vibrator disables press feedback.
func NewTimer(controller Controller, vibrator alert.Vibrator, pressPattern []time.Duration) *Timer {
	view := &Timer{
		controller:   controller,
		vibrator:     vibrator,
		pressPattern: pressPattern,
		display:      newDisplayText("00:00:00"),
		status:       newCaptionText(""),
	}

	view.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		view.adjust(controller.Increment)
	})
	view.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		view.adjust(controller.Decrement)
	})
	view.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		controller.Start()
		view.Render(controller.Snapshot())
	})
	view.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		controller.Pause()
		view.Render(controller.Snapshot())
	})
	view.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		controller.Reset()
		view.Render(controller.Snapshot())
	})

	adjusters := container.NewHBox(view.minus, view.plus)
	controls := container.NewHBox(view.start, view.pause, view.reset)
	view.content = container.New(&stackLayout{gap: 12}, view.status, view.display, adjusters, controls)

	view.Render(controller.Snapshot())
	return view
}

// Content returns the tab body.
func (view *Timer) Content() fyne.CanvasObject {
	return view.content
}

// Follow keeps the tab in sync with the engine.
func (view *Timer) Follow() {
	follow(view.controller, view.Render)
}

// Render updates every widget from a snapshot. Must run on the main goroutine.
func (view *Timer) Render(snapshot countdown.Snapshot) {
	view.display.Text = snapshot.HMS()
	view.display.Color = displayColor
	switch snapshot.State {
	case countdown.StateRunning:
		view.status.Text = "Running"
	case countdown.StatePaused:
		view.status.Text = "Paused"
	case countdown.StateFinished:
		view.status.Text = "Time's up"
		view.display.Color = finishedColor
	default:
		view.status.Text = ""
	}
	view.display.Refresh()
	view.status.Refresh()

	running := snapshot.State == countdown.StateRunning
	setEnabled(view.plus, !running)
	setEnabled(view.minus, !running)
	setEnabled(view.start, !running && snapshot.Remaining > 0)
	setEnabled(view.pause, running)
	if snapshot.State == countdown.StatePaused {
		view.start.SetText("Resume")
	} else {
		view.start.SetText("Start")
	}
}

func (view *Timer) adjust(step func() bool) {
	if step() && view.vibrator != nil {
		view.vibrator.Vibrate(view.pressPattern)
	}
	view.Render(view.controller.Snapshot())
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
