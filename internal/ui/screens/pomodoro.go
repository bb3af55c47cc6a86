package screens

import (
	"focuskit/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Pomodoro is the work/break cycle tab.
type Pomodoro struct {
	controller Controller
	phase      *canvas.Text
	display    *canvas.Text
	start      *widget.Button
	pause      *widget.Button
	stop       *widget.Button
	content    fyne.CanvasObject
}

// NewPomodoro builds the Pomodoro tab.
func NewPomodoro(controller Controller) *Pomodoro {
	view := &Pomodoro{
		controller: controller,
		phase:      newCaptionText(""),
		display:    newDisplayText("0:00"),
	}

	view.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		controller.Start()
		view.Render(controller.Snapshot())
	})
	view.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		controller.Pause()
		view.Render(controller.Snapshot())
	})
	view.stop = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		controller.Reset()
		view.Render(controller.Snapshot())
	})

	controls := container.NewHBox(view.start, view.pause, view.stop)
	view.content = container.New(&stackLayout{gap: 12}, view.phase, view.display, controls)

	view.Render(controller.Snapshot())
	return view
}

// Content returns the tab body.
func (view *Pomodoro) Content() fyne.CanvasObject {
	return view.content
}

// Follow keeps the tab in sync with the engine.
func (view *Pomodoro) Follow() {
	follow(view.controller, view.Render)
}

// Render updates every widget from a snapshot. Must run on the main goroutine.
func (view *Pomodoro) Render(snapshot countdown.Snapshot) {
	view.phase.Text = phaseTitle(snapshot.Phase)
	view.display.Text = snapshot.MSS()
	view.phase.Refresh()
	view.display.Refresh()

	running := snapshot.State == countdown.StateRunning
	setEnabled(view.start, !running)
	setEnabled(view.pause, running)
	if snapshot.State == countdown.StatePaused {
		view.start.SetText("Resume")
	} else {
		view.start.SetText("Start")
	}
}

func phaseTitle(phase countdown.Phase) string {
	if phase == countdown.PhaseBreak {
		return "Break Time"
	}
	return "Work Time"
}
