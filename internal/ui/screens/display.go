// Package screens contains the FocusKit tabs: the countdown timer, the
// Pomodoro cycle and the to-do and habit lists.
package screens

import (
	"image/color"

	"focuskit/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// Controller is the engine surface the timer screens drive.
type Controller interface {
	Start() bool
	Pause()
	Reset()
	Increment() bool
	Decrement() bool
	Snapshot() countdown.Snapshot
	Subscribe(buffer int) <-chan countdown.Event
}

var (
	displayColor  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	finishedColor = color.NRGBA{R: 230, G: 80, B: 70, A: 255}
	captionColor  = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

const (
	displayTextSize = 56
	captionTextSize = 20
)

func newDisplayText(text string) *canvas.Text {
	label := canvas.NewText(text, displayColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	label.TextSize = displayTextSize
	return label
}

func newCaptionText(text string) *canvas.Text {
	label := canvas.NewText(text, captionColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = captionTextSize
	return label
}

// follow renders every event of the controller on the main goroutine until
// the engine closes its channel.
func follow(controller Controller, render func(countdown.Snapshot)) {
	events := controller.Subscribe(8)
	go func() {
		for event := range events {
			snapshot := event.Snapshot
			fyne.Do(func() {
				render(snapshot)
			})
		}
	}()
}

// stackLayout centers its objects vertically with a fixed gap.
type stackLayout struct {
	gap float32
}

func (layout *stackLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	total := layout.MinSize(objects).Height
	y := (size.Height - total) / 2
	if y < 0 {
		y = 0
	}
	for _, object := range objects {
		if !object.Visible() {
			continue
		}
		minSize := object.MinSize()
		width := minSize.Width
		if width > size.Width {
			width = size.Width
		}
		object.Move(fyne.NewPos((size.Width-width)/2, y))
		object.Resize(fyne.NewSize(width, minSize.Height))
		y += minSize.Height + layout.gap
	}
}

func (layout *stackLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	visible := 0
	for _, object := range objects {
		if !object.Visible() {
			continue
		}
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height
		visible++
	}
	if visible > 1 {
		height += layout.gap * float32(visible-1)
	}
	return fyne.NewSize(width, height)
}
