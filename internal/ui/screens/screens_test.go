package screens

import (
	"testing"
	"time"

	"focuskit/internal/core/countdown"
	"focuskit/internal/core/todo"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	snapshot countdown.Snapshot
	step     time.Duration
	starts   int
	pauses   int
	resets   int
}

func (controller *fakeController) Start() bool {
	controller.starts++
	if controller.snapshot.Remaining <= 0 || controller.snapshot.State == countdown.StateRunning {
		return false
	}
	controller.snapshot.State = countdown.StateRunning
	return true
}

func (controller *fakeController) Pause() {
	controller.pauses++
	if controller.snapshot.State == countdown.StateRunning {
		controller.snapshot.State = countdown.StatePaused
	}
}

func (controller *fakeController) Reset() {
	controller.resets++
	controller.snapshot = countdown.Snapshot{State: countdown.StateIdle, Phase: countdown.PhaseWork, Remaining: 25 * time.Minute}
}

func (controller *fakeController) Increment() bool {
	if controller.snapshot.State == countdown.StateRunning {
		return false
	}
	controller.snapshot.Remaining += controller.step
	return true
}

func (controller *fakeController) Decrement() bool {
	if controller.snapshot.State == countdown.StateRunning {
		return false
	}
	controller.snapshot.Remaining -= controller.step
	if controller.snapshot.Remaining < 0 {
		controller.snapshot.Remaining = 0
	}
	return true
}

func (controller *fakeController) Snapshot() countdown.Snapshot {
	return controller.snapshot
}

func (controller *fakeController) Subscribe(int) <-chan countdown.Event {
	ch := make(chan countdown.Event)
	close(ch)
	return ch
}

type countingVibrator struct {
	patterns [][]time.Duration
}

func (vibrator *countingVibrator) Vibrate(pattern []time.Duration) {
	vibrator.patterns = append(vibrator.patterns, pattern)
}

func newController(remaining time.Duration) *fakeController {
	return &fakeController{
		snapshot: countdown.Snapshot{State: countdown.StateIdle, Phase: countdown.PhaseWork, Remaining: remaining},
		step:     time.Minute,
	}
}

func TestTimerAdjustVibrates(t *testing.T) {
	test.NewTempApp(t)
	controller := newController(0)
	vibrator := &countingVibrator{}
	press := []time.Duration{40 * time.Millisecond}
	view := NewTimer(controller, vibrator, press)

	assert.Equal(t, "00:00:00", view.display.Text)
	assert.True(t, view.start.Disabled())

	test.Tap(view.plus)
	test.Tap(view.plus)
	assert.Equal(t, "00:02:00", view.display.Text)
	assert.False(t, view.start.Disabled())
	require.Len(t, vibrator.patterns, 2)
	assert.Equal(t, press, vibrator.patterns[0])

	test.Tap(view.minus)
	assert.Equal(t, "00:01:00", view.display.Text)
}

func TestTimerDisablesAdjustWhileRunning(t *testing.T) {
	test.NewTempApp(t)
	controller := newController(90 * time.Second)
	view := NewTimer(controller, nil, nil)

	test.Tap(view.start)
	assert.Equal(t, 1, controller.starts)
	assert.True(t, view.plus.Disabled())
	assert.True(t, view.minus.Disabled())
	assert.True(t, view.start.Disabled())
	assert.False(t, view.pause.Disabled())
	assert.Equal(t, "Running", view.status.Text)

	test.Tap(view.pause)
	assert.Equal(t, "Resume", view.start.Text)
	assert.False(t, view.plus.Disabled())

	test.Tap(view.reset)
	assert.Equal(t, "00:25:00", view.display.Text)
	assert.Equal(t, "Start", view.start.Text)
}

func TestTimerRendersFinished(t *testing.T) {
	test.NewTempApp(t)
	view := NewTimer(newController(time.Minute), nil, nil)

	view.Render(countdown.Snapshot{State: countdown.StateFinished})
	assert.Equal(t, "00:00:00", view.display.Text)
	assert.Equal(t, "Time's up", view.status.Text)
	assert.Equal(t, finishedColor, view.display.Color)
	assert.True(t, view.start.Disabled())
}

func TestPomodoroRendersPhase(t *testing.T) {
	test.NewTempApp(t)
	controller := newController(25 * time.Minute)
	view := NewPomodoro(controller)

	assert.Equal(t, "Work Time", view.phase.Text)
	assert.Equal(t, "25:00", view.display.Text)

	view.Render(countdown.Snapshot{State: countdown.StateRunning, Phase: countdown.PhaseBreak, Remaining: 4*time.Minute + 7*time.Second})
	assert.Equal(t, "Break Time", view.phase.Text)
	assert.Equal(t, "4:07", view.display.Text)
	assert.True(t, view.start.Disabled())
	assert.False(t, view.pause.Disabled())
}

func TestPomodoroStartPauseStop(t *testing.T) {
	test.NewTempApp(t)
	controller := newController(25 * time.Minute)
	view := NewPomodoro(controller)

	test.Tap(view.start)
	test.Tap(view.pause)
	assert.Equal(t, "Resume", view.start.Text)

	test.Tap(view.stop)
	assert.Equal(t, 1, controller.resets)
	assert.Equal(t, "Start", view.start.Text)
}

func TestTasksAddAndComplete(t *testing.T) {
	test.NewTempApp(t)
	list := todo.NewList()
	view := NewTasks(list, nil)

	view.handleAdd()
	assert.Equal(t, "Enter a title", view.message.Text)
	assert.Empty(t, list.Pending())

	view.title.SetText("Write report")
	view.description.SetText("quarterly")
	view.handleAdd()
	require.Len(t, view.pendingRows, 1)
	assert.Equal(t, "", view.title.Text)
	assert.Equal(t, "Write report - quarterly", itemText(view.pendingRows[0]))

	view.toggle(view.pendingRows[0].ID)
	assert.Empty(t, view.pendingRows)
	require.Len(t, view.doneRows, 1)

	view.remove(view.doneRows[0].ID)
	assert.Empty(t, view.doneRows)
}

func TestHabitsRejectDuplicates(t *testing.T) {
	test.NewTempApp(t)
	view := NewHabits(todo.NewHabits(), nil)

	view.name.SetText("Read")
	view.handleAdd()
	view.name.SetText("read")
	view.handleAdd()
	assert.Equal(t, "Habit already tracked", view.message.Text)
	require.Len(t, view.rows, 1)

	view.remove(view.rows[0].ID)
	assert.Empty(t, view.rows)
}
