package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"focuskit/internal/core/alert"
	"focuskit/internal/core/countdown"
	"focuskit/internal/platform"
	"focuskit/internal/ui/preferences"
	"focuskit/resources"

	"go.uber.org/zap"
)

var errZeroDuration = errors.New("duration must be at least one second")

func runCountdown(parent context.Context, out io.Writer, settings preferences.Settings, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := alert.NewDispatcher(alert.Config{
		Vibrator: platform.NewBellVibrator(out, nil),
		Audio:    platform.NewAudioSource(resources.Sound, logger),
		Notifier: platform.NewNotifier(platform.TerminalDelivery(out, logger)),
		Logger:   logger,
	})
	engine := countdown.New(settings.TimerConfig(), countdown.Options{
		Effects:   dispatcher,
		Lifecycle: platform.NewSignalLifecycle(ctx),
		Logger:    logger,
	})
	defer engine.Close()

	events := engine.Subscribe(8)
	if !engine.Start() {
		return errZeroDuration
	}
	return followTerminal(ctx, out, engine, events, countdownLine, settings.AlarmEnabled)
}

func runPomodoro(parent context.Context, out io.Writer, settings preferences.Settings, logger *zap.Logger) error {
	if settings.WorkDuration <= 0 || settings.BreakDuration <= 0 {
		return errZeroDuration
	}
	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := countdown.New(settings.CycleConfig(), countdown.Options{
		Lifecycle: platform.NewSignalLifecycle(ctx),
		Logger:    logger,
		Policy:    countdown.NewPomodoro(settings.PomodoroConfig()),
	})
	defer engine.Close()

	events := engine.Subscribe(8)
	engine.Start()
	return followTerminal(ctx, out, engine, events, pomodoroLine, false)
}

// snapshotSource is polled so a finish is noticed even when its event was
// dropped by a full subscriber buffer.
type snapshotSource interface {
	Snapshot() countdown.Snapshot
}

const terminalPollInterval = time.Second

// followTerminal redraws the status line on every event until ctx is done.
// When holdAlarm is false it also returns once the countdown finishes.
func followTerminal(ctx context.Context, out io.Writer, source snapshotSource, events <-chan countdown.Event, line func(countdown.Snapshot) string, holdAlarm bool) error {
	poll := time.NewTicker(terminalPollInterval)
	defer poll.Stop()

	finished := false
	fmt.Fprintf(out, "\r%s", line(source.Snapshot()))
	for {
		var snapshot countdown.Snapshot
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case event, ok := <-events:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			if event.Type == countdown.EventPhaseChange {
				fmt.Fprintln(out)
			}
			snapshot = event.Snapshot
			fmt.Fprintf(out, "\r%s", line(snapshot))
		case <-poll.C:
			snapshot = source.Snapshot()
			if snapshot.State == countdown.StateFinished && !finished {
				fmt.Fprintf(out, "\r%s", line(snapshot))
			}
		}

		if snapshot.State != countdown.StateFinished || finished {
			continue
		}
		finished = true
		if !holdAlarm {
			fmt.Fprintln(out)
			return nil
		}
		fmt.Fprint(out, "\nPress Ctrl+C to silence the alarm.\n")
	}
}

func countdownLine(snapshot countdown.Snapshot) string {
	if snapshot.State == countdown.StateFinished {
		return "00:00:00  Time's up"
	}
	return snapshot.HMS() + "          "
}

func pomodoroLine(snapshot countdown.Snapshot) string {
	title := "Work Time"
	if snapshot.Phase == countdown.PhaseBreak {
		title = "Break Time"
	}
	return fmt.Sprintf("%-10s %6s", title, snapshot.MSS())
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
