package main

import (
	"errors"

	"focuskit/internal/core/alert"
	"focuskit/internal/core/countdown"
	"focuskit/internal/core/todo"
	"focuskit/internal/platform"
	"focuskit/internal/ui/preferences"
	"focuskit/internal/ui/screens"
	"focuskit/internal/ui/tray"
	"focuskit/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

func runGUI(options *rootOptions) error {
	settings, logger, err := options.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon("focuskit.png"))

	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(420, 520))

	lifecycle := platform.NewFyneLifecycle(fyneApp.Lifecycle())
	scheduler := countdown.TickerScheduler{Dispatch: fyne.Do}
	vibrator := platform.NewBellVibrator(nil, func() {
		fyne.Do(window.RequestFocus)
	})

	dispatcher := alert.NewDispatcher(alert.Config{
		Vibrator: vibrator,
		Audio:    platform.NewAudioSource(resources.Sound, logger),
		Notifier: platform.NewNotifier(platform.FyneDelivery(fyneApp)),
		Logger:   logger.Named("alert"),
	})
	timer := countdown.New(settings.TimerConfig(), countdown.Options{
		Scheduler: scheduler,
		Effects:   dispatcher,
		Lifecycle: lifecycle,
		Logger:    logger.Named("timer"),
	})
	cycle := countdown.New(settings.CycleConfig(), countdown.Options{
		Scheduler: scheduler,
		Lifecycle: lifecycle,
		Logger:    logger.Named("pomodoro"),
		Policy:    countdown.NewPomodoro(settings.PomodoroConfig()),
	})

	timerView := screens.NewTimer(timer, vibrator, preferences.PressPattern())
	pomodoroView := screens.NewPomodoro(cycle)
	tasksView := screens.NewTasks(todo.NewList(), logger)
	habitsView := screens.NewHabits(todo.NewHabits(), logger)
	timerView.Follow()
	pomodoroView.Follow()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := options.saveSettings(settings); err != nil {
			logger.Warn("save settings", zap.Error(err))
		}
		timer.UpdateConfig(settings.TimerConfig(), nil)
		cycle.UpdateConfig(settings.CycleConfig(), countdown.NewPomodoro(settings.PomodoroConfig()))
	})

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Timer", theme.HistoryIcon(), timerView.Content()),
		container.NewTabItemWithIcon("Pomodoro", theme.MediaRecordIcon(), pomodoroView.Content()),
		container.NewTabItemWithIcon("To-do", theme.ListIcon(), tasksView.Content()),
		container.NewTabItemWithIcon("Habits", theme.ConfirmIcon(), habitsView.Content()),
	)
	window.SetContent(tabs)
	window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Preferences", prefsWindow.Show),
	)))

	quit := func() {
		timer.Close()
		cycle.Close()
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnPreferences: prefsWindow.Show,
			OnStart:       func() { timer.Start() },
			OnPause:       timer.Pause,
			OnReset:       timer.Reset,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(fyneApp.Icon())
		trayManager.SetSnapshot(timer.Snapshot())

		trayEvents := timer.Subscribe(8)
		go func() {
			for event := range trayEvents {
				snapshot := event.Snapshot
				fyne.Do(func() {
					trayManager.SetSnapshot(snapshot)
				})
			}
		}()
		window.SetCloseIntercept(window.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		window.SetOnClosed(quit)
	}

	logger.Info("starting", zap.String("version", version))
	window.ShowAndRun()
	timer.Close()
	cycle.Close()
	return nil
}
