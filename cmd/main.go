package main

import (
	"fmt"
	"os"
	"time"

	"focuskit/internal/storage"
	"focuskit/internal/ui/preferences"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	appName = "FocusKit"
	appID   = "com.focuskit.app"
)

var version = "dev"

type rootOptions struct {
	logLevel   string
	configPath string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:          "focuskit",
		Short:        "Countdown timer, Pomodoro cycle and to-do list",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGUI(options)
		},
	}
	root.PersistentFlags().StringVar(&options.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&options.configPath, "config", "", "settings file (defaults to the user config directory)")

	root.AddCommand(
		newCountdownCommand(options),
		newPomodoroCommand(options),
		newVersionCommand(),
	)
	return root
}

func newCountdownCommand(options *rootOptions) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Run a countdown in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, logger, err := options.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cmd.Flags().Changed("duration") {
				settings.TimerDuration = duration
			}
			return runCountdown(cmd.Context(), cmd.OutOrStdout(), settings, logger)
		},
	}
	cmd.Flags().DurationVarP(&duration, "duration", "d", 25*time.Minute, "countdown length")
	return cmd
}

func newPomodoroCommand(options *rootOptions) *cobra.Command {
	var work, rest time.Duration
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run the work/break cycle in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, logger, err := options.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cmd.Flags().Changed("work") {
				settings.WorkDuration = work
			}
			if cmd.Flags().Changed("break") {
				settings.BreakDuration = rest
			}
			return runPomodoro(cmd.Context(), cmd.OutOrStdout(), settings, logger)
		},
	}
	cmd.Flags().DurationVar(&work, "work", 25*time.Minute, "work phase length")
	cmd.Flags().DurationVar(&rest, "break", 5*time.Minute, "break phase length")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	}
}

func (options *rootOptions) load() (preferences.Settings, *zap.Logger, error) {
	logger, err := newLogger(options.logLevel)
	if err != nil {
		return preferences.DefaultSettings(), nil, err
	}
	settings, err := options.loadSettings()
	if err != nil {
		logger.Warn("using default settings", zap.Error(err))
	}
	return settings, logger, nil
}

func (options *rootOptions) loadSettings() (preferences.Settings, error) {
	if options.configPath != "" {
		return storage.LoadSettingsFile(options.configPath)
	}
	return storage.LoadSettings(appName)
}

func (options *rootOptions) saveSettings(settings preferences.Settings) error {
	if options.configPath != "" {
		return storage.SaveSettingsFile(options.configPath, settings)
	}
	return storage.SaveSettings(appName, settings)
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	config := zap.NewProductionConfig()
	if atomicLevel.Level() == zap.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = atomicLevel
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("focuskit"), nil
}
