package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"github.com/spf13/cobra"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.timer"
)

var version = "dev"

type options struct {
	configPath string
	mute       bool
	mode       string
	tick       time.Duration
}

// runtime is the state shared by both front ends.
type runtime struct {
	options      *options
	service      platform.Service
	settingsPath string
	settings     preferences.Settings
	config       model.Config
	keeper       *timekeeper.TimeKeeper
	notifier     *platform.ChimeNotifier
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "pomodoro",
		Short:         "A Pomodoro focus timer",
		Long:          "Pomodoro runs 25 minute focus sessions separated by short and long breaks.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts, platform.NewService())
			if err != nil {
				return err
			}
			return runGUI(rt)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "",
		"settings file (default: <user config dir>/Pomodoro/settings.yaml)")
	flags.BoolVar(&opts.mute, "mute", false, "do not play the completion chime")
	flags.StringVar(&opts.mode, "mode", "focus", "starting mode: focus, short or long")
	flags.DurationVar(&opts.tick, "tick", time.Second, "countdown tick interval")
	_ = flags.MarkHidden("tick")

	cmd.AddCommand(newTUICmd(opts))
	return cmd
}

func newRuntime(opts *options, service platform.Service) (*runtime, error) {
	mode, err := model.ParseMode(opts.mode)
	if err != nil {
		return nil, fmt.Errorf("--mode: %w", err)
	}
	if opts.tick <= 0 {
		return nil, fmt.Errorf("--tick must be positive, got %s", opts.tick)
	}

	settingsPath := opts.configPath
	if settingsPath == "" {
		configDir, err := service.ConfigDir()
		if err != nil {
			return nil, err
		}
		settingsPath = storage.DefaultPath(configDir, appName)
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	// The login item is the source of truth for autostart.
	if enabled, err := service.AutostartEnabled(appName); err != nil {
		log.Printf("autostart status: %v", err)
	} else {
		settings.Autostart = enabled
	}

	rt := &runtime{
		options:      opts,
		service:      service,
		settingsPath: settingsPath,
		settings:     settings,
		config:       model.DefaultConfig(),
	}
	rt.notifier = platform.NewChimeNotifier(rt.soundEnabled(settings), settings.Volume)
	rt.keeper = timekeeper.New(rt.config, timekeeper.Config{TickInterval: opts.tick})
	rt.keeper.SetNotifier(rt.notifier)
	if mode != model.ModeFocus {
		if err := rt.keeper.SwitchMode(mode, 0); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

func (rt *runtime) soundEnabled(settings preferences.Settings) bool {
	return settings.SoundEnabled && !rt.options.mute
}

// applySettings pushes changed preferences into the running notifier.
func (rt *runtime) applySettings(settings preferences.Settings) {
	rt.settings = settings.Normalize()
	rt.notifier.Configure(rt.soundEnabled(rt.settings), rt.settings.Volume)
}

// updateSettings applies changed preferences and registers or removes the
// login item when the autostart flag flips.
func (rt *runtime) updateSettings(updated preferences.Settings) error {
	previous := rt.settings
	rt.applySettings(updated)
	if previous.Autostart == rt.settings.Autostart {
		return nil
	}
	if err := setAutostart(rt.service, rt.settings.Autostart); err != nil {
		return fmt.Errorf("autostart: %w", err)
	}
	return nil
}

func setAutostart(service platform.Service, enabled bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return service.SetAutostart(appName, execPath, enabled)
}
