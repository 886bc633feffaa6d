package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/countdown"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func runGUI(rt *runtime) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	keeper := rt.keeper

	quit := func() {
		keeper.Shutdown()
		fyneApp.Quit()
	}

	var prefsWindow *preferences.Window
	timerWindow := countdown.New(fyneApp, rt.config.Presets, countdown.Actions{
		OnStart:        keeper.Start,
		OnPause:        keeper.Pause,
		OnReset:        keeper.Reset,
		OnToggle:       keeper.Toggle,
		OnSelectPreset: func(minutes int) { selectPreset(keeper, minutes) },
		OnPreferences:  func() { prefsWindow.Show() },
	})
	keeper.SetView(timerWindow)

	prefsWindow = preferences.New(fyneApp, rt.settings, func(updated preferences.Settings) {
		if err := rt.updateSettings(updated); err != nil {
			log.Printf("settings: %v", err)
		}
		if err := storage.SaveSettings(rt.settingsPath, rt.settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	guard.OnActivate(func() {
		fyne.Do(timerWindow.Show)
	})

	desktopApp, ok := fyneApp.(desktop.App)
	if ok && rt.settings.TrayEnabled {
		trayManager := tray.New(desktopApp, rt.config.Presets, tray.Callbacks{
			OnShow:         timerWindow.Show,
			OnToggle:       keeper.Toggle,
			OnReset:        keeper.Reset,
			OnSelectPreset: func(minutes int) { selectPreset(keeper, minutes) },
			OnPreferences:  func() { prefsWindow.Show() },
			OnQuit:         quit,
		})
		timerWindow.Window().SetCloseIntercept(func() {
			timerWindow.Window().Hide()
		})
		go followTray(keeper.Subscribe(8), trayManager)
	} else {
		if !ok {
			log.Printf("system tray unsupported on this platform")
		}
		timerWindow.Window().SetCloseIntercept(quit)
	}

	err = storage.WatchSettings(ctx, rt.settingsPath, rt.settings, func(updated preferences.Settings) {
		fyne.Do(func() {
			if err := rt.updateSettings(updated); err != nil {
				log.Printf("settings: %v", err)
			}
			prefsWindow.UpdateSettings(rt.settings)
		})
	})
	if err != nil {
		log.Printf("settings watcher: %v", err)
	}

	timerWindow.Show()
	fyneApp.Run()
	keeper.Shutdown()
	return nil
}

func followTray(events <-chan timekeeper.Event, trayManager *tray.Manager) {
	for event := range events {
		status := fmt.Sprintf("%s %s", event.Mode.Label(), timekeeper.FormatClock(event.Remaining))
		running := event.Running
		fyne.Do(func() {
			trayManager.SetRunning(running)
			trayManager.SetStatus(status)
		})
	}
}

func selectPreset(keeper *timekeeper.TimeKeeper, minutes int) {
	if err := keeper.SelectPreset(minutes); err != nil {
		log.Printf("select preset %d: %v", minutes, err)
	}
}
