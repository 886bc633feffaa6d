package tray

import (
	"fmt"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const menuTitle = "Pomodoro"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow         func()
	OnToggle       func()
	OnReset        func()
	OnSelectPreset func(minutes int)
	OnPreferences  func()
	OnQuit         func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	modeItem   *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	running    bool
	status     string
}

// New creates a tray manager with the provided callbacks. Presets label the
// mode submenu.
func New(app desktop.App, presets model.Presets, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show timer", func() {
		invoke(manager.callbacks.OnShow)
	})
	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		invoke(manager.callbacks.OnToggle)
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		invoke(manager.callbacks.OnReset)
	})

	var modeItems []*fyne.MenuItem
	for _, mode := range []model.Mode{model.ModeFocus, model.ModeShortBreak, model.ModeLongBreak} {
		minutes := int(presets.Duration(mode).Minutes())
		modeItems = append(modeItems, fyne.NewMenuItem(fmt.Sprintf("%s (%d min)", mode.Label(), minutes), func() {
			if manager.callbacks.OnSelectPreset != nil {
				manager.callbacks.OnSelectPreset(minutes)
			}
		}))
	}
	manager.modeItem = fyne.NewMenuItem("Switch mode", nil)
	manager.modeItem.ChildMenu = fyne.NewMenu("", modeItems...)

	manager.prefsItem = fyne.NewMenuItem("Preferences", func() {
		invoke(manager.callbacks.OnPreferences)
	})
	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		invoke(manager.callbacks.OnQuit)
	})
	manager.quitItem.IsQuit = true

	manager.refreshStatus()
	if app != nil {
		app.SetSystemTrayIcon(theme.MediaPauseIcon())
	}
	return manager
}

// SetStatus updates the status label, e.g. "Focus 24:59".
func (manager *Manager) SetStatus(status string) {
	manager.status = status
	manager.refreshStatus()
}

// SetRunning flips the start/pause item and the tray icon.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(trayIcon(running))
	}
	manager.refreshStatus()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.modeItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.prefsItem,
		manager.quitItem,
	)
}

func (manager *Manager) refreshStatus() {
	status := manager.status
	if !manager.running {
		status = fmt.Sprintf("%s (stopped)", status)
	}
	manager.statusItem.Label = status
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func trayIcon(running bool) fyne.Resource {
	if running {
		return theme.MediaPlayIcon()
	}
	return theme.MediaPauseIcon()
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
