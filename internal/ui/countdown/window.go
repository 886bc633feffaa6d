package countdown

import (
	"fmt"
	"image/color"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	clockColor    = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	completeColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
)

// Actions are the user intents the window forwards to the timer.
type Actions struct {
	OnStart        func()
	OnPause        func()
	OnReset        func()
	OnToggle       func()
	OnSelectPreset func(minutes int)
	OnPreferences  func()
}

// Window is the main countdown window. It implements timekeeper.View.
type Window struct {
	window       fyne.Window
	actions      Actions
	timeText     *canvas.Text
	statusLabel  *widget.Label
	sessionLabel *widget.Label
	progress     *widget.ProgressBar
	startButton  *widget.Button
	pauseButton  *widget.Button
	resetButton  *widget.Button
	modeButtons  map[model.Mode]*widget.Button
}

var _ timekeeper.View = (*Window)(nil)

// New builds the countdown window. Presets decide the mode button labels.
func New(app fyne.App, presets model.Presets, actions Actions) *Window {
	window := app.NewWindow(timekeeper.DefaultTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timeText := canvas.NewText(timekeeper.FormatClock(presets.Focus), clockColor)
	timeText.Alignment = fyne.TextAlignCenter
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeText.TextSize = 72

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter
	sessionLabel := widget.NewLabel(sessionText(timekeeper.SessionInfo{Session: 1}))
	sessionLabel.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	countdown := &Window{
		window:       window,
		actions:      actions,
		timeText:     timeText,
		statusLabel:  statusLabel,
		sessionLabel: sessionLabel,
		progress:     progress,
		modeButtons:  make(map[model.Mode]*widget.Button),
	}

	modeRow := container.NewGridWithColumns(3)
	for _, mode := range []model.Mode{model.ModeFocus, model.ModeShortBreak, model.ModeLongBreak} {
		minutes := int(presets.Duration(mode).Minutes())
		button := widget.NewButton(fmt.Sprintf("%s (%d)", mode.Label(), minutes), func() {
			call(countdown.actions.OnSelectPreset, minutes)
		})
		countdown.modeButtons[mode] = button
		modeRow.Add(button)
	}

	countdown.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		invoke(countdown.actions.OnStart)
	})
	countdown.startButton.Importance = widget.HighImportance
	countdown.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		invoke(countdown.actions.OnPause)
	})
	countdown.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		invoke(countdown.actions.OnReset)
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		invoke(countdown.actions.OnPreferences)
	})

	controls := container.NewHBox(
		layout.NewSpacer(),
		countdown.startButton,
		countdown.pauseButton,
		countdown.resetButton,
		layout.NewSpacer(),
		settingsButton,
	)

	content := container.NewVBox(
		modeRow,
		container.NewCenter(timeText),
		progress,
		statusLabel,
		controls,
		widget.NewSeparator(),
		sessionLabel,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 360))

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		switch actionForKey(event.Name) {
		case keyToggle:
			invoke(countdown.actions.OnToggle)
		case keyReset:
			invoke(countdown.actions.OnReset)
		}
	})

	countdown.applyFrame(timekeeper.Frame{
		TimeText: timekeeper.FormatClock(presets.Focus),
		Mode:     model.ModeFocus,
	})
	return countdown
}

// Window exposes the underlying Fyne window.
func (countdown *Window) Window() fyne.Window {
	return countdown.window
}

// Show displays and focuses the window.
func (countdown *Window) Show() {
	countdown.window.Show()
	countdown.window.RequestFocus()
}

// Render implements timekeeper.View.
func (countdown *Window) Render(frame timekeeper.Frame) {
	fyne.Do(func() {
		countdown.applyFrame(frame)
	})
}

// SetTitle implements timekeeper.View.
func (countdown *Window) SetTitle(title string) {
	fyne.Do(func() {
		countdown.window.SetTitle(title)
	})
}

// SetSessionInfo implements timekeeper.View.
func (countdown *Window) SetSessionInfo(info timekeeper.SessionInfo) {
	fyne.Do(func() {
		countdown.sessionLabel.SetText(sessionText(info))
	})
}

// SetCompleteIndicator implements timekeeper.View.
func (countdown *Window) SetCompleteIndicator(active bool) {
	fyne.Do(func() {
		countdown.applyIndicator(active)
	})
}

func (countdown *Window) applyFrame(frame timekeeper.Frame) {
	countdown.timeText.Text = frame.TimeText
	countdown.timeText.Refresh()
	countdown.progress.SetValue(frame.ProgressPercent / 100)
	countdown.statusLabel.SetText(frame.Status)

	if frame.Running {
		countdown.startButton.Disable()
		countdown.pauseButton.Enable()
	} else {
		countdown.startButton.Enable()
		countdown.pauseButton.Disable()
	}

	for mode, button := range countdown.modeButtons {
		importance := widget.MediumImportance
		if mode == frame.Mode {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}
}

func (countdown *Window) applyIndicator(active bool) {
	if active {
		countdown.timeText.Color = completeColor
	} else {
		countdown.timeText.Color = clockColor
	}
	countdown.timeText.Refresh()
}

func sessionText(info timekeeper.SessionInfo) string {
	return fmt.Sprintf("Session #%d   ·   %d min focused", info.Session, info.FocusMinutes)
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}

func call(handler func(int), value int) {
	if handler != nil {
		handler(value)
	}
}
