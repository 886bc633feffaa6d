package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	sound       *widget.Check
	volume      *widget.Slider
	volumeLabel *widget.Label
	tray        *widget.Check
	autostart   *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	sound := widget.NewCheck("Play a sound when a timer ends", nil)
	volumeLabel := widget.NewLabel("")
	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05
	volume.OnChanged = func(value float64) {
		volumeLabel.SetText(volumeText(value))
	}
	sound.OnChanged = func(checked bool) {
		if checked {
			volume.Enable()
			return
		}
		volume.Disable()
	}

	tray := widget.NewCheck("Show in system tray", nil)
	autostart := widget.NewCheck("Start at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), volumeLabel, volume),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		tray,
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 260))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		sound:       sound,
		volume:      volume,
		volumeLabel: volumeLabel,
		tray:        tray,
		autostart:   autostart,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Normalize()
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.SetValue(settings.Volume)
	prefs.volumeLabel.SetText(volumeText(settings.Volume))
	prefs.tray.SetChecked(settings.TrayEnabled)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := Settings{
		SoundEnabled: prefs.sound.Checked,
		Volume:       prefs.volume.Value,
		TrayEnabled:  prefs.tray.Checked,
		Autostart:    prefs.autostart.Checked,
	}.Normalize()

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func volumeText(value float64) string {
	return fmt.Sprintf("%3.0f%%", value*100)
}
