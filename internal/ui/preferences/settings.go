package preferences

// Settings defines editable user preferences.
type Settings struct {
	SoundEnabled bool
	Volume       float64
	TrayEnabled  bool
	Autostart    bool
}

// DefaultSettings returns default settings for Pomodoro.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		Volume:       0.8,
		TrayEnabled:  true,
		Autostart:    false,
	}
}

// Normalize clamps values into their valid ranges.
func (settings Settings) Normalize() Settings {
	if settings.Volume < 0 {
		settings.Volume = 0
	}
	if settings.Volume > 1 {
		settings.Volume = 1
	}
	return settings
}
