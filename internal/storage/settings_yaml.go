package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SoundEnabled *bool    `yaml:"sound_enabled"`
	Volume       *float64 `yaml:"volume"`
	TrayEnabled  *bool    `yaml:"tray_enabled"`
	Autostart    *bool    `yaml:"autostart"`
}

// DefaultPath returns <configDir>/<appName>/settings.yaml.
func DefaultPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	fileData := yamlSettings{
		SoundEnabled: &settings.SoundEnabled,
		Volume:       &settings.Volume,
		TrayEnabled:  &settings.TrayEnabled,
		Autostart:    &settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	// Rename into place so watchers never read a partial file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}
	if fileData.TrayEnabled != nil {
		settings.TrayEnabled = *fileData.TrayEnabled
	}
	if fileData.Autostart != nil {
		settings.Autostart = *fileData.Autostart
	}
}
