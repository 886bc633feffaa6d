//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) enableAutostart(appName, execPath string) error {
	desktopFilePath, err := service.desktopFilePath(appName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(desktopFilePath), 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(desktopFilePath, []byte(buildDesktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) disableAutostart(appName string) error {
	desktopFilePath, err := service.desktopFilePath(appName)
	if err != nil {
		return err
	}
	if err := os.Remove(desktopFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) autostartEnabled(appName string) (bool, error) {
	desktopFilePath, err := service.desktopFilePath(appName)
	if err != nil {
		return false, err
	}
	return fileExists(desktopFilePath)
}

func (service *platformService) desktopFilePath(appName string) (string, error) {
	configDir, err := service.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", desktopFileName(appName)), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "pomodoro"
	}
	return strings.ReplaceAll(name, " ", "-") + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Pomodoro focus timer
Exec=%s
Categories=Utility;
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine,
	)
}
