package platform

import (
	"errors"
	"fmt"
	"os"
)

var errEmptyAppName = errors.New("app name is empty")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	ConfigDir() (string, error)
	SetAutostart(appName, execPath string, enabled bool) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// ConfigDir returns the OS-standard configuration directory.
func (service *platformService) ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SetAutostart registers or removes the login item for appName.
func (service *platformService) SetAutostart(appName, execPath string, enabled bool) error {
	if appName == "" {
		return fmt.Errorf("set autostart: %w", errEmptyAppName)
	}
	if !enabled {
		if err := service.disableAutostart(appName); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		return nil
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	if err := service.enableAutostart(appName, execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether a login item for appName exists.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	if appName == "" {
		return false, fmt.Errorf("autostart status: %w", errEmptyAppName)
	}
	return service.autostartEnabled(appName)
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
