package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Platform identifiers.
const (
	platformLinux  = "linux"
	platformDarwin = "darwin"
)

// Application directory name used across all platforms.
const appName = "ghost-backup"

// Config file name.
const configFileName = "config.toml"

// DefaultDir returns the platform-specific directory for the config file.
// On Linux, respects XDG_CONFIG_HOME (defaults to ~/.config/ghost-backup).
// On macOS, uses ~/Library/Application Support/ghost-backup per Apple
// guidelines. Other platforms fall back to ~/.config/ghost-backup.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case platformLinux:
		return linuxConfigDir(home)
	case platformDarwin:
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		return filepath.Join(home, ".config", appName)
	}
}

// linuxConfigDir returns the XDG-compliant config directory for Linux.
func linuxConfigDir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	return filepath.Join(home, ".config", appName)
}

// DefaultPath returns the full path of the config file at its default
// location. The --config flag overrides this.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), configFileName)
}
