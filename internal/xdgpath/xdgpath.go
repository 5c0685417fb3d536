package xdgpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "qwerty-launcher"

// ConfigDir returns the directory holding qwerty's settings. Priority:
// 1) $XDG_CONFIG_HOME/qwerty-launcher (if XDG_CONFIG_HOME is set)
// 2) ~/.config/qwerty-launcher
func ConfigDir() (string, error) {
	return baseDir("XDG_CONFIG_HOME", ".config")
}

// ConfigPath returns the default settings file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "qwerty.yaml"), nil
}

// ThemePath returns the default theme file path.
func ThemePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme.json"), nil
}

// StateDir returns the directory for logs. Priority:
// 1) $XDG_STATE_HOME/qwerty-launcher
// 2) ~/.local/state/qwerty-launcher
func StateDir() (string, error) {
	return baseDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// DataDirs returns the XDG data directories in lookup order: $XDG_DATA_HOME
// (or ~/.local/share) followed by $XDG_DATA_DIRS (or /usr/local/share:/usr/share).
func DataDirs() []string {
	var dirs []string
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".local", "share"))
	}

	system := os.Getenv("XDG_DATA_DIRS")
	if system == "" {
		system = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(system, ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func baseDir(envVar, homeRelative string) (string, error) {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, homeRelative, AppName), nil
}
