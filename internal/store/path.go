package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "goaltracker"

// ResolveDataDir returns the directory holding the goal document.
// Order: GOALS_DATA_DIR env override, then the OS-specific default.
func ResolveDataDir() (string, error) {
	if custom := os.Getenv("GOALS_DATA_DIR"); custom != "" {
		return custom, nil
	}

	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, appDirName), nil
		}
		return "", errors.New("APPDATA not set")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, "Library", "Application Support", appDirName), nil
		}
		return "", errors.New("home directory not found")
	default:
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, ".local", "share", appDirName), nil
		}
		return "", errors.New("home directory not found")
	}
}
