package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultDatabasePath returns the SQLite file location under the XDG state
// directory, where runtime state belongs.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, "timetraveler", "state.db")
}

// DefaultLogDir returns the directory for log files.
func DefaultLogDir() string {
	return filepath.Join(xdg.StateHome, "timetraveler", "logs")
}

// UserConfigPath returns the user configuration file location.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "timetraveler", "config.json")
}
