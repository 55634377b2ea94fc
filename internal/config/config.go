package config

import (
	"os"
	"path/filepath"
)

const (
	AppName      = "stash"
	SettingsName = "config.json"
)

// DataDir returns the path to the stash data directory (~/.stash/)
// Creates the directory if it doesn't exist
// Can be overridden with STASH_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("STASH_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// NotesDir returns the path to the notes directory (~/.stash/notes/)
// Creates the directory if it doesn't exist
func NotesDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	notesDir := filepath.Join(dataDir, "notes")
	if err := os.MkdirAll(notesDir, 0755); err != nil {
		return "", err
	}

	return notesDir, nil
}

// LogDir returns the path to the log directory (~/.stash/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}

// SettingsPath returns the path to the settings file (~/.stash/config.json)
func SettingsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, SettingsName), nil
}
