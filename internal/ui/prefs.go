package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const prefsFile = "ui_prefs.json"

// TablePrefs stores per-table UI preferences. Filters are never persisted.
type TablePrefs struct {
	HiddenColumns []string `json:"hidden_columns"`
	ActiveColumn  string   `json:"active_column"`
}

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	Recipes TablePrefs `json:"recipes"`
}

func prefsPath(configDir string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, prefsFile)
}

// loadUIPreferences reads path. A missing or unreadable file yields the
// zero preferences.
func loadUIPreferences(path string) (UIPreferences, error) {
	if path == "" {
		return UIPreferences{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UIPreferences{}, nil
		}
		return UIPreferences{}, fmt.Errorf("failed to read prefs: %w", err)
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return UIPreferences{}, fmt.Errorf("failed to parse prefs: %w", err)
	}
	return prefs, nil
}

func saveUIPreferences(path string, prefs UIPreferences) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
