// Package config provides configuration management for the note
// manager. It loads configuration from environment variables and .env
// files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Notes NotesConfig
	Debug bool
}

// NotesConfig holds the data file locations.
type NotesConfig struct {
	// Root is the data directory all default paths resolve under.
	Root string
	// DBPath is the JSON store file. Defaults to {root}/db.json.
	DBPath string
	// ExportPath is the text mirror file. Defaults to {root}/db.txt.
	ExportPath string
	// HistoryDBPath is the SQLite operation history database.
	// Defaults to {root}/.history/history.db.
	HistoryDBPath string
	// LabelsPath is an optional YAML file with category display labels.
	LabelsPath string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if
// available. You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Notes: NotesConfig{
			Root:          getEnvOrDefault("NOTES_ROOT", "."),
			DBPath:        os.Getenv("NOTES_DB_PATH"),
			ExportPath:    os.Getenv("NOTES_EXPORT_PATH"),
			HistoryDBPath: os.Getenv("NOTES_HISTORY_DB_PATH"),
			LabelsPath:    os.Getenv("NOTES_LABELS_PATH"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// getEnvOrDefault returns the value of the environment variable or a
// default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
