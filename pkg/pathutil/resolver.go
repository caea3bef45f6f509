// Package pathutil provides centralized path management for the note
// manager's data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver resolves the locations of the JSON store, the text
// export and the history database.
type PathResolver struct {
	root          string
	dbPath        string
	exportPath    string
	historyDBPath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// Root is the data directory (e.g. ~/notes). Defaults to ".".
	Root string
	// DBPath is the JSON store file for the ledger document.
	DBPath string
	// ExportPath is the human-readable text mirror file.
	ExportPath string
	// HistoryDBPath is the SQLite database file for operation history.
	HistoryDBPath string
}

// New creates a new PathResolver with the given configuration.
// If DBPath is empty, it defaults to {Root}/db.json.
// If ExportPath is empty, it defaults to {Root}/db.txt.
// If HistoryDBPath is empty, it defaults to {Root}/.history/history.db.
func New(config Config) *PathResolver {
	root := config.Root
	if root == "" {
		root = "."
	}

	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(root, "db.json")
	}

	exportPath := config.ExportPath
	if exportPath == "" {
		exportPath = filepath.Join(root, "db.txt")
	}

	historyDBPath := config.HistoryDBPath
	if historyDBPath == "" {
		historyDBPath = filepath.Join(root, ".history", "history.db")
	}

	return &PathResolver{
		root:          root,
		dbPath:        dbPath,
		exportPath:    exportPath,
		historyDBPath: historyDBPath,
	}
}

// GetRoot returns the data directory.
func (p *PathResolver) GetRoot() string {
	return p.root
}

// GetDBPath returns the JSON store file path.
func (p *PathResolver) GetDBPath() string {
	return p.dbPath
}

// GetExportPath returns the text export file path.
func (p *PathResolver) GetExportPath() string {
	return p.exportPath
}

// GetHistoryDBPath returns the history database file path.
func (p *PathResolver) GetHistoryDBPath() string {
	return p.historyDBPath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
