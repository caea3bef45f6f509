// Package export maintains the human-readable text mirror of the
// store. The mirror is rewritten in full after every successful
// mutation and deleted once the store holds no records.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

// FileExporter writes the mirror to a single text file.
type FileExporter struct {
	path   string
	labels Labels
}

// NewFileExporter creates a FileExporter writing to the given path,
// rendering categories through the given labels.
func NewFileExporter(path string, labels Labels) *FileExporter {
	return &FileExporter{path: path, labels: labels}
}

// Path returns the export file path.
func (e *FileExporter) Path() string {
	return e.path
}

// Lines renders records as display lines: one "Key: value" line per
// field, with a blank line after every description.
func Lines(records []ledger.Record, labels Labels) []string {
	var lines []string
	for _, rec := range records {
		lines = append(lines,
			fmt.Sprintf("Date: %s", rec.Date),
			fmt.Sprintf("Category: %s", labels.CategoryLabel(rec.Category)),
			fmt.Sprintf("Amount: %s", rec.Amount().String()),
			fmt.Sprintf("Description: %s", rec.Description),
			"",
		)
	}
	return lines
}

// Write rewrites the export file in full: every record followed by a
// dash rule and the current balance to two decimals.
func (e *FileExporter) Write(records []ledger.Record, balance decimal.Decimal) error {
	var b strings.Builder
	for _, line := range Lines(records, e.labels) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("-", 30))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Current balance is: %s\n", balance.StringFixed(2))

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(e.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// Delete removes the export file, reporting whether a file was
// actually present. A missing file is a no-op.
func (e *FileExporter) Delete() (bool, error) {
	err := os.Remove(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete export file: %w", err)
	}
	return true, nil
}
