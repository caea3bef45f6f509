// Package store owns the on-disk representation of the ledger: a
// single JSON document holding the ordered record list.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

// ErrCorrupt reports that the backing file exists but does not hold a
// valid serialized document. The condition is fatal for the current
// operation and never auto-recovered.
var ErrCorrupt = errors.New("corrupt store file")

// FileStore persists the document as one JSON file. Saves rewrite the
// file in full through a temp-file-and-rename, so a crash mid-write
// never leaves a half-written store behind. Multi-process access is
// unsupported: there is no locking and the last save wins.
type FileStore struct {
	path string

	// OnCreate, when set, is called after Load transparently creates a
	// missing backing file. The CLI uses it for the creation notice.
	OnCreate func()
}

// New returns a FileStore backed by the given file path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole document. A missing backing file is not an
// error: the store writes the empty template, fires OnCreate and
// returns the empty document. An unparseable file reports ErrCorrupt.
func (s *FileStore) Load() (*ledger.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := ledger.NewDocument()
		if err := s.Save(doc); err != nil {
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
		if s.OnCreate != nil {
			s.OnCreate()
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	doc := &ledger.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if doc.Notes == nil {
		return nil, fmt.Errorf("%w: %s: missing notes list", ErrCorrupt, s.path)
	}
	return doc, nil
}

// Save serializes the entire document and replaces the backing file in
// full. The document is written to a temp file in the same directory
// and renamed over the target, so concurrent readers either see the
// old content or the new one, never a truncated file.
func (s *FileStore) Save(doc *ledger.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// Exists reports whether a backing file is currently present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Delete removes the backing file. A missing file is a no-op, not an
// error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete store file: %w", err)
	}
	return nil
}
