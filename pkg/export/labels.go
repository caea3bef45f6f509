package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

// Labels maps stored category names to the display labels used in the
// text export and in CLI output.
type Labels struct {
	Categories map[string]string `yaml:"categories"`
}

// DefaultLabels returns the built-in labels, which render categories
// exactly as stored.
func DefaultLabels() Labels {
	return Labels{Categories: map[string]string{
		string(ledger.CategoryWaste):  "waste",
		string(ledger.CategoryIncome): "income",
	}}
}

// LoadLabels reads a YAML labels file. An empty path or a missing file
// yields the defaults; categories absent from the file keep their
// default label.
func LoadLabels(path string) (Labels, error) {
	labels := DefaultLabels()
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return labels, nil
	}
	if err != nil {
		return Labels{}, fmt.Errorf("failed to read labels file: %w", err)
	}

	var parsed Labels
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Labels{}, fmt.Errorf("failed to parse labels file: %w", err)
	}
	for category, label := range parsed.Categories {
		labels.Categories[category] = label
	}
	return labels, nil
}

// CategoryLabel returns the display label for a category, falling back
// to the stored name for categories without a label.
func (l Labels) CategoryLabel(c ledger.Category) string {
	if label, ok := l.Categories[string(c)]; ok && label != "" {
		return label
	}
	return string(c)
}
