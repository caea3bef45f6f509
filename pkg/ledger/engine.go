package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Store is the persistence boundary the engine drives. A missing
// backing file is never an error: Load transparently initializes the
// empty template and reports the creation through a side channel of
// the implementation.
type Store interface {
	Load() (*Document, error)
	Save(*Document) error
}

// Exporter maintains the human-readable text mirror of the store.
// Write rewrites the mirror in full; Delete removes it and reports
// whether a file was actually present.
type Exporter interface {
	Write(records []Record, balance decimal.Decimal) error
	Delete() (bool, error)
}

// Operation identifies a mutating engine operation.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpClear  Operation = "clear"
)

// Recorder receives a notification for every successful mutation.
// A recording failure must not fail the operation; the engine logs it
// and moves on.
type Recorder interface {
	RecordOperation(op Operation, rec *Record) error
}

// Manager implements the ledger operations. Every operation is a
// single transaction over the store: load, validate, compute, mutate,
// save, render. The engine borrows the document from the store for the
// duration of one operation and hands control back via Save before the
// operation completes.
type Manager struct {
	store    Store
	exporter Exporter
	recorder Recorder
}

// NewManager wires a Manager. The exporter and the recorder may be nil,
// in which case the mirror refresh and the history recording are
// skipped.
func NewManager(store Store, exporter Exporter, recorder Recorder) *Manager {
	return &Manager{
		store:    store,
		exporter: exporter,
		recorder: recorder,
	}
}

func today() string {
	return time.Now().Format(DateLayout)
}

// CreateResult describes a successful create.
type CreateResult struct {
	// Record is the created record, stamped with today's date.
	Record Record
	// First reports whether the record is the very first one in the
	// store; it drives the export-notice branch in the CLI.
	First bool
}

// Create appends a new record built from a category code, an unsigned
// amount and an optional multi-word description. Validation happens
// before the store is touched for writing; a failed create never
// mutates the document.
func (m *Manager) Create(categoryCode, amount string, description []string) (*CreateResult, error) {
	if categoryCode == "" || amount == "" {
		return nil, fmt.Errorf("category and amount are required: %w", ErrMissingArguments)
	}
	category, err := ParseCategoryCode(categoryCode)
	if err != nil {
		return nil, err
	}
	magnitude, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	first := doc.Empty()

	record, err := NewRecord(today(), category, magnitude, JoinDescription(description))
	if err != nil {
		return nil, err
	}

	doc.Notes = append(doc.Notes, record)
	if err := m.store.Save(doc); err != nil {
		return nil, err
	}

	m.refreshExport(doc)
	m.record(OpCreate, &record)

	return &CreateResult{Record: record, First: first}, nil
}

// Read returns all records in stored order. An empty document reports
// ErrEmptyStore.
func (m *Manager) Read() ([]Record, error) {
	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("can't show the notes: %w", ErrEmptyStore)
	}
	return doc.Notes, nil
}

// UpdateResult describes a successful update.
type UpdateResult struct {
	Previous Record // the record that was replaced
	Updated  Record // the replacement, stamped with today's date
}

// Update locates exactly one record by the previous field tuple and
// replaces it in place with a new record built from the new fields.
// The replacement is stamped with today's date, not the previous date.
func (m *Manager) Update(prevDate, prevCategory, prevAmount string, prevDescription []string, newCategory, newAmount string, newDescription []string) (*UpdateResult, error) {
	if prevDate == "" || prevCategory == "" || prevAmount == "" || newCategory == "" || newAmount == "" {
		return nil, fmt.Errorf("previous date, category and amount plus new category and amount are required: %w", ErrMissingArguments)
	}

	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("can't update the note: %w", ErrEmptyStore)
	}

	if err := ValidateDate(prevDate); err != nil {
		return nil, err
	}
	prevCat, err := ParseCategoryCode(prevCategory)
	if err != nil {
		return nil, err
	}
	prevMagnitude, err := ParseAmount(prevAmount)
	if err != nil {
		return nil, err
	}
	newCat, err := ParseCategoryCode(newCategory)
	if err != nil {
		return nil, err
	}
	newMagnitude, err := ParseAmount(newAmount)
	if err != nil {
		return nil, err
	}

	prev, err := NewRecord(prevDate, prevCat, prevMagnitude, JoinDescription(prevDescription))
	if err != nil {
		return nil, err
	}

	matched, pos, err := match(doc, matchTarget{
		Date:        prev.Date,
		Category:    prev.Category,
		Amount:      prev.Amount(),
		Description: prev.Description,
	}, "update")
	if err != nil {
		return nil, err
	}

	updated, err := NewRecord(today(), newCat, newMagnitude, JoinDescription(newDescription))
	if err != nil {
		return nil, err
	}

	doc.Notes[pos] = updated
	if err := m.store.Save(doc); err != nil {
		return nil, err
	}

	m.refreshExport(doc)
	m.record(OpUpdate, &updated)

	return &UpdateResult{Previous: matched, Updated: updated}, nil
}

// DeleteResult describes a successful delete.
type DeleteResult struct {
	Deleted Record
	// StoreEmptied reports whether the delete removed the last record.
	StoreEmptied bool
	// ExportRemoved reports whether an export file was present and got
	// deleted along with the last record.
	ExportRemoved bool
}

// Delete locates exactly one record by the field tuple and removes it.
// When the document becomes empty the text export is deleted; otherwise
// it is refreshed.
func (m *Manager) Delete(date, categoryCode, amount string, description []string) (*DeleteResult, error) {
	if date == "" || categoryCode == "" || amount == "" {
		return nil, fmt.Errorf("date, category and amount are required: %w", ErrMissingArguments)
	}

	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("can't delete the note: %w", ErrEmptyStore)
	}

	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	category, err := ParseCategoryCode(categoryCode)
	if err != nil {
		return nil, err
	}
	magnitude, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	target, err := NewRecord(date, category, magnitude, JoinDescription(description))
	if err != nil {
		return nil, err
	}

	matched, pos, err := match(doc, matchTarget{
		Date:        target.Date,
		Category:    target.Category,
		Amount:      target.Amount(),
		Description: target.Description,
	}, "delete")
	if err != nil {
		return nil, err
	}

	doc.Notes = append(doc.Notes[:pos], doc.Notes[pos+1:]...)
	if err := m.store.Save(doc); err != nil {
		return nil, err
	}

	result := &DeleteResult{Deleted: matched, StoreEmptied: doc.Empty()}
	if result.StoreEmptied {
		result.ExportRemoved = m.deleteExport()
	} else {
		m.refreshExport(doc)
	}
	m.record(OpDelete, &matched)

	return result, nil
}

// Find filters records by any combination of date, category code and
// amount. Filters combine conjunctively and narrow progressively. The
// amount filter compares absolute values, so a search for X matches a
// waste record stored as -X as well as an income record stored as +X.
func (m *Manager) Find(date, categoryCode, amount string) ([]Record, error) {
	if date == "" && categoryCode == "" && amount == "" {
		return nil, fmt.Errorf("at least one filter is required: %w", ErrMissingArguments)
	}

	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("can't find the notes: %w", ErrEmptyStore)
	}

	matches := doc.Notes
	if date != "" {
		if err := ValidateDate(date); err != nil {
			return nil, err
		}
		matches = filter(matches, func(r Record) bool {
			return r.Date == date
		})
	}
	if categoryCode != "" {
		category, err := ParseCategoryCode(categoryCode)
		if err != nil {
			return nil, err
		}
		matches = filter(matches, func(r Record) bool {
			return r.Category == category
		})
	}
	if amount != "" {
		target, err := ParseAmount(amount)
		if err != nil {
			return nil, err
		}
		matches = filter(matches, func(r Record) bool {
			return r.Magnitude.Equal(target)
		})
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no matches in your search: %w", ErrNoMatches)
	}
	return matches, nil
}

// Balance recomputes the document balance: the sum of all signed
// amounts rounded to two decimals, zero for an empty document.
func (m *Manager) Balance() (decimal.Decimal, error) {
	doc, err := m.store.Load()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return BalanceOf(doc), nil
}

// ClearResult describes a successful clear.
type ClearResult struct {
	// ExportRemoved reports whether an export file was present and got
	// deleted.
	ExportRemoved bool
}

// Clear replaces the document with the empty template and deletes the
// text export. Calling it on an already empty store is a no-op that
// still succeeds.
func (m *Manager) Clear() (*ClearResult, error) {
	if err := m.store.Save(NewDocument()); err != nil {
		return nil, err
	}
	removed := m.deleteExport()
	m.record(OpClear, nil)
	return &ClearResult{ExportRemoved: removed}, nil
}

func filter(records []Record, keep func(Record) bool) []Record {
	var out []Record
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (m *Manager) refreshExport(doc *Document) {
	if m.exporter == nil {
		return
	}
	if err := m.exporter.Write(doc.Notes, BalanceOf(doc)); err != nil {
		slog.Error("Failed to refresh text export", "error", err)
	}
}

func (m *Manager) deleteExport() bool {
	if m.exporter == nil {
		return false
	}
	removed, err := m.exporter.Delete()
	if err != nil {
		slog.Error("Failed to delete text export", "error", err)
		return false
	}
	return removed
}

func (m *Manager) record(op Operation, rec *Record) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordOperation(op, rec); err != nil {
		slog.Error("Failed to record operation history", "op", string(op), "error", err)
	}
}
