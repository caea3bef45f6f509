package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
	doc   *Document
	saves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{doc: NewDocument()}
}

func (s *fakeStore) Load() (*Document, error) {
	return s.doc, nil
}

func (s *fakeStore) Save(doc *Document) error {
	s.doc = doc
	s.saves++
	return nil
}

// fakeExporter records mirror writes and tracks file presence.
type fakeExporter struct {
	writes  int
	last    []Record
	lastBal decimal.Decimal
	present bool
}

func (e *fakeExporter) Write(records []Record, balance decimal.Decimal) error {
	e.writes++
	e.last = records
	e.lastBal = balance
	e.present = true
	return nil
}

func (e *fakeExporter) Delete() (bool, error) {
	was := e.present
	e.present = false
	return was, nil
}

// fakeRecorder collects history notifications.
type fakeRecorder struct {
	ops []Operation
}

func (r *fakeRecorder) RecordOperation(op Operation, rec *Record) error {
	r.ops = append(r.ops, op)
	return nil
}

func newTestManager() (*Manager, *fakeStore, *fakeExporter, *fakeRecorder) {
	st := newFakeStore()
	ex := &fakeExporter{}
	rec := &fakeRecorder{}
	return NewManager(st, ex, rec), st, ex, rec
}

func TestCreateDerivesSignFromCategory(t *testing.T) {
	m, st, ex, rec := newTestManager()

	result, err := m.Create("2", "100", []string{"salary"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := result.Record.Amount().String(); got != "100" {
		t.Errorf("income amount = %s, expected 100", got)
	}
	if result.Record.Date != time.Now().Format(DateLayout) {
		t.Errorf("record date = %q, expected today", result.Record.Date)
	}
	if result.Record.Description != "salary" {
		t.Errorf("description = %q, expected %q", result.Record.Description, "salary")
	}
	if !result.First {
		t.Errorf("First = false, expected true for the first record")
	}

	result, err = m.Create("1", "40", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := result.Record.Amount().String(); got != "-40" {
		t.Errorf("waste amount = %s, expected -40", got)
	}
	if result.First {
		t.Errorf("First = true, expected false for the second record")
	}

	if st.saves != 2 {
		t.Errorf("saves = %d, expected 2", st.saves)
	}
	if ex.writes != 2 {
		t.Errorf("export writes = %d, expected 2", ex.writes)
	}
	if got := ex.lastBal.String(); got != "60" {
		t.Errorf("exported balance = %s, expected 60", got)
	}
	if len(rec.ops) != 2 || rec.ops[0] != OpCreate {
		t.Errorf("recorded ops = %v, expected two creates", rec.ops)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		cat     string
		amt     string
		wantErr error
	}{
		{"missing category", "", "100", ErrMissingArguments},
		{"missing amount", "2", "", ErrMissingArguments},
		{"unknown category", "3", "100", ErrMissingArguments},
		{"negative amount", "2", "-5", ErrInvalidAmount},
		{"non-numeric amount", "2", "ten", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, st, _, _ := newTestManager()
			_, err := m.Create(tt.cat, tt.amt, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, expected %v", err, tt.wantErr)
			}
			if st.saves != 0 {
				t.Errorf("saves = %d, a failed create must not write", st.saves)
			}
		})
	}
}

func TestReadReturnsStoredOrder(t *testing.T) {
	m, _, _, _ := newTestManager()

	if _, err := m.Read(); !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("Read on empty store error = %v, expected ErrEmptyStore", err)
	}

	if _, err := m.Create("2", "100", []string{"salary"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("1", "40", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := m.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, expected 2", len(records))
	}
	if records[0].Category != CategoryIncome || records[1].Category != CategoryWaste {
		t.Errorf("records out of insertion order: %v", records)
	}
}

func TestUpdateReplacesAtPosition(t *testing.T) {
	m, st, ex, rec := newTestManager()
	today := time.Now().Format(DateLayout)

	if _, err := m.Create("2", "100", []string{"salary"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("1", "40", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := m.Update(today, "1", "40", nil, "1", "45", []string{"groceries"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := result.Previous.Amount().String(); got != "-40" {
		t.Errorf("previous amount = %s, expected -40", got)
	}
	if got := result.Updated.Amount().String(); got != "-45" {
		t.Errorf("updated amount = %s, expected -45", got)
	}
	if result.Updated.Date != today {
		t.Errorf("updated date = %q, expected today", result.Updated.Date)
	}

	if len(st.doc.Notes) != 2 {
		t.Fatalf("len(notes) = %d, expected 2", len(st.doc.Notes))
	}
	if got := st.doc.Notes[1].Description; got != "groceries" {
		t.Errorf("replacement not at original position, notes[1].Description = %q", got)
	}
	if got := ex.lastBal.String(); got != "55" {
		t.Errorf("exported balance = %s, expected 55", got)
	}
	if rec.ops[len(rec.ops)-1] != OpUpdate {
		t.Errorf("last recorded op = %v, expected update", rec.ops[len(rec.ops)-1])
	}
}

func TestUpdateNoMatchLeavesDocumentUntouched(t *testing.T) {
	m, st, _, _ := newTestManager()
	today := time.Now().Format(DateLayout)

	if _, err := m.Create("2", "100", []string{"salary"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	savesBefore := st.saves

	_, err := m.Update(today, "1", "100", nil, "2", "50", nil)

	var matchErr *MatchError
	if !errors.As(err, &matchErr) {
		t.Fatalf("Update error = %v, expected a MatchError", err)
	}
	if matchErr.Stage != StageCategory {
		t.Errorf("failing stage = %s, expected category", matchErr.Stage)
	}
	if st.saves != savesBefore {
		t.Errorf("saves changed on a failed update")
	}
	if got := st.doc.Notes[0].Amount().String(); got != "100" {
		t.Errorf("document mutated on a failed update, amount = %s", got)
	}
}

func TestUpdateValidation(t *testing.T) {
	m, _, _, _ := newTestManager()
	if _, err := m.Create("2", "100", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name    string
		date    string
		amt     string
		newAmt  string
		wantErr error
	}{
		{"missing date", "", "100", "50", ErrMissingArguments},
		{"bad date", "not-a-date", "100", "50", ErrInvalidDate},
		{"negative prev amount", "2024-05-02", "-1", "50", ErrInvalidAmount},
		{"negative new amount", "2024-05-02", "100", "-1", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Update(tt.date, "2", tt.amt, nil, "2", tt.newAmt, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteRemovesRecordAndExportWhenEmptied(t *testing.T) {
	m, st, ex, _ := newTestManager()
	today := time.Now().Format(DateLayout)

	if _, err := m.Create("2", "100", []string{"salary"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("1", "40", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := m.Delete(today, "1", "40", nil)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if result.StoreEmptied {
		t.Errorf("StoreEmptied = true with one record left")
	}
	if got := ex.lastBal.String(); got != "100" {
		t.Errorf("exported balance = %s, expected 100", got)
	}

	// The waste record is gone; an identical delete now survives the
	// date stage via the salary record and fails on category.
	_, err = m.Delete(today, "1", "40", nil)
	var matchErr *MatchError
	if !errors.As(err, &matchErr) {
		t.Fatalf("second Delete error = %v, expected a MatchError", err)
	}
	if matchErr.Stage != StageCategory {
		t.Errorf("failing stage = %s, expected category", matchErr.Stage)
	}

	result, err = m.Delete(today, "2", "100", []string{"salary"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !result.StoreEmptied {
		t.Errorf("StoreEmptied = false after deleting the last record")
	}
	if !result.ExportRemoved {
		t.Errorf("ExportRemoved = false, expected the mirror deleted")
	}
	if !st.doc.Empty() {
		t.Errorf("document not empty after deleting all records")
	}

	if _, err := m.Delete(today, "2", "100", nil); !errors.Is(err, ErrEmptyStore) {
		t.Errorf("Delete on empty store error = %v, expected ErrEmptyStore", err)
	}
}

func TestFind(t *testing.T) {
	m, _, _, _ := newTestManager()
	today := time.Now().Format(DateLayout)

	if _, err := m.Find("", "1", ""); !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("Find on empty store error = %v, expected ErrEmptyStore", err)
	}

	if _, err := m.Create("1", "40", []string{"groceries"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("2", "40", []string{"refund"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("2", "100", []string{"salary"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("requires a filter", func(t *testing.T) {
		if _, err := m.Find("", "", ""); !errors.Is(err, ErrMissingArguments) {
			t.Errorf("Find() error = %v, expected ErrMissingArguments", err)
		}
	})

	t.Run("amount matches across sign", func(t *testing.T) {
		records, err := m.Find("", "", "40")
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, expected the waste -40 and the income 40", len(records))
		}
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		records, err := m.Find(today, "2", "40")
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(records) != 1 || records[0].Description != "refund" {
			t.Errorf("records = %v, expected only the refund", records)
		}
	})

	t.Run("no survivors", func(t *testing.T) {
		_, err := m.Find("", "1", "100")
		if !errors.Is(err, ErrNoMatches) {
			t.Errorf("Find error = %v, expected ErrNoMatches", err)
		}
	})

	t.Run("negative amount filter", func(t *testing.T) {
		_, err := m.Find("", "", "-40")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Find error = %v, expected ErrInvalidAmount", err)
		}
	})

	t.Run("invalid date filter", func(t *testing.T) {
		_, err := m.Find("today", "", "")
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Find error = %v, expected ErrInvalidDate", err)
		}
	})
}

func TestBalance(t *testing.T) {
	m, _, _, _ := newTestManager()

	balance, err := m.Balance()
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if got := balance.String(); got != "0" {
		t.Errorf("balance of empty store = %s, expected 0", got)
	}

	if _, err := m.Create("1", "40", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("2", "100", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	balance, err = m.Balance()
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if got := balance.String(); got != "60" {
		t.Errorf("balance = %s, expected 60", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	m, st, ex, rec := newTestManager()

	if _, err := m.Create("2", "100", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := m.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !result.ExportRemoved {
		t.Errorf("ExportRemoved = false on the first clear, expected true")
	}
	if !st.doc.Empty() {
		t.Errorf("document not empty after clear")
	}

	result, err = m.Clear()
	if err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	if result.ExportRemoved {
		t.Errorf("ExportRemoved = true on the second clear, expected false")
	}
	if !st.doc.Empty() {
		t.Errorf("document not empty after the second clear")
	}
	if ex.present {
		t.Errorf("export still present after clear")
	}
	if rec.ops[len(rec.ops)-1] != OpClear {
		t.Errorf("last recorded op = %v, expected clear", rec.ops[len(rec.ops)-1])
	}
}
