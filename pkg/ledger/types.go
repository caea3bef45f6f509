// Package ledger implements the note ledger: record shape, validation,
// the CRUD/query operations, balance computation, and the match
// procedure used by update and delete.
package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format for record dates (ISO-8601).
const DateLayout = "2006-01-02"

// Category represents the transaction category of a record.
type Category string

const (
	// CategoryWaste marks an outflow; its amount is stored negative.
	CategoryWaste Category = "waste"
	// CategoryIncome marks an inflow; its amount is stored non-negative.
	CategoryIncome Category = "income"
)

// ParseCategoryCode converts a CLI category code to a Category.
// Code "1" maps to waste, "2" to income. Anything else counts as a
// missing required argument.
func ParseCategoryCode(code string) (Category, error) {
	switch code {
	case "1":
		return CategoryWaste, nil
	case "2":
		return CategoryIncome, nil
	default:
		return "", fmt.Errorf("category code must be 1 or 2, got %q: %w", code, ErrMissingArguments)
	}
}

// Record is one ledger entry. The amount is kept as an unsigned
// magnitude; the sign is derived from the category, so the two can
// never drift apart. Records are immutable once created: an update
// always builds a brand-new record and replaces the old one at its
// position.
type Record struct {
	Date        string
	Category    Category
	Magnitude   decimal.Decimal
	Description string
}

// NewRecord builds a record from a date, a category, an unsigned
// magnitude and a description. Negative magnitudes are rejected.
func NewRecord(date string, category Category, magnitude decimal.Decimal, description string) (Record, error) {
	if magnitude.IsNegative() {
		return Record{}, fmt.Errorf("amount must not be negative: %w", ErrInvalidAmount)
	}
	return Record{
		Date:        date,
		Category:    category,
		Magnitude:   magnitude,
		Description: description,
	}, nil
}

// Amount returns the signed amount: negative for waste, non-negative
// for income.
func (r Record) Amount() decimal.Decimal {
	if r.Category == CategoryWaste {
		return r.Magnitude.Neg()
	}
	return r.Magnitude
}

// MarshalJSON serializes the record in the store wire shape: an ordered
// array of four single-key objects. The amount is emitted as a plain
// JSON number carrying the digits the record was created with.
func (r Record) MarshalJSON() ([]byte, error) {
	fields := []any{
		map[string]string{"date": r.Date},
		map[string]Category{"category": r.Category},
		map[string]json.RawMessage{"amount": json.RawMessage(r.Amount().String())},
		map[string]string{"description": r.Description},
	}
	return json.Marshal(fields)
}

// UnmarshalJSON parses the wire shape back into a record. The four
// single-key objects must appear in their fixed order. A signed amount
// is split into the category-derived sign and the stored magnitude.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields []map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 4 {
		return fmt.Errorf("record must hold exactly 4 fields, got %d", len(fields))
	}

	field := func(index int, key string) (json.RawMessage, error) {
		value, ok := fields[index][key]
		if !ok || len(fields[index]) != 1 {
			return nil, fmt.Errorf("record field %d must hold exactly the %q key", index, key)
		}
		return value, nil
	}

	rawDate, err := field(0, "date")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rawDate, &r.Date); err != nil {
		return fmt.Errorf("invalid record date: %w", err)
	}

	rawCategory, err := field(1, "category")
	if err != nil {
		return err
	}
	var category Category
	if err := json.Unmarshal(rawCategory, &category); err != nil {
		return fmt.Errorf("invalid record category: %w", err)
	}
	if category != CategoryWaste && category != CategoryIncome {
		return fmt.Errorf("unknown record category %q", category)
	}
	r.Category = category

	rawAmount, err := field(2, "amount")
	if err != nil {
		return err
	}
	var amount decimal.Decimal
	if err := json.Unmarshal(rawAmount, &amount); err != nil {
		return fmt.Errorf("invalid record amount: %w", err)
	}
	r.Magnitude = amount.Abs()

	rawDescription, err := field(3, "description")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rawDescription, &r.Description); err != nil {
		return fmt.Errorf("invalid record description: %w", err)
	}

	return nil
}

// Document is the root object of the persisted store: the ordered
// record sequence. Insertion order is meaningful, both for display
// and for first-match resolution during update and delete.
type Document struct {
	Notes []Record `json:"notes"`
}

// NewDocument returns the empty document template.
func NewDocument() *Document {
	return &Document{Notes: []Record{}}
}

// Empty reports whether the document holds no records.
func (d *Document) Empty() bool {
	return len(d.Notes) == 0
}

// BalanceOf returns the sum of all signed amounts rounded to two
// decimal places. An empty document has a zero balance.
func BalanceOf(doc *Document) decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range doc.Notes {
		sum = sum.Add(rec.Amount())
	}
	return sum.Round(2)
}

// ValidateDate checks that a value parses as a calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, ErrInvalidDate)
	}
	return nil
}

// ParseAmount parses a CLI amount argument. The empty string means the
// argument was not supplied; non-numeric and negative values are
// rejected.
func ParseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("amount is required: %w", ErrMissingArguments)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not a number: %w", value, ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount must not be negative: %w", ErrInvalidAmount)
	}
	return amount, nil
}

// JoinDescription joins the words of a multi-word CLI description
// argument with single spaces.
func JoinDescription(words []string) string {
	return strings.Join(words, " ")
}
