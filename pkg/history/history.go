package history

import (
	"database/sql"
	"fmt"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

// OpRecord represents one recorded ledger operation.
type OpRecord struct {
	ID          int64
	OpType      string
	RecordDate  sql.NullString
	Category    sql.NullString
	Amount      sql.NullString
	Description sql.NullString
	AppliedAt   string
}

// History manages the operation history. It implements ledger.Recorder.
type History struct {
	conn *Connection
}

// New creates a new History instance.
func New(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordOperation records one successful mutation. The record is nil
// for clear. The last operation type is mirrored into the metadata
// table.
func (h *History) RecordOperation(op ledger.Operation, rec *ledger.Record) error {
	query := `
		INSERT INTO op_history (op_type, record_date, category, amount, description)
		VALUES (?, ?, ?, ?, ?)
	`

	var date, category, amount, description sql.NullString
	if rec != nil {
		date = sql.NullString{String: rec.Date, Valid: true}
		category = sql.NullString{String: string(rec.Category), Valid: true}
		amount = sql.NullString{String: rec.Amount().String(), Valid: true}
		description = sql.NullString{String: rec.Description, Valid: true}
	}

	if _, err := h.conn.Exec(query, string(op), date, category, amount, description); err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	if err := h.SetMetadata("last_operation", string(op)); err != nil {
		return fmt.Errorf("failed to update history metadata: %w", err)
	}
	return nil
}

// GetOperations retrieves recorded operations of one type, most recent
// first.
func (h *History) GetOperations(opType string) ([]OpRecord, error) {
	query := `
		SELECT id, op_type, record_date, category, amount, description, applied_at
		FROM op_history
		WHERE op_type = ?
		ORDER BY applied_at DESC, id DESC
	`

	rows, err := h.conn.Query(query, opType)
	if err != nil {
		return nil, fmt.Errorf("failed to get operations: %w", err)
	}
	defer rows.Close()

	var records []OpRecord
	for rows.Next() {
		var rec OpRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.OpType,
			&rec.RecordDate,
			&rec.Category,
			&rec.Amount,
			&rec.Description,
			&rec.AppliedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Stats represents operation statistics.
type Stats struct {
	TotalCreates int
	TotalUpdates int
	TotalDeletes int
	TotalClears  int
	LastChange   sql.NullString
}

// GetStats retrieves operation statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	counts := []struct {
		opType string
		dest   *int
	}{
		{"create", &stats.TotalCreates},
		{"update", &stats.TotalUpdates},
		{"delete", &stats.TotalDeletes},
		{"clear", &stats.TotalClears},
	}
	for _, c := range counts {
		err := h.conn.QueryRow(`SELECT COUNT(*) FROM op_history WHERE op_type = ?`, c.opType).Scan(c.dest)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s count: %w", c.opType, err)
		}
	}

	err := h.conn.QueryRow(`SELECT MAX(applied_at) FROM op_history`).Scan(&stats.LastChange)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last change time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value. A missing key yields the
// empty string.
func (h *History) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM history_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO history_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
