// Package history provides SQLite-backed recording of ledger
// mutations, plus the statistics the stats command reports.
package history

// Schema defines the SQL statements to create the history tables.
const Schema = `
-- Operation history table
-- One row per successful mutating ledger operation
CREATE TABLE IF NOT EXISTS op_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    op_type TEXT NOT NULL,             -- 'create', 'update', 'delete' or 'clear'
    record_date TEXT,                  -- YYYY-MM-DD, NULL for clear
    category TEXT,                     -- 'waste' or 'income'
    amount TEXT,                       -- signed decimal amount as text
    description TEXT,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_op_history_type
    ON op_history(op_type);

CREATE INDEX IF NOT EXISTS idx_op_history_date
    ON op_history(record_date);

-- History metadata table
-- Stores key-value metadata about the recorded operations
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
