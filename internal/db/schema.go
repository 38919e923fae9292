package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// The ledger keeps its whole state in a single key-value table. Marts and
// inventory are stored as JSON documents under fixed keys so the on-disk
// layout matches the device-local storage the app was designed around.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
