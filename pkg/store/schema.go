package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id   TEXT PRIMARY KEY,
			data BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS presets (
			id          TEXT PRIMARY KEY,
			entry_id    TEXT NOT NULL,
			kind        TEXT NOT NULL,
			assembly_id TEXT NOT NULL,
			applied_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_presets_entry ON presets (entry_id, applied_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if n == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
	}
	return nil
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
