package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and if needed initializes) a sqlite-backed store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) PutEntry(entryID string, data []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO entries (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		entryID, data)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEntry(entryID string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM entries WHERE id = ?", entryID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying entry: %w", err)
	}
	return data, true, nil
}

func (s *SQLiteStore) AddPreset(rec *PresetRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO presets (id, entry_id, kind, assembly_id, applied_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.EntryID, rec.Kind, rec.AssemblyID, rec.AppliedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting preset record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Presets(entryID string) ([]*PresetRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, entry_id, kind, assembly_id, applied_at FROM presets WHERE entry_id = ? ORDER BY applied_at, id",
		entryID)
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer rows.Close()

	var out []*PresetRecord
	for rows.Next() {
		var rec PresetRecord
		var appliedAt int64
		if err := rows.Scan(&rec.ID, &rec.EntryID, &rec.Kind, &rec.AssemblyID, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning preset record: %w", err)
		}
		rec.AppliedAt = millisToTime(appliedAt)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
