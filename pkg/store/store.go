// Package store persists fetched entry data and applied-preset
// history. The interface abstracts the backend; sqlite for on-disk
// caches, memory for tests and ephemeral sessions.
package store

import (
	"fmt"
	"time"
)

// PresetRecord is one applied preset, kept for session history and
// the CLI report.
type PresetRecord struct {
	ID         string // request id (uuid)
	EntryID    string
	Kind       string
	AssemblyID string
	AppliedAt  time.Time
}

// Store persists entry files and preset history.
type Store interface {
	// PutEntry caches raw mmCIF bytes for an entry. Re-putting the
	// same entry overwrites.
	PutEntry(entryID string, data []byte) error

	// GetEntry returns cached bytes; ok is false on a miss.
	GetEntry(entryID string) (data []byte, ok bool, err error)

	// AddPreset records one applied preset.
	AddPreset(rec *PresetRecord) error

	// Presets returns the history for an entry, oldest first.
	Presets(entryID string) ([]*PresetRecord, error)

	// Close releases the backend.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. ":memory:" selects the
	// in-memory backend.
	Path string
}

// New creates a Store. ":memory:" paths get the map-backed store,
// anything else sqlite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
