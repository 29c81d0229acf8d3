package store

import "sync"

// MemoryStore implements Store with plain maps. Used by tests and by
// sessions that do not want an on-disk cache.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	presets map[string][]*PresetRecord // keyed by entry id, append order
}

// NewMemory creates an in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
		presets: make(map[string][]*PresetRecord),
	}
}

func (m *MemoryStore) PutEntry(entryID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.entries[entryID] = cp
	return nil
}

func (m *MemoryStore) GetEntry(entryID string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[entryID]
	return data, ok, nil
}

func (m *MemoryStore) AddPreset(rec *PresetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.presets[rec.EntryID] = append(m.presets[rec.EntryID], &cp)
	return nil
}

func (m *MemoryStore) Presets(entryID string) ([]*PresetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*PresetRecord(nil), m.presets[entryID]...), nil
}

func (m *MemoryStore) Close() error {
	return nil
}
