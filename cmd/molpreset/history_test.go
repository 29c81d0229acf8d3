package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcsb/molpreset/pkg/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molpreset.db")

	// Seed the store with one applied preset
	s, err := store.New(store.Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.AddPreset(&store.PresetRecord{
		ID:         "rec-1",
		EntryID:    "1ABC",
		Kind:       "standard",
		AssemblyID: "1",
		AppliedAt:  time.Now().UTC(),
	}))
	require.NoError(t, s.Close())

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	historyDB = path
	historyFormat = "table"

	err = runHistory(cmd, []string{"1ABC"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "standard")
}

func TestRunHistory_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molpreset.db")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	historyDB = path
	historyFormat = "table"

	err := runHistory(cmd, []string{"1ABC"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No presets recorded")
}

func TestRunHistory_MemoryStoreRejected(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	historyDB = ":memory:"

	err := runHistory(cmd, []string{"1ABC"})
	assert.Error(t, err)
}
