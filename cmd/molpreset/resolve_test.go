package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rcsb/molpreset/pkg/preset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEntryCIF = `data_1ABC
_entry.id 1ABC
loop_
_pdbx_struct_assembly_gen.assembly_id
_pdbx_struct_assembly_gen.oper_expression
_pdbx_struct_assembly_gen.asym_id_list
1 '(1)' A,B
2 '(1-2)' C
`

// testEntryServer serves the fixture entry for any requested id.
func testEntryServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testEntryCIF))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func resetResolveFlags() {
	resolveKind = "standard"
	resolveParams = ""
	resolveTargets = ""
	resolveAssembly = ""
	resolveModel = 0
	resolveFormat = "json"
	resolveDB = ""
	resolveBaseURL = ""
}

func TestRunResolve_Standard(t *testing.T) {
	srv := testEntryServer(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveBaseURL = srv.URL

	err := runResolve(cmd, []string{"1ABC"})
	require.NoError(t, err)

	var plan preset.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plan))
	assert.Equal(t, preset.KindStandard, plan.Kind)
	assert.Equal(t, "1ABC", plan.EntryID)
	assert.Equal(t, "1", plan.AssemblyID)
	require.Len(t, plan.Expressions, 1)
	assert.Empty(t, plan.Expressions[0].Targets)
}

func TestRunResolve_MotifInfersAssembly(t *testing.T) {
	srv := testEntryServer(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveBaseURL = srv.URL
	resolveKind = "motif"
	// Chain C only generates in assembly 2
	resolveTargets = writeTargetsFile(t, `
- label_asym_id: C
  label_seq_id: 42
  struct_oper_id: "2"
`)

	err := runResolve(cmd, []string{"1ABC"})
	require.NoError(t, err)

	var plan preset.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plan))
	assert.Equal(t, preset.KindMotif, plan.Kind)
	assert.Equal(t, "2", plan.AssemblyID)
}

func TestRunResolve_InlineParams(t *testing.T) {
	srv := testEntryServer(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveBaseURL = srv.URL
	resolveParams = `{"kind":"feature","target":{"label_asym_id":"A","label_seq_range":{"beg_seq_id":10,"end_seq_id":12}}}`

	err := runResolve(cmd, []string{"1ABC"})
	require.NoError(t, err)

	var plan preset.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plan))
	assert.Equal(t, preset.KindFeature, plan.Kind)
}

func TestRunResolve_HumanFormat(t *testing.T) {
	srv := testEntryServer(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveBaseURL = srv.URL
	resolveFormat = "human"

	err := runResolve(cmd, []string{"1ABC"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Entry:")
	assert.Contains(t, output, "1ABC")
	assert.Contains(t, output, "standard")
	assert.Contains(t, output, "Assembly:")
}

func TestRunResolve_FeatureRequiresTargets(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveKind = "feature"

	err := runResolve(cmd, []string{"1ABC"})
	assert.Error(t, err)
}

func TestRunResolve_UnknownKind(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetResolveFlags()
	resolveKind = "bogus"

	err := runResolve(cmd, []string{"1ABC"})
	assert.Error(t, err)
}
