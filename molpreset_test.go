package molpreset

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsb/molpreset/pkg/fetch"
	"github.com/rcsb/molpreset/pkg/preset"
	"github.com/rcsb/molpreset/pkg/selection"
	"github.com/rcsb/molpreset/pkg/store"
)

const entryCIF = `data_1ABC
_entry.id 1ABC
loop_
_pdbx_struct_assembly_gen.assembly_id
_pdbx_struct_assembly_gen.oper_expression
_pdbx_struct_assembly_gen.asym_id_list
1 '(1)' A,B
2 '(1-2)' A
`

func testResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1ABC.cif" {
			io.WriteString(w, entryCIF)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	opts = append(opts, WithFetcher(fetch.New(fetch.WithBaseURL(srv.URL), fetch.WithRetries(0))))
	return New(opts...)
}

func TestBuildSelections(t *testing.T) {
	r := New()
	exprs := r.BuildSelections("1ABC", []Target{
		{ChainID: "A", SeqRange: &Range{Beg: 10, End: 12}},
	}, selection.Options{Color: ColorNone})

	require.Len(t, exprs, 2)
	assert.Equal(t, "1", exprs[0].Targets[0].Operator, "operator defaulted")
	assert.True(t, exprs[1].Hidden)
}

func TestResolvePreset_InfersAssemblyFromFetchedEntry(t *testing.T) {
	r := testResolver(t)
	plan, err := r.ResolvePreset(context.Background(), "1ABC", preset.Motif{
		Targets: []Target{{ChainID: "A", SeqID: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", plan.AssemblyID)
}

func TestResolvePreset_FetchFailureDegradesToDefault(t *testing.T) {
	r := testResolver(t)
	plan, err := r.ResolvePreset(context.Background(), "9ZZZ", preset.Motif{
		Targets: []Target{{ChainID: "A", SeqID: 10}},
	})
	require.NoError(t, err, "a missing entry must not fail resolution")
	assert.Equal(t, "1", plan.AssemblyID)
}

func TestMotifQuery(t *testing.T) {
	r := New()
	q := r.MotifQuery("1ABC", []Target{
		{ChainID: "A", SeqRange: &Range{Beg: 10, End: 11}},
		{ChainID: "B", SeqID: 5},
	})
	require.NotNil(t, q)
	assert.Len(t, q.ResidueIDs, 3)
}

func TestExport(t *testing.T) {
	r := testResolver(t)
	a, err := r.Export(context.Background(), []string{"1ABC"})
	require.NoError(t, err)
	require.Len(t, a.Files, 1)
	assert.Equal(t, "1ABC.cif", a.Files[0].Name)
	assert.NotContains(t, string(a.Files[0].Data), "pdbx_struct_assembly_gen")

	_, err = r.Export(context.Background(), nil)
	assert.Error(t, err)
}

func TestHistory_NoStore(t *testing.T) {
	r := New()
	recs, err := r.History("1ABC")
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestWithStore_FetcherWritesThrough(t *testing.T) {
	s := store.NewMemory()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, entryCIF)
	}))
	defer srv.Close()

	r := New(
		WithStore(s),
		WithFetcher(fetch.New(fetch.WithBaseURL(srv.URL), fetch.WithStore(s), fetch.WithRetries(0))),
	)
	defer r.Close()

	_, err := r.Export(context.Background(), []string{"1ABC"})
	require.NoError(t, err)

	_, ok, err := s.GetEntry("1ABC")
	require.NoError(t, err)
	assert.True(t, ok)
}
