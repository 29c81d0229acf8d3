// Package molpreset resolves structural targets into viewer selection
// expressions and applies representation presets through host-supplied
// interfaces.
//
// # Resolving a preset
//
// Create a resolver and turn preset parameters into a plan:
//
//	r := molpreset.New()
//	plan, err := r.ResolvePreset(ctx, "4HHB", preset.Motif{
//	    Label:   "active site",
//	    Targets: []molpreset.Target{{ChainID: "A", SeqRange: &molpreset.Range{Beg: 10, End: 12}}},
//	})
//
// The plan carries the inferred assembly id and one selection
// expression per target, ready for the host representation builder.
//
// # Applying against a host
//
// With an implementation of preset.Host (the embedding viewer), the
// same parameters drive the full model/structure/representation
// pipeline:
//
//	res, err := r.ApplyPreset(ctx, host, "4HHB", params)
//
// # Caching
//
// Entry files fetched for assembly inference and export are cached in
// memory; add a store for persistence across runs:
//
//	s, _ := store.New(store.Config{Path: "molpreset.db"})
//	r := molpreset.New(molpreset.WithStore(s))
package molpreset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcsb/molpreset/pkg/assembly"
	"github.com/rcsb/molpreset/pkg/export"
	"github.com/rcsb/molpreset/pkg/fetch"
	"github.com/rcsb/molpreset/pkg/motif"
	"github.com/rcsb/molpreset/pkg/preset"
	"github.com/rcsb/molpreset/pkg/selection"
	"github.com/rcsb/molpreset/pkg/store"
	"github.com/rcsb/molpreset/pkg/types"
)

// Re-export the value types callers compose requests from, so the
// root import is enough for simple use.
type (
	// Target addresses a structural location.
	Target = types.Target

	// Range is an inclusive residue span.
	Range = types.Range

	// SelectionExpression is a resolved selection with display
	// attributes.
	SelectionExpression = types.SelectionExpression

	// Color is a packed 0xRRGGBB value.
	Color = types.Color
)

// ColorNone marks "no color override".
const ColorNone = types.ColorNone

// Resolver is the façade over target resolution, preset planning,
// and export.
type Resolver struct {
	fetcher *fetch.Client
	store   store.Store
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher replaces the default entry fetcher (for mirrors or
// tests).
func WithFetcher(c *fetch.Client) Option {
	return func(r *Resolver) { r.fetcher = c }
}

// WithStore persists fetched entries and applied-preset history. The
// fetcher is rebuilt with the store as write-through cache unless a
// custom fetcher was supplied too.
func WithStore(s store.Store) Option {
	return func(r *Resolver) { r.store = s }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		var fopts []fetch.Option
		if r.store != nil {
			fopts = append(fopts, fetch.WithStore(r.store))
		}
		r.fetcher = fetch.New(fopts...)
	}
	return r
}

// Fetcher exposes the entry fetcher, e.g. for the serve layer.
func (r *Resolver) Fetcher() *fetch.Client { return r.fetcher }

// Close releases the store, if any.
func (r *Resolver) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// BuildSelections turns targets into selection expressions without
// touching the network or a host: operators defaulted, one expression
// per target plus the hidden whole-entry global.
func (r *Resolver) BuildSelections(entryID string, targets []Target, opts selection.Options) []SelectionExpression {
	return selection.Build(entryID, selection.Normalize(targets, nil), opts)
}

// ResolvePreset resolves preset parameters into a plan. Assembly
// inference for target-carrying presets runs against the entry's real
// generation table when it can be fetched, and degrades to the
// default assembly otherwise.
func (r *Resolver) ResolvePreset(ctx context.Context, entryID string, p preset.Params) (*preset.Plan, error) {
	return preset.Resolve(entryID, p, r.genTable(ctx, entryID))
}

// ApplyPreset applies a preset against a live host and records it in
// the store when one is configured.
func (r *Resolver) ApplyPreset(ctx context.Context, host preset.Host, entryID string, p preset.Params) (*preset.Result, error) {
	res, err := preset.Apply(ctx, host, entryID, p)
	if err != nil {
		return nil, err
	}
	if r.store != nil {
		rec := &store.PresetRecord{
			ID:         uuid.NewString(),
			EntryID:    res.Plan.EntryID,
			Kind:       string(res.Plan.Kind),
			AssemblyID: res.Plan.AssemblyID,
			AppliedAt:  time.Now().UTC(),
		}
		if err := r.store.AddPreset(rec); err != nil {
			return res, fmt.Errorf("recording preset: %w", err)
		}
	}
	return res, nil
}

// MotifQuery builds a structural-similarity search query from
// targets of one entry. A nil query (with nil error) means the
// submission was rejected; the cause is logged.
func (r *Resolver) MotifQuery(entryID string, targets []Target) *motif.Query {
	return motif.BuildQuery(motif.ResiduesFromTargets(entryID, targets))
}

// Export fetches entries and packs their filtered files into an
// archive.
func (r *Resolver) Export(ctx context.Context, entryIDs []string) (*export.Archive, error) {
	if len(entryIDs) == 0 {
		return nil, fmt.Errorf("no entry ids given")
	}
	var a export.Archive
	for _, id := range entryIDs {
		doc, err := r.fetcher.Document(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := a.Add(id, doc); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// History returns the preset history recorded for an entry.
func (r *Resolver) History(entryID string) ([]*store.PresetRecord, error) {
	if r.store == nil {
		return nil, nil
	}
	return r.store.Presets(entryID)
}

func (r *Resolver) genTable(ctx context.Context, entryID string) assembly.GenTable {
	doc, err := r.fetcher.Document(ctx, entryID)
	if err != nil {
		return nil
	}
	if gen := doc.AssemblyGen(); gen != nil {
		return gen
	}
	return nil
}
