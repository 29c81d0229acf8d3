// Package selection turns target lists into the selection
// expressions the host representation builder consumes.
package selection

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/types"
)

// Structure is the read-only view of the loaded structure that
// normalization validates against. Implemented by the embedding host;
// this module never mutates it.
type Structure interface {
	EntryID() string
	HasChain(labelAsymID string) bool
}

// Normalize fills in defaults on under-specified targets so that
// expression generation always sees fully-specified coordinates:
// unset operators become "1". Targets naming chains absent from the
// live structure are kept, not rejected; they resolve to zero atoms
// downstream rather than failing the request.
func Normalize(targets []types.Target, s Structure) []types.Target {
	out := make([]types.Target, len(targets))
	for i, t := range targets {
		if t.Operator == "" {
			t.Operator = "1"
		}
		if s != nil && t.ChainID != "" && !s.HasChain(t.ChainID) {
			logging.L().Warn("target chain not present in structure, selection will be empty",
				zap.String("entry_id", s.EntryID()),
				zap.String("label_asym_id", t.ChainID))
		}
		out[i] = t
	}
	return out
}

// Options shape how expressions are built. Set Color to
// types.ColorNone when no override is wanted; the zero value of
// Color is a real color (black).
type Options struct {
	// Label overrides the generated per-expression labels.
	Label string

	// Color applies uniformly to every targeted expression.
	// ColorNone (or any invalid value) lets the host theme decide.
	Color types.Color

	// Hidden marks every targeted expression hidden.
	Hidden bool

	// Group folds the expressions under one host UI group.
	Group string
}

// Build emits one selection expression per target, or a single
// whole-entry expression when no targets are given. When targets are
// present, a hidden whole-entry expression is appended so the full
// structure stays loaded (and camera bounds keep covering the whole
// assembly) while only the targeted residues render.
//
// Build is a pure transformation; it never touches the host.
func Build(entryID string, targets []types.Target, opts Options) []types.SelectionExpression {
	color := opts.Color
	if !color.Valid() {
		color = types.ColorNone
	}

	if len(targets) == 0 {
		return []types.SelectionExpression{{
			Tag:     entryTag(entryID),
			Label:   labelOr(opts.Label, entryID),
			EntryID: entryID,
			Color:   color,
			Hidden:  opts.Hidden,
			Group:   opts.Group,
		}}
	}

	exprs := make([]types.SelectionExpression, 0, len(targets)+1)
	for i, t := range targets {
		exprs = append(exprs, types.SelectionExpression{
			Tag:     fmt.Sprintf("sel-%d", i),
			Label:   labelOr(opts.Label, fmt.Sprintf("%s %s", entryID, t)),
			EntryID: entryID,
			Targets: []types.Target{t},
			Color:   color,
			Hidden:  opts.Hidden,
			Group:   opts.Group,
		})
	}

	// Global unfiltered component, hidden: keeps the assembly loaded
	// and the viewport bounds honest without rendering it.
	exprs = append(exprs, types.SelectionExpression{
		Tag:     entryTag(entryID),
		Label:   entryID,
		EntryID: entryID,
		Color:   types.ColorNone,
		Hidden:  true,
		Group:   opts.Group,
	})
	return exprs
}

func entryTag(entryID string) string {
	return "entry-" + entryID
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
