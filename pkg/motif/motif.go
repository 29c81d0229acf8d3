// Package motif builds structural-similarity search queries from
// user-picked residue sets.
package motif

import (
	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/types"
)

// MaxResidues caps the residue count of one motif submission. Larger
// motifs are rejected before any query is built; the search service
// behind the query enforces the same ceiling.
const MaxResidues = 10

// ResidueID identifies one residue of the query in the coordinate
// system of the search service.
type ResidueID struct {
	ChainID      string `json:"label_asym_id"`
	StructOperID string `json:"struct_oper_id,omitempty"`
	SeqID        int    `json:"label_seq_id"`
}

// Query is a motif search request over a single entry.
type Query struct {
	EntryID    string      `json:"entry_id"`
	ResidueIDs []ResidueID `json:"residue_ids"`
}

// Residue is one picked residue together with the entry it came from.
// Picks may span loci of several loaded entries; BuildQuery rejects
// mixed-entry sets.
type Residue struct {
	EntryID  string
	ChainID  string
	Operator string
	SeqID    int
}

// BuildQuery assembles a motif query from picked residues. The
// operation never raises: an empty pick, residues from more than one
// entry, or a pick above MaxResidues all log a warning and yield a
// nil query so the caller's UI action quietly no-ops.
func BuildQuery(residues []Residue) *Query {
	log := logging.L()
	if len(residues) == 0 {
		log.Warn("motif query requested with no residues selected")
		return nil
	}

	entries := make(map[string]struct{})
	for _, r := range residues {
		entries[r.EntryID] = struct{}{}
	}
	if len(entries) > 1 {
		log.Warn("motif residues span multiple entries, aborting",
			zap.Int("entries", len(entries)))
		return nil
	}
	if len(residues) > MaxResidues {
		log.Warn("motif exceeds residue limit, aborting",
			zap.Int("residues", len(residues)),
			zap.Int("limit", MaxResidues))
		return nil
	}

	q := &Query{EntryID: residues[0].EntryID}
	for _, r := range residues {
		q.ResidueIDs = append(q.ResidueIDs, ResidueID{
			ChainID:      r.ChainID,
			StructOperID: r.Operator,
			SeqID:        r.SeqID,
		})
	}
	return q
}

// ResiduesFromTargets expands a target list into individual residues
// of one entry, unrolling residue ranges. Targets without a residue
// axis contribute nothing; a motif is a set of discrete residues, not
// whole chains.
func ResiduesFromTargets(entryID string, targets []types.Target) []Residue {
	var out []Residue
	for _, t := range targets {
		for _, seq := range t.SeqIDs() {
			out = append(out, Residue{
				EntryID:  entryID,
				ChainID:  t.ChainID,
				Operator: t.Operator,
				SeqID:    seq,
			})
		}
	}
	return out
}
