// Package assembly infers which structural assembly a set of motif
// targets belongs to, from the entry's assembly-generation metadata.
package assembly

import (
	"strings"

	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/operator"
	"github.com/rcsb/molpreset/pkg/types"
)

// DefaultID is the assembly id used when inference finds nothing.
// It is a best-effort guess, not a validated result.
const DefaultID = "1"

// GenTable is a read-only view of pdbx_struct_assembly_gen rows.
// Implementations may be backed by arbitrary host metadata accessors
// and are allowed to return errors or panic; InferID tolerates both.
type GenTable interface {
	Len() int
	// Row returns (assembly_id, oper_expression, asym_id_list) for
	// row i. The asym id list is comma-separated.
	Row(i int) (assemblyID, operExpression, asymIDList string, err error)
}

// OperatorChain is one (struct_oper_id coordinate, label_asym_id)
// pair extracted from a target list.
type OperatorChain struct {
	Operator string
	ChainID  string
}

// PairsFromTargets extracts the deduplicated (operator, chain) pairs
// of a target list, defaulting unset operators to "1".
func PairsFromTargets(targets []types.Target) []OperatorChain {
	seen := make(map[OperatorChain]struct{}, len(targets))
	var pairs []OperatorChain
	for _, t := range targets {
		p := OperatorChain{Operator: t.Operator, ChainID: t.ChainID}
		if p.Operator == "" {
			p.Operator = "1"
		}
		if p.ChainID == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs
}

// Keep reports whether a caller-supplied assembly id should be kept
// as-is, skipping inference. Empty and "0" mean "not chosen".
func Keep(assemblyID string) bool {
	return assemblyID != "" && assemblyID != "0"
}

// InferID scans the generation table in row order and returns the
// assembly id of the first row that matches every requested pair.
// Ties between rows are broken by source order, never by specificity.
//
// InferID never fails: a nil or malformed table, a row lookup error,
// a panicking accessor, or no matching row all yield DefaultID with a
// warning logged. Callers must treat the default as a may-be-wrong
// guess.
func InferID(pairs []OperatorChain, table GenTable) (id string) {
	log := logging.L()

	defer func() {
		if r := recover(); r != nil {
			log.Warn("assembly inference panicked, using default",
				zap.Any("cause", r), zap.String("assembly_id", DefaultID))
			id = DefaultID
		}
	}()

	if table == nil || len(pairs) == 0 {
		return DefaultID
	}

	for i := 0; i < table.Len(); i++ {
		assemblyID, operExpr, asymList, err := table.Row(i)
		if err != nil {
			log.Warn("assembly generation row lookup failed, using default",
				zap.Int("row", i), zap.Error(err))
			return DefaultID
		}
		if rowMatches(operExpr, asymList, pairs) {
			return assemblyID
		}
	}

	log.Debug("no assembly row matched requested operators, using default",
		zap.Int("pairs", len(pairs)))
	return DefaultID
}

// rowMatches reports whether one generation row covers every
// requested (operator, chain) pair: the chain must appear in the
// row's asym id list and the row's operator expression must generate
// the requested coordinate.
func rowMatches(operExpr, asymList string, pairs []OperatorChain) bool {
	axes := operator.Parse(operExpr)
	chains := splitAsymList(asymList)
	for _, p := range pairs {
		if _, ok := chains[p.ChainID]; !ok {
			return false
		}
		if !operator.Matches(axes, p.Operator) {
			return false
		}
	}
	return true
}

func splitAsymList(asymList string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range strings.Split(asymList, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}
