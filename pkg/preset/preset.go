// Package preset applies viewer presets: it resolves preset
// parameters into selection expressions and drives the host's
// model/structure/representation pipeline with them.
package preset

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/assembly"
	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/selection"
	"github.com/rcsb/molpreset/pkg/types"
)

// Plan is the resolved form of a preset request: the assembly to
// build and the expressions to render. Resolving is pure; only Apply
// touches the host.
type Plan struct {
	Kind        Kind                        `json:"kind"`
	EntryID     string                      `json:"entry_id"`
	AssemblyID  string                      `json:"assembly_id"`
	ModelIndex  int                         `json:"model_index"`
	Expressions []types.SelectionExpression `json:"expressions"`

	// Params are the original parameters; representation appliers
	// read their kind-specific knobs (color theme, carve radius, ...)
	// from here. In-process only: the wire form cannot round-trip an
	// interface, and clients already hold what they sent.
	Params Params `json:"-"`
}

// Result holds the host objects a preset application produced.
type Result struct {
	Plan           *Plan
	Model          ModelHandle
	Structure      StructureHandle
	Representation RepresentationHandle
}

// Resolve turns preset parameters into a Plan. The generation table
// feeds assembly inference for target-carrying presets; it may be nil
// (inference then defaults). Resolve never consults the live
// structure, so expressions are not yet normalized against chains.
func Resolve(entryID string, p Params, gen assembly.GenTable) (*Plan, error) {
	if entryID == "" {
		return nil, fmt.Errorf("entry id is required")
	}
	if p == nil {
		return nil, fmt.Errorf("preset params are required")
	}

	b := p.base()
	plan := &Plan{
		Kind:       p.Kind(),
		EntryID:    entryID,
		AssemblyID: b.AssemblyID,
		ModelIndex: b.ModelIndex,
		Params:     p,
	}

	switch v := p.(type) {
	case Standard, Validation, Symmetry, Density, Membrane:
		plan.defaultAssembly()
		plan.Expressions = selection.Build(entryID, nil, selection.Options{Color: types.ColorNone})

	case Feature:
		plan.defaultAssembly()
		plan.Expressions = selection.Build(entryID, targetsOf(v.Target), selection.Options{Color: types.ColorNone})

	case FeatureDensity:
		plan.defaultAssembly()
		plan.Expressions = selection.Build(entryID, targetsOf(v.Target), selection.Options{Color: types.ColorNone})

	case PropSet:
		plan.inferAssembly(selectionTargets(v.Selections), gen)
		plan.Expressions = v.Selections

	case Motif:
		plan.inferAssembly(v.Targets, gen)
		label := v.Label
		if label == "" {
			label = "motif"
		}
		color := types.ColorNone
		if v.Color != nil {
			color = *v.Color
		}
		plan.Expressions = selection.Build(entryID, v.Targets, selection.Options{
			Color: color,
			Group: label,
		})

	case Empty:
		plan.defaultAssembly()

	default:
		// Unreachable while Params stays sealed.
		return nil, fmt.Errorf("unhandled preset kind %q", p.Kind())
	}

	return plan, nil
}

// defaultAssembly keeps a caller-chosen assembly id and falls back to
// "1" otherwise.
func (p *Plan) defaultAssembly() {
	if !assembly.Keep(p.AssemblyID) {
		p.AssemblyID = assembly.DefaultID
	}
}

// inferAssembly resolves the assembly from target operators unless
// the caller already chose one.
func (p *Plan) inferAssembly(targets []types.Target, gen assembly.GenTable) {
	if assembly.Keep(p.AssemblyID) {
		return
	}
	p.AssemblyID = assembly.InferID(assembly.PairsFromTargets(targets), gen)
}

// Apply runs a preset against the host: model, structure,
// normalization, representation, focus, in that order, one awaited
// host call at a time.
//
// If a feature preset resolves to zero atoms under the chosen
// assembly, the structure is rebuilt assembly-independent and
// resolution retried once (spec'd viewer behavior for features that
// only exist in the deposited coordinates).
func Apply(ctx context.Context, host Host, entryID string, p Params) (*Result, error) {
	if host == nil {
		return nil, fmt.Errorf("host is required")
	}
	log := logging.L()

	b := p.base()
	model, err := host.CreateModel(ctx, entryID, b.ModelIndex)
	if err != nil {
		return nil, fmt.Errorf("creating model for %s: %w", entryID, err)
	}

	plan, err := Resolve(entryID, p, host.AssemblyGen(model))
	if err != nil {
		return nil, err
	}

	structure, err := host.CreateStructure(ctx, model, plan.AssemblyID)
	if err != nil {
		return nil, fmt.Errorf("creating structure %s/%s: %w", entryID, plan.AssemblyID, err)
	}

	plan.Expressions = normalizeExpressions(plan.Expressions, structure)

	// Feature presets may target coordinates that exist only outside
	// the assembly; retry once against the deposited model.
	if isFeature(plan.Kind) && visibleAtomCount(plan.Expressions, structure) == 0 {
		log.Warn("feature selects no atoms under assembly, retrying with model coordinates",
			zap.String("entry_id", entryID),
			zap.String("assembly_id", plan.AssemblyID))
		host.Notify("warning", "feature not present in assembly, showing deposited model")

		structure, err = host.CreateStructure(ctx, model, "")
		if err != nil {
			return nil, fmt.Errorf("creating model-coordinate structure for %s: %w", entryID, err)
		}
		plan.AssemblyID = ""
		plan.Expressions = normalizeExpressions(plan.Expressions, structure)
	}

	res := &Result{Plan: plan, Model: model, Structure: structure}
	if plan.Kind == KindEmpty {
		return res, nil
	}

	res.Representation, err = host.ApplyRepresentation(ctx, structure, plan)
	if err != nil {
		return nil, fmt.Errorf("applying %s representation: %w", plan.Kind, err)
	}

	if wantsFocus(plan.Kind) {
		if err := host.Focus(ctx, structure, visible(plan.Expressions)); err != nil {
			// Focus is cosmetic; the representation is already up.
			log.Warn("camera focus failed", zap.String("entry_id", entryID), zap.Error(err))
		}
	}
	return res, nil
}

func isFeature(k Kind) bool {
	return k == KindFeature || k == KindFeatureDensity
}

func wantsFocus(k Kind) bool {
	switch k {
	case KindFeature, KindFeatureDensity, KindMotif, KindPropSet:
		return true
	}
	return false
}

// normalizeExpressions runs target normalization over every
// expression against the live structure.
func normalizeExpressions(exprs []types.SelectionExpression, s StructureHandle) []types.SelectionExpression {
	out := make([]types.SelectionExpression, len(exprs))
	for i, e := range exprs {
		e.Targets = selection.Normalize(e.Targets, s)
		out[i] = e
	}
	return out
}

// visibleAtomCount sums the atoms selected by non-hidden, targeted
// expressions.
func visibleAtomCount(exprs []types.SelectionExpression, s StructureHandle) int {
	n := 0
	for _, e := range exprs {
		if e.Hidden || e.WholeEntry() {
			continue
		}
		for _, t := range e.Targets {
			n += s.AtomCount(t)
		}
	}
	return n
}

func visible(exprs []types.SelectionExpression) []types.SelectionExpression {
	var out []types.SelectionExpression
	for _, e := range exprs {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

func targetsOf(t types.Target) []types.Target {
	return []types.Target{t}
}

func selectionTargets(exprs []types.SelectionExpression) []types.Target {
	var out []types.Target
	for _, e := range exprs {
		out = append(out, e.Targets...)
	}
	return out
}
