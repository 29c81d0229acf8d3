package preset

import (
	"context"

	"github.com/rcsb/molpreset/pkg/assembly"
	"github.com/rcsb/molpreset/pkg/types"
)

// ModelHandle is an opaque reference to a host-side model object.
// This module never looks inside it.
type ModelHandle any

// RepresentationHandle is an opaque reference to a host-side
// representation subtree.
type RepresentationHandle any

// StructureHandle is the host's symmetry-expanded structure. It is
// read-only from this module's perspective; concurrent replacement by
// the host is the host's problem, not guarded here.
type StructureHandle interface {
	EntryID() string
	HasChain(labelAsymID string) bool

	// AtomCount resolves one target against the structure and
	// reports how many atoms it selects. Zero is a valid answer, not
	// an error.
	AtomCount(t types.Target) int
}

// ModelSource constructs models, typically by fetching and parsing
// structure data. The call may block on the network.
type ModelSource interface {
	CreateModel(ctx context.Context, entryID string, modelIndex int) (ModelHandle, error)
}

// StructureBuilder expands a model into a structure. An empty
// assembly id asks for the deposited (assembly-independent) model
// coordinates.
type StructureBuilder interface {
	CreateStructure(ctx context.Context, m ModelHandle, assemblyID string) (StructureHandle, error)
}

// RepresentationApplier renders a resolved plan's expressions onto a
// structure under the visual style of its preset kind. Kind-specific
// knobs travel on plan.Params.
type RepresentationApplier interface {
	ApplyRepresentation(ctx context.Context, s StructureHandle, plan *Plan) (RepresentationHandle, error)
}

// Camera moves the host viewport onto the visible expressions.
type Camera interface {
	Focus(ctx context.Context, s StructureHandle, exprs []types.SelectionExpression) error
}

// Notifier surfaces a message to the user, toast-style.
type Notifier interface {
	Notify(level, message string)
}

// Host is the full capability surface a preset application needs.
// Calls are issued one at a time and awaited; there is no fan-out and
// no cancellation beyond the context the host calls honor themselves.
type Host interface {
	ModelSource
	StructureBuilder
	RepresentationApplier
	Camera
	Notifier

	// AssemblyGen exposes the model's assembly-generation metadata,
	// nil when the source data carries none.
	AssemblyGen(m ModelHandle) assembly.GenTable
}
