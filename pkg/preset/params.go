package preset

import (
	"encoding/json"
	"fmt"

	"github.com/rcsb/molpreset/pkg/types"
)

// Kind names a preset variant.
type Kind string

const (
	KindStandard       Kind = "standard"
	KindValidation     Kind = "validation"
	KindSymmetry       Kind = "symmetry"
	KindFeature        Kind = "feature"
	KindDensity        Kind = "density"
	KindMembrane       Kind = "membrane"
	KindFeatureDensity Kind = "feature-density"
	KindPropSet        Kind = "prop-set"
	KindMotif          Kind = "motif"
	KindEmpty          Kind = "empty"
)

// Params is the closed set of preset parameter variants. The sum is
// sealed (base is unexported) so dispatch in Resolve stays exhaustive:
// a new variant fails to compile until every switch handles it.
type Params interface {
	Kind() Kind
	base() Base
}

// Base carries the fields every preset shares. An empty AssemblyID
// (or "0") asks the resolver to pick one.
type Base struct {
	AssemblyID string `json:"assembly_id,omitempty" yaml:"assembly_id,omitempty"`
	ModelIndex int    `json:"model_index,omitempty" yaml:"model_index,omitempty"`
}

func (b Base) base() Base { return b }

// Standard shows the default representation of an assembly.
type Standard struct {
	Base `yaml:",inline"`
}

func (Standard) Kind() Kind { return KindStandard }

// Validation colors the structure by geometry-validation metrics.
type Validation struct {
	Base        `yaml:",inline"`
	ColorTheme  string `json:"color_theme,omitempty" yaml:"color_theme,omitempty"`
	ShowClashes bool   `json:"show_clashes,omitempty" yaml:"show_clashes,omitempty"`
}

func (Validation) Kind() Kind { return KindValidation }

// Symmetry shows an assembly with its symmetry axes.
type Symmetry struct {
	Base          `yaml:",inline"`
	SymmetryIndex int `json:"symmetry_index,omitempty" yaml:"symmetry_index,omitempty"`
}

func (Symmetry) Kind() Kind { return KindSymmetry }

// Feature focuses one structural feature.
type Feature struct {
	Base   `yaml:",inline"`
	Target types.Target `json:"target" yaml:"target"`
}

func (Feature) Kind() Kind { return KindFeature }

// Density shows the electron-density volume of the entry.
type Density struct {
	Base `yaml:",inline"`
}

func (Density) Kind() Kind { return KindDensity }

// Membrane orients the structure relative to a predicted membrane
// plane.
type Membrane struct {
	Base `yaml:",inline"`
}

func (Membrane) Kind() Kind { return KindMembrane }

// FeatureDensity focuses a feature with its local density carved out
// to Radius angstroms.
type FeatureDensity struct {
	Base   `yaml:",inline"`
	Target types.Target `json:"target" yaml:"target"`
	Radius float64      `json:"radius,omitempty" yaml:"radius,omitempty"`
}

func (FeatureDensity) Kind() Kind { return KindFeatureDensity }

// PropSet renders a caller-assembled list of selections, each with
// its own color and visibility.
type PropSet struct {
	Base       `yaml:",inline"`
	Selections []types.SelectionExpression `json:"selections" yaml:"selections"`
}

func (PropSet) Kind() Kind { return KindPropSet }

// Motif highlights a discontiguous residue set. Color is optional;
// nil leaves coloring to the host theme (zero would mean black).
type Motif struct {
	Base    `yaml:",inline"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty"`
	Targets []types.Target `json:"targets" yaml:"targets"`
	Color   *types.Color   `json:"color,omitempty" yaml:"color,omitempty"`
}

func (Motif) Kind() Kind { return KindMotif }

// Empty loads the structure without any representation.
type Empty struct {
	Base `yaml:",inline"`
}

func (Empty) Kind() Kind { return KindEmpty }

// UnmarshalParams decodes a JSON preset request of the wire shape
// {"kind": "...", ...fields}. Unknown kinds are an error; the wire
// set and the Params sum must stay in lockstep.
func UnmarshalParams(data []byte) (Params, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding preset params: %w", err)
	}

	switch probe.Kind {
	case KindStandard:
		return unmarshalInto[Standard](data)
	case KindValidation:
		return unmarshalInto[Validation](data)
	case KindSymmetry:
		return unmarshalInto[Symmetry](data)
	case KindFeature:
		return unmarshalInto[Feature](data)
	case KindDensity:
		return unmarshalInto[Density](data)
	case KindMembrane:
		return unmarshalInto[Membrane](data)
	case KindFeatureDensity:
		return unmarshalInto[FeatureDensity](data)
	case KindPropSet:
		return unmarshalInto[PropSet](data)
	case KindMotif:
		return unmarshalInto[Motif](data)
	case KindEmpty:
		return unmarshalInto[Empty](data)
	default:
		return nil, fmt.Errorf("unknown preset kind %q", probe.Kind)
	}
}

func unmarshalInto[T Params](data []byte) (Params, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding %s params: %w", v.Kind(), err)
	}
	return v, nil
}
