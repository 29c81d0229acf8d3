package types

// SelectionExpression is a named, taggable query over one entry,
// built from one or more targets. It is the unit handed to the host's
// structure-representation builder; nothing in this module interprets
// it beyond carrying the fields through.
type SelectionExpression struct {
	// Tag uniquely identifies the expression inside one preset
	// application, e.g. "sel-0" or "entry-1ABC".
	Tag string `json:"tag" yaml:"tag"`

	// Label is the human-readable name shown by the host UI.
	Label string `json:"label" yaml:"label"`

	// EntryID is the PDB entry the expression selects within.
	EntryID string `json:"entry_id" yaml:"entry_id"`

	// Targets are the coordinates the expression covers. Empty means
	// the whole entry.
	Targets []Target `json:"targets,omitempty" yaml:"targets,omitempty"`

	// Color applied to the selected representation, ColorNone to let
	// the host theme decide.
	Color Color `json:"color,omitempty" yaml:"color,omitempty"`

	// Hidden keeps the component loaded but not rendered. Whole-entry
	// hidden expressions keep viewport bounds covering the full
	// assembly while only the targeted residues are visible.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Group is an optional grouping label the host uses to fold
	// related components together in its UI.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
}

// WholeEntry reports whether the expression covers the entire entry.
func (e SelectionExpression) WholeEntry() bool {
	return len(e.Targets) == 0
}
