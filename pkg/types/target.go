package types

import "fmt"

// Range is an inclusive residue sequence-number span [Beg, End] within
// one chain. A span with End < Beg is empty.
type Range struct {
	Beg int `json:"beg_seq_id" yaml:"beg_seq_id"`
	End int `json:"end_seq_id" yaml:"end_seq_id"`
}

// Len returns the number of residues the range covers.
func (r Range) Len() int {
	if r.End < r.Beg {
		return 0
	}
	return r.End - r.Beg + 1
}

// Expand returns the ordered sequence Beg..End inclusive,
// or nil when End < Beg.
func (r Range) Expand() []int {
	if r.End < r.Beg {
		return nil
	}
	out := make([]int, 0, r.End-r.Beg+1)
	for i := r.Beg; i <= r.End; i++ {
		out = append(out, i)
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Beg, r.End)
}

// Target addresses a structural location. Every field is optional;
// an unset field leaves that axis unconstrained. Targets are value
// types and are never mutated after construction.
//
// Field names follow the mmCIF item names the host query engine
// understands (label_asym_id, label_seq_id, struct_oper_id, ...).
type Target struct {
	// ChainID is the label_asym_id of the chain instance.
	ChainID string `json:"label_asym_id,omitempty" yaml:"label_asym_id,omitempty"`

	// AuthChainID is the author-assigned auth_asym_id.
	AuthChainID string `json:"auth_asym_id,omitempty" yaml:"auth_asym_id,omitempty"`

	// CompID is the residue type (label_comp_id), e.g. "HIS".
	CompID string `json:"label_comp_id,omitempty" yaml:"label_comp_id,omitempty"`

	// SeqID is a single label_seq_id. Zero means unset; label_seq_id
	// numbering starts at 1.
	SeqID int `json:"label_seq_id,omitempty" yaml:"label_seq_id,omitempty"`

	// AuthSeqID is the author-assigned residue number. Zero means unset.
	AuthSeqID int `json:"auth_seq_id,omitempty" yaml:"auth_seq_id,omitempty"`

	// SeqRange is an inclusive label_seq_id span. Nil means unset.
	// SeqID and SeqRange are mutually exclusive; SeqRange wins if both
	// are present.
	SeqRange *Range `json:"label_seq_range,omitempty" yaml:"label_seq_range,omitempty"`

	// Operator is the struct_oper_id coordinate of the symmetry copy,
	// e.g. "1" or the composite "2x61". Empty means unset.
	Operator string `json:"struct_oper_id,omitempty" yaml:"struct_oper_id,omitempty"`
}

// SeqIDs returns the residue sequence numbers the target names:
// the expanded range when SeqRange is set, the single SeqID when set,
// nil when the target is unconstrained on the residue axis.
func (t Target) SeqIDs() []int {
	if t.SeqRange != nil {
		return t.SeqRange.Expand()
	}
	if t.SeqID != 0 {
		return []int{t.SeqID}
	}
	return nil
}

func (t Target) String() string {
	s := t.ChainID
	if s == "" {
		s = "*"
	}
	switch {
	case t.SeqRange != nil:
		s += ":" + t.SeqRange.String()
	case t.SeqID != 0:
		s += fmt.Sprintf(":%d", t.SeqID)
	}
	if t.Operator != "" {
		s += "/" + t.Operator
	}
	return s
}
