package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeExpand(t *testing.T) {
	r := Range{Beg: 10, End: 12}
	assert.Equal(t, []int{10, 11, 12}, r.Expand())
	assert.Equal(t, 3, r.Len())
}

func TestRangeExpand_SingleResidue(t *testing.T) {
	r := Range{Beg: 5, End: 5}
	assert.Equal(t, []int{5}, r.Expand())
}

func TestRangeExpand_Inverted(t *testing.T) {
	// End < Beg is an empty span, not an error.
	r := Range{Beg: 12, End: 10}
	assert.Empty(t, r.Expand())
	assert.Equal(t, 0, r.Len())
}

func TestRangeExpand_Length(t *testing.T) {
	for _, tc := range []struct {
		beg, end, want int
	}{
		{1, 1, 1},
		{1, 100, 100},
		{40, 45, 6},
	} {
		r := Range{Beg: tc.beg, End: tc.end}
		got := r.Expand()
		assert.Len(t, got, tc.want)
		// Ascending order with no gaps.
		for i, v := range got {
			assert.Equal(t, tc.beg+i, v)
		}
	}
}

func TestTargetSeqIDs(t *testing.T) {
	assert.Nil(t, Target{ChainID: "A"}.SeqIDs())
	assert.Equal(t, []int{42}, Target{ChainID: "A", SeqID: 42}.SeqIDs())
	assert.Equal(t, []int{10, 11, 12},
		Target{ChainID: "A", SeqRange: &Range{Beg: 10, End: 12}}.SeqIDs())
}

func TestTargetSeqIDs_RangeWinsOverSingle(t *testing.T) {
	tgt := Target{SeqID: 7, SeqRange: &Range{Beg: 1, End: 2}}
	assert.Equal(t, []int{1, 2}, tgt.SeqIDs())
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "A:10-12", Target{ChainID: "A", SeqRange: &Range{Beg: 10, End: 12}}.String())
	assert.Equal(t, "B:42/2x61", Target{ChainID: "B", SeqID: 42, Operator: "2x61"}.String())
	assert.Equal(t, "*", Target{}.String())
}

func TestColor(t *testing.T) {
	c := Color(0xFF8800)
	r, g, b := c.RGB()
	assert.Equal(t, uint8(0xFF), r)
	assert.Equal(t, uint8(0x88), g)
	assert.Equal(t, uint8(0x00), b)
	assert.Equal(t, "#FF8800", c.String())
	assert.True(t, c.Valid())
	assert.False(t, ColorNone.Valid())
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#00CC00", "0x00CC00", "00CC00"} {
		c, err := ParseColor(s)
		assert.NoError(t, err)
		assert.Equal(t, Color(0x00CC00), c)
	}

	c, err := ParseColor("")
	assert.NoError(t, err)
	assert.Equal(t, ColorNone, c)

	_, err = ParseColor("not-a-color")
	assert.Error(t, err)
}
