package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	axes := Parse("(X0)(1-5)")
	assert.Equal(t, [][]string{
		{"X0"},
		{"1", "2", "3", "4", "5"},
	}, axes)
}

func TestParse_Idempotent(t *testing.T) {
	// Well-formed input always parses to the same axes.
	a := Parse("(X0)(1-5)")
	b := Parse("(X0)(1-5)")
	assert.Equal(t, a, b)
}

func TestParse_SingleAxis(t *testing.T) {
	assert.Equal(t, [][]string{{"1"}}, Parse("(1)"))
	assert.Equal(t, [][]string{{"1", "2"}}, Parse("(1-2)"))
}

func TestParse_NoParens(t *testing.T) {
	// mmCIF allows a bare expression for single-axis assemblies.
	assert.Equal(t, [][]string{{"1", "2", "3"}}, Parse("1-3"))
	assert.Equal(t, [][]string{{"P"}}, Parse("P"))
}

func TestParse_CommaList(t *testing.T) {
	assert.Equal(t, [][]string{{"1", "3", "5", "6", "7"}}, Parse("(1,3,5-7)"))
}

func TestParse_MalformedRanges(t *testing.T) {
	// Inverted or non-numeric bounds contribute nothing; the parse
	// itself never fails.
	assert.Equal(t, [][]string{nil}, Parse("(5-1)"))
	assert.Equal(t, [][]string{nil}, Parse("(a-b)"))
	assert.Equal(t, [][]string{{"4"}, nil}, Parse("(4)(9-2)"))
}

func TestParse_Empty(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("   "))
}

func TestSplitCoordinate(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, SplitCoordinate("1x3"))
	assert.Equal(t, []string{"1", "3"}, SplitCoordinate("1.3"))
	assert.Equal(t, []string{"1"}, SplitCoordinate("1"))
	assert.Equal(t, []string{"X0", "5"}, SplitCoordinate("X0x5"))
	assert.Nil(t, SplitCoordinate(""))
}

func TestMatches(t *testing.T) {
	axes := Parse("(X0)(1-5)")

	assert.True(t, Matches(axes, "X0x3"))
	assert.True(t, Matches(axes, "X0.5"))
	assert.False(t, Matches(axes, "X0x6"), "6 outside second axis")
	assert.False(t, Matches(axes, "X1x3"), "X1 outside first axis")
	assert.False(t, Matches(axes, "X0"), "too few components")
	assert.False(t, Matches(axes, "X0x3x1"), "too many components")
}

func TestMatches_SingleAxis(t *testing.T) {
	axes := Parse("(1-60)")
	assert.True(t, Matches(axes, "42"))
	assert.False(t, Matches(axes, "61"))
}
