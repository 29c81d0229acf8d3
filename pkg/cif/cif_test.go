package cif

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCIF = `data_1ABC
#
_entry.id   1ABC
_cell.length_a   58.39
_cell.length_b   86.70
#
_struct.title   'Crystal structure of an example protein'
#
loop_
_pdbx_struct_assembly_gen.assembly_id
_pdbx_struct_assembly_gen.oper_expression
_pdbx_struct_assembly_gen.asym_id_list
1 '(1)'   A,B
2 '(1-2)' A
#
loop_
_struct_conf.id
_struct_conf.beg_label_seq_id
_struct_conf.end_label_seq_id
HELX1 10 24
HELX2 40 51
#
`

func TestParse(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	assert.Equal(t, "1ABC", doc.Name)

	entry := doc.Category("entry")
	require.NotNil(t, entry)
	assert.Equal(t, "1ABC", entry.Value(0, "id"))

	cell := doc.Category("cell")
	require.NotNil(t, cell)
	assert.Equal(t, "58.39", cell.Value(0, "length_a"))
	assert.Equal(t, "86.70", cell.Value(0, "length_b"))
}

func TestParse_QuotedValues(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	st := doc.Category("struct")
	require.NotNil(t, st)
	assert.Equal(t, "Crystal structure of an example protein", st.Value(0, "title"))
}

func TestParse_Loop(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	gen := doc.Category("pdbx_struct_assembly_gen")
	require.NotNil(t, gen)
	require.Len(t, gen.Rows, 2)
	assert.Equal(t, []string{"assembly_id", "oper_expression", "asym_id_list"}, gen.Columns)
	assert.Equal(t, "(1)", gen.Value(0, "oper_expression"))
	assert.Equal(t, "A", gen.Value(1, "asym_id_list"))
}

func TestParse_MultilineText(t *testing.T) {
	doc, err := ParseString("data_X\n_struct.pdbx_descriptor\n;line one\nline two\n;\n")
	require.NoError(t, err)
	st := doc.Category("struct")
	require.NotNil(t, st)
	assert.Equal(t, "line one\nline two", st.Value(0, "pdbx_descriptor"))
}

func TestParse_MissingLookups(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	assert.Nil(t, doc.Category("atom_site"))
	gen := doc.Category("pdbx_struct_assembly_gen")
	assert.Equal(t, "", gen.Value(0, "no_such_column"))
	assert.Equal(t, "", gen.Value(99, "assembly_id"))
	assert.Equal(t, -1, gen.Column("no_such_column"))
}

func TestAssemblyGen(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	gen := doc.AssemblyGen()
	require.NotNil(t, gen)
	assert.Equal(t, 2, gen.Len())

	id, oper, asyms, err := gen.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	assert.Equal(t, "(1)", oper)
	assert.Equal(t, "A,B", asyms)
}

func TestAssemblyGen_Absent(t *testing.T) {
	doc, err := ParseString("data_X\n_entry.id X\n")
	require.NoError(t, err)
	gen := doc.AssemblyGen()
	assert.Nil(t, gen)
	assert.Equal(t, 0, gen.Len(), "nil table reports zero rows")
}

func TestFilter(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	out := doc.Filter(map[string]struct{}{
		"cell":        {},
		"struct_conf": {},
	})
	assert.Nil(t, out.Category("cell"))
	assert.Nil(t, out.Category("struct_conf"))
	assert.NotNil(t, out.Category("entry"))
	assert.NotNil(t, out.Category("pdbx_struct_assembly_gen"))
	// Source document untouched.
	assert.NotNil(t, doc.Category("cell"))
}

func TestWriteRoundTrip(t *testing.T) {
	doc, err := ParseString(sampleCIF)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))

	back, err := Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, doc.Name, back.Name)
	require.Len(t, back.Categories, len(doc.Categories))
	for i, want := range doc.Categories {
		got := back.Categories[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Columns, got.Columns)
		assert.Equal(t, want.Rows, got.Rows)
	}
}

func TestParse_SecondBlockIgnored(t *testing.T) {
	doc, err := ParseString("data_A\n_entry.id A\ndata_B\n_entry.id B\n")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)
	assert.Equal(t, "A", doc.Category("entry").Value(0, "id"))
}
