package cif

// CategoryAssemblyGen is the mmCIF category holding assembly
// generation rows.
const CategoryAssemblyGen = "pdbx_struct_assembly_gen"

// AssemblyGen adapts the pdbx_struct_assembly_gen category to the
// row accessor shape assembly inference consumes.
type AssemblyGen struct {
	cat *Category
}

// AssemblyGen returns the entry's assembly-generation table, or nil
// when the category is absent.
func (d *Document) AssemblyGen() *AssemblyGen {
	cat := d.Category(CategoryAssemblyGen)
	if cat == nil {
		return nil
	}
	return &AssemblyGen{cat: cat}
}

func (g *AssemblyGen) Len() int {
	if g == nil || g.cat == nil {
		return 0
	}
	return len(g.cat.Rows)
}

// Row returns (assembly_id, oper_expression, asym_id_list) for row i.
func (g *AssemblyGen) Row(i int) (assemblyID, operExpression, asymIDList string, err error) {
	return g.cat.Value(i, "assembly_id"),
		g.cat.Value(i, "oper_expression"),
		g.cat.Value(i, "asym_id_list"),
		nil
}
