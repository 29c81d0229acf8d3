// Package export serializes selected entries to downloadable files:
// a single filtered mmCIF, or a zip archive when several entries are
// selected.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/rcsb/molpreset/pkg/cif"
)

// SkipCategories are stripped from exported files: assembly
// generation, crystallographic frame, and secondary-structure
// records describe the deposited context, not the exported
// coordinates, and stale copies confuse downstream tools.
var SkipCategories = map[string]struct{}{
	"pdbx_struct_assembly":      {},
	"pdbx_struct_assembly_gen":  {},
	"pdbx_struct_assembly_prop": {},
	"pdbx_struct_oper_list":     {},
	"struct_ncs_oper":           {},
	"atom_sites":                {},
	"cell":                      {},
	"symmetry":                  {},
	"struct_conf":               {},
	"struct_sheet_range":        {},
}

// File is one named member of an archive.
type File struct {
	Name string
	Data []byte
}

// Archive is an in-memory set of export files.
type Archive struct {
	Files []File
}

// Add filters an entry document and appends it as "<name>.cif".
func (a *Archive) Add(name string, doc *cif.Document) error {
	var buf bytes.Buffer
	if err := doc.Filter(SkipCategories).Write(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	a.Files = append(a.Files, File{Name: fileName(name), Data: buf.Bytes()})
	return nil
}

// Write emits the archive: the bare file when it holds exactly one,
// a zip container otherwise.
func (a *Archive) Write(w io.Writer) error {
	switch len(a.Files) {
	case 0:
		return fmt.Errorf("archive is empty")
	case 1:
		_, err := w.Write(a.Files[0].Data)
		return err
	}
	return a.Zip(w)
}

// Name suggests a file name for the written archive.
func (a *Archive) Name() string {
	if len(a.Files) == 1 {
		return a.Files[0].Name
	}
	return "structures.zip"
}

// Zip writes all files into a zip container, deflated with
// klauspost's encoder.
func (a *Archive) Zip(w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	for _, f := range a.Files {
		fw, err := zw.Create(f.Name)
		if err != nil {
			return fmt.Errorf("creating zip member %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("writing zip member %s: %w", f.Name, err)
		}
	}
	return zw.Close()
}

func fileName(name string) string {
	name = strings.TrimSuffix(name, ".cif")
	if name == "" {
		name = "structure"
	}
	return name + ".cif"
}
