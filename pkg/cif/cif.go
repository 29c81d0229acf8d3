// Package cif reads and writes the small subset of mmCIF this module
// needs: data blocks made of key-value items and loop_ tables. It is
// enough to pull assembly-generation metadata out of an entry file
// and to rewrite a file with some categories removed; it is not a
// general CIF codec.
package cif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Document is one data block. Key-value items and loop_ tables are
// both modeled as categories; an item group becomes a single-row
// category.
type Document struct {
	// Name is the token after "data_".
	Name string

	// Categories in source order.
	Categories []*Category
}

// Category is one mmCIF category: column names without the
// "_category." prefix, plus row-major values.
type Category struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Category returns the named category or nil.
func (d *Document) Category(name string) *Category {
	for _, c := range d.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Filter returns a copy of the document without the named categories.
// Category order is preserved; the underlying rows are shared.
func (d *Document) Filter(skip map[string]struct{}) *Document {
	out := &Document{Name: d.Name}
	for _, c := range d.Categories {
		if _, drop := skip[c.Name]; drop {
			continue
		}
		out.Categories = append(out.Categories, c)
	}
	return out
}

// Column returns the index of a column or -1.
func (c *Category) Column(name string) int {
	for i, col := range c.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Value returns the value at (row, column name), or "" when the row
// or column does not exist. mmCIF nulls ("." and "?") come through
// as-is.
func (c *Category) Value(row int, name string) string {
	col := c.Column(name)
	if col < 0 || row < 0 || row >= len(c.Rows) || col >= len(c.Rows[row]) {
		return ""
	}
	return c.Rows[row][col]
}

// Parse reads the first data block of an mmCIF stream.
func Parse(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	p := &parser{doc: &Document{}}
	for sc.Scan() {
		if err := p.line(sc.Text()); err != nil {
			return nil, err
		}
		if p.done {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading cif: %w", err)
	}
	p.flush()
	return p.doc, nil
}

// ParseString is Parse over a string, for tests and small inputs.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	doc     *Document
	inBlock bool
	done    bool

	// loop accumulation
	inLoop   bool
	loopCols []string // fully qualified "_cat.item" names
	loopRows [][]string
	loopVals []string // values of the row being assembled

	// pending key-value item waiting for its value on a later line
	pendingItem string

	// multiline ";" text block accumulation
	inText  bool
	textBuf strings.Builder
}

func (p *parser) line(raw string) error {
	// Multiline text blocks are closed by a line starting with ";".
	if p.inText {
		if strings.HasPrefix(raw, ";") {
			p.inText = false
			p.value(p.textBuf.String())
			p.textBuf.Reset()
			rest := strings.TrimSpace(raw[1:])
			if rest != "" {
				return p.line(rest)
			}
			return nil
		}
		if p.textBuf.Len() > 0 {
			p.textBuf.WriteByte('\n')
		}
		p.textBuf.WriteString(raw)
		return nil
	}

	if strings.HasPrefix(raw, ";") {
		p.inText = true
		p.textBuf.WriteString(strings.TrimSpace(raw[1:]))
		return nil
	}

	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	switch {
	case strings.HasPrefix(line, "data_"):
		if p.inBlock {
			// Second block: stop, this reader keeps the first.
			p.done = true
			return nil
		}
		p.inBlock = true
		p.doc.Name = line[len("data_"):]
		return nil

	case line == "loop_":
		p.flush()
		p.inLoop = true
		return nil
	}

	if strings.HasPrefix(line, "_") {
		if p.inLoop && len(p.loopRows) == 0 && len(p.loopVals) == 0 {
			p.loopCols = append(p.loopCols, line)
			// A loop header line may carry no value; anything after
			// the tag on the same line would be malformed, ignore it.
			return nil
		}
		// Key-value item ends any running loop.
		p.flush()
		fields := splitFields(line)
		if len(fields) == 1 {
			p.pendingItem = fields[0]
			return nil
		}
		p.item(fields[0], strings.Join(fields[1:], " "))
		return nil
	}

	// Bare values: either loop row data or the value of a pending item.
	for _, f := range splitFields(line) {
		p.value(f)
	}
	return nil
}

// value routes one parsed value to the pending item or the open loop row.
func (p *parser) value(v string) {
	if p.pendingItem != "" {
		p.item(p.pendingItem, v)
		p.pendingItem = ""
		return
	}
	if p.inLoop {
		p.loopVals = append(p.loopVals, v)
		if len(p.loopVals) == len(p.loopCols) {
			p.loopRows = append(p.loopRows, p.loopVals)
			p.loopVals = nil
		}
	}
}

// item records one "_category.name value" pair, merging consecutive
// items of the same category into a single-row category.
// Values arrive already unquoted via splitFields or text blocks.
func (p *parser) item(tag, value string) {
	cat, col := splitTag(tag)
	if cat == "" {
		return
	}

	last := p.lastCategory()
	if last == nil || last.Name != cat || len(last.Rows) != 1 {
		last = &Category{Name: cat, Rows: [][]string{nil}}
		p.doc.Categories = append(p.doc.Categories, last)
	}
	last.Columns = append(last.Columns, col)
	last.Rows[0] = append(last.Rows[0], value)
}

func (p *parser) lastCategory() *Category {
	if len(p.doc.Categories) == 0 {
		return nil
	}
	return p.doc.Categories[len(p.doc.Categories)-1]
}

// flush closes an open loop into a category.
func (p *parser) flush() {
	if !p.inLoop {
		return
	}
	p.inLoop = false
	if len(p.loopCols) == 0 {
		return
	}
	cat, _ := splitTag(p.loopCols[0])
	c := &Category{Name: cat}
	for _, full := range p.loopCols {
		_, col := splitTag(full)
		c.Columns = append(c.Columns, col)
	}
	c.Rows = p.loopRows
	p.doc.Categories = append(p.doc.Categories, c)
	p.loopCols, p.loopRows, p.loopVals = nil, nil, nil
}

// splitTag breaks "_pdbx_struct_assembly_gen.oper_expression" into
// category and item names.
func splitTag(tag string) (cat, item string) {
	tag = strings.TrimPrefix(tag, "_")
	dot := strings.IndexByte(tag, '.')
	if dot < 0 {
		return tag, ""
	}
	return tag[:dot], tag[dot+1:]
}

// splitFields splits a line into whitespace-separated fields,
// honoring single and double quotes. Quotes are stripped. The first
// field of an item line (the "_tag") is never quoted in practice.
func splitFields(line string) []string {
	var fields []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if q := line[i]; q == '\'' || q == '"' {
			j := i + 1
			for j < len(line) {
				// A closing quote must be followed by whitespace or EOL.
				if line[j] == q && (j+1 >= len(line) || line[j+1] == ' ' || line[j+1] == '\t') {
					break
				}
				j++
			}
			if j < len(line) {
				fields = append(fields, line[i+1:j])
				i = j + 1
				continue
			}
			// Unterminated quote: take the rest verbatim.
			fields = append(fields, line[i+1:])
			break
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		fields = append(fields, line[i:j])
		i = j
	}
	return fields
}
