package cif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes the document. Single-row categories come out as
// key-value items, everything else as loop_ tables. Values that need
// quoting are single-quoted; values containing newlines become
// semicolon text blocks.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	fmt.Fprintf(bw, "data_%s\n#\n", name)

	for _, c := range d.Categories {
		if len(c.Rows) == 1 {
			writeItems(bw, c)
		} else {
			writeLoop(bw, c)
		}
		bw.WriteString("#\n")
	}
	return bw.Flush()
}

func writeItems(w *bufio.Writer, c *Category) {
	width := 0
	for _, col := range c.Columns {
		if n := len(c.Name) + 1 + len(col); n > width {
			width = n
		}
	}
	for i, col := range c.Columns {
		v := ""
		if i < len(c.Rows[0]) {
			v = c.Rows[0][i]
		}
		tag := fmt.Sprintf("_%s.%s", c.Name, col)
		if strings.ContainsRune(v, '\n') {
			fmt.Fprintf(w, "%s\n;%s\n;\n", tag, v)
			continue
		}
		fmt.Fprintf(w, "%-*s %s\n", width+1, tag, quote(v))
	}
}

func writeLoop(w *bufio.Writer, c *Category) {
	w.WriteString("loop_\n")
	for _, col := range c.Columns {
		fmt.Fprintf(w, "_%s.%s\n", c.Name, col)
	}
	for _, row := range c.Rows {
		for i := range c.Columns {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(quote(v))
		}
		w.WriteByte('\n')
	}
}

// quote wraps a value in single quotes when it would not survive
// whitespace-splitting on read-back.
func quote(v string) string {
	if v == "" {
		return "."
	}
	if strings.ContainsAny(v, " \t'\"") || v[0] == '_' || v[0] == '#' {
		if strings.ContainsRune(v, '\'') {
			return `"` + v + `"`
		}
		return "'" + v + "'"
	}
	return v
}
