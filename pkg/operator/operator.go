// Package operator parses assembly operator expressions and matches
// them against symmetry-operator coordinates.
//
// An operator expression is the compact grammar mmCIF uses in
// pdbx_struct_assembly_gen.oper_expression: one parenthesized group
// per operator axis, each group a comma list of tokens where a
// numeric "a-b" token stands for the run a..b. "(X0)(1-5)" means
// axis 1 ∈ {X0} and axis 2 ∈ {1,2,3,4,5}.
//
// A coordinate is the composite struct_oper_id of one symmetry copy,
// components joined with "x" (e.g. "2x61" = operator 2 then 61).
package operator

import (
	"strconv"
	"strings"
)

// Parse expands an operator expression into one token set per axis.
// The parser never fails: malformed range tokens (inverted or
// non-numeric bounds) simply contribute no tokens, and an expression
// without parentheses is treated as a single axis.
func Parse(expr string) [][]string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}

	groups := splitGroups(expr)
	axes := make([][]string, 0, len(groups))
	for _, g := range groups {
		var tokens []string
		for _, tok := range strings.Split(g, ",") {
			tokens = append(tokens, expandToken(strings.TrimSpace(tok))...)
		}
		axes = append(axes, tokens)
	}
	return axes
}

// splitGroups pulls out the parenthesized groups of an expression,
// or returns the whole string as one group when it carries none.
func splitGroups(expr string) []string {
	if !strings.ContainsRune(expr, '(') {
		return []string{expr}
	}
	var groups []string
	for rest := expr; ; {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		close := strings.IndexByte(rest[open:], ')')
		if close < 0 {
			// Unterminated group: take what is there.
			groups = append(groups, rest[open+1:])
			break
		}
		groups = append(groups, rest[open+1:open+close])
		rest = rest[open+close+1:]
	}
	return groups
}

// expandToken expands a single token: "a-b" with numeric a <= b
// becomes the run a..b, anything else non-empty passes through as-is.
// A dash token with non-numeric or inverted bounds expands to nothing.
func expandToken(tok string) []string {
	if tok == "" {
		return nil
	}
	dash := strings.IndexByte(tok, '-')
	if dash < 0 {
		return []string{tok}
	}

	beg, errB := strconv.Atoi(tok[:dash])
	end, errE := strconv.Atoi(tok[dash+1:])
	if errB != nil || errE != nil || end < beg {
		return nil
	}
	out := make([]string, 0, end-beg+1)
	for i := beg; i <= end; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// SplitCoordinate splits a composite struct_oper_id into its
// per-axis components: "2x61" -> ["2", "61"]. Both the "x" join used
// by composed operator ids and "." are accepted as separators; axis
// tokens themselves are numeric or uppercase, so lowercase x is
// unambiguous.
func SplitCoordinate(coord string) []string {
	coord = strings.TrimSpace(coord)
	if coord == "" {
		return nil
	}
	return strings.FieldsFunc(coord, func(r rune) bool {
		return r == 'x' || r == '.'
	})
}

// Matches reports whether a coordinate is generated by the parsed
// expression: the coordinate must have exactly one component per
// axis, and each axis token set must contain its component.
func Matches(axes [][]string, coord string) bool {
	parts := SplitCoordinate(coord)
	if len(parts) == 0 || len(parts) != len(axes) {
		return false
	}
	for i, p := range parts {
		if !contains(axes[i], p) {
			return false
		}
	}
	return true
}

func contains(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}
