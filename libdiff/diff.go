package libdiff

import (
	"strings"

	"github.com/signadot/roff-format/go-roff/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) String() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Change is one entry of a diff.
type Change struct {
	Op   Op
	Line string
}

func (c Change) String() string {
	return c.Op.String() + " " + c.Line
}

// Diff returns the entries of from and to in order, each marked as kept,
// deleted from from or inserted from to.
func Diff(from, to ir.Document) []Change {
	lineMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapLinesTo(lineMap, runeMap, Lines(from))
	toRunes := mapLinesTo(lineMap, runeMap, Lines(to))
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	var res []Change
	for i := range diffs {
		diff := &diffs[i]
		var op Op
		switch diff.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, r := range diff.Text {
			res = append(res, Change{Op: op, Line: runeMap[r]})
		}
	}
	return res
}

// Changed reports whether any change is not Equal.
func Changed(cs []Change) bool {
	for _, c := range cs {
		if c.Op != Equal {
			return true
		}
	}
	return false
}

// Lines renders doc one entry per line.
func Lines(doc ir.Document) []string {
	var res []string
	for i := range doc {
		tag := &doc[i]
		res = append(res, "tag "+tag.Name)
		for _, k := range tag.Keys {
			res = append(res, "  "+k.Name+" "+k.Value.String())
		}
	}
	return res
}

// Format renders changes as a unified style listing.
func Format(cs []Change) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func mapLinesTo(m map[string]rune, im map[rune]string, lines []string) []rune {
	rs := make([]rune, len(lines))
	for i, ln := range lines {
		r, ok := m[ln]
		if !ok {
			// skip the surrogate range, which does not survive rune to
			// string conversion
			r = rune(len(m))
			if r >= 0xD800 {
				r += 0x800
			}
			m[ln] = r
			im[r] = ln
		}
		rs[i] = r
	}
	return rs
}
