package codec

import (
	"maps"
	"slices"

	"github.com/signadot/roff-format/go-roff/ir"
)

// Entry describes how one primitive type is laid out.
type Entry struct {
	Type    ir.Type
	Keyword string
	// Width is the size of one element in the binary encoding; 0 means the
	// element is a zero terminated string.
	Width int
}

var (
	entries = map[ir.Type]Entry{
		ir.CharType:   {Type: ir.CharType, Keyword: "char", Width: 0},
		ir.BoolType:   {Type: ir.BoolType, Keyword: "bool", Width: 1},
		ir.ByteType:   {Type: ir.ByteType, Keyword: "byte", Width: 1},
		ir.IntType:    {Type: ir.IntType, Keyword: "int", Width: 4},
		ir.FloatType:  {Type: ir.FloatType, Keyword: "float", Width: 4},
		ir.DoubleType: {Type: ir.DoubleType, Keyword: "double", Width: 8},
		ir.BytesType:  {Type: ir.BytesType, Keyword: "byte", Width: 1},
	}
	// bytes shares the byte keyword, reading it back yields byte.
	byKeyword = map[string]Entry{
		"char":   entries[ir.CharType],
		"bool":   entries[ir.BoolType],
		"byte":   entries[ir.ByteType],
		"int":    entries[ir.IntType],
		"float":  entries[ir.FloatType],
		"double": entries[ir.DoubleType],
	}
)

// Lookup maps a type keyword read from a document to its entry.
func Lookup(keyword string) (Entry, bool) {
	e, ok := byKeyword[keyword]
	return e, ok
}

// Of returns the entry for t.
func Of(t ir.Type) Entry {
	return entries[t]
}

// Width is the binary element width of t, 0 for char.
func Width(t ir.Type) int {
	return entries[t].Width
}

// Keywords returns the type keywords in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(byKeyword))
}

// IsKeyword reports whether w is a structural keyword or a type keyword.
func IsKeyword(w string) bool {
	switch w {
	case "tag", "endtag", "array":
		return true
	}
	_, ok := byKeyword[w]
	return ok
}
