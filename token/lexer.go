package token

import (
	"io"

	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

// Lexer produces ROFF tokens from a byte stream, one at a time, on demand.
// The parser drives it: binary value bytes may contain anything, including
// zero bytes, so only the caller knows whether a word, a value of some type,
// or a span of array elements comes next.
//
// Word and Value return io.EOF, and nothing else, when the input ends before
// a token starts. A token cut short by the end of input is a
// *ir.TruncationError.
type Lexer interface {
	Format() format.Format
	// Word reads the next keyword or name. Comments before it are skipped.
	Word() (Token, error)
	// Value reads one scalar value of type t. In ASCII this may return a
	// token of a different kind than t calls for; the caller checks.
	Value(t ir.Type) (Token, error)
	// Span reads the fixed width elements of an n element array of type t
	// in one token. Binary only; ASCII arrays are read with Value. A short
	// span is an *ir.ArraySpanError.
	Span(t ir.Type, n int) (Token, error)
	// End checks that nothing but comments and whitespace remains.
	End() error
	// Offset is the number of bytes consumed so far.
	Offset() int64
}

// NewLexer reads the header of a ROFF document from r and returns the lexer
// for its body.
func NewLexer(r io.Reader) (Lexer, error) {
	src := newSource(r)
	f, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	switch f {
	case format.BinaryFormat:
		return &BinaryLexer{src: src}, nil
	default:
		return &ASCIILexer{src: src}, nil
	}
}

// Detect reports the encoding of a document from its first bytes without
// consuming them.
func Detect(r interface{ Peek(int) ([]byte, error) }) (format.Format, error) {
	d, err := r.Peek(8)
	if len(d) < 8 {
		return 0, &ir.FormatError{Pos: ir.Pos{Offset: 0}, Msg: "missing roff header", Err: err}
	}
	f, ok := format.FromHeader(string(d))
	if !ok {
		return 0, &ir.FormatError{Pos: ir.Pos{Offset: 0}, Msg: "bad roff header " + quoteBytes(d)}
	}
	return f, nil
}

func readHeader(src *source) (format.Format, error) {
	f, err := Detect(src.r)
	if err != nil {
		return 0, err
	}
	src.readFull(8)
	switch f {
	case format.BinaryFormat:
		b, err := src.readByte()
		if err != nil {
			return 0, &ir.TruncationError{Pos: ir.Pos{Offset: src.off}, Expected: "delimiter after roff-bin"}
		}
		if b != 0 {
			return 0, &ir.FormatError{Pos: ir.Pos{Offset: src.off - 1}, Msg: "expected zero byte after roff-bin"}
		}
	case format.ASCIIFormat:
		b, err := src.peekByte()
		if err == nil && !isSpace(b) && b != '#' {
			return 0, &ir.FormatError{Pos: ir.Pos{Offset: src.off}, Msg: "expected delimiter after roff-asc"}
		}
	}
	return f, nil
}
