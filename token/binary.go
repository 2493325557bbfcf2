package token

import (
	"io"
	"strconv"

	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

// BinaryLexer tokenizes the body of a roff-bin document. Words and strings
// are zero terminated; values of the other types are fixed width and read
// without a delimiter. Comments run from '#' to '#' followed by a zero byte
// and may only appear where a word is expected.
type BinaryLexer struct {
	src *source
}

// NewBinaryLexer returns a lexer for a binary document body, i.e. whatever
// follows "roff-bin\x00".
func NewBinaryLexer(r io.Reader) *BinaryLexer {
	return &BinaryLexer{src: newSource(r)}
}

func (l *BinaryLexer) Format() format.Format { return format.BinaryFormat }

func (l *BinaryLexer) Offset() int64 { return l.src.off }

// comments consumes any comments at the current position.
func (l *BinaryLexer) comments() error {
	for {
		b, err := l.src.peekByte()
		if err != nil {
			return err
		}
		if b != '#' {
			return nil
		}
		start := l.src.off
		l.src.readByte()
		if _, err := l.src.readThrough('#'); err != nil {
			if err == io.EOF {
				return &ir.TruncationError{Pos: ir.Pos{Offset: start}, Expected: "end of comment"}
			}
			return err
		}
		d, err := l.src.readByte()
		if err == io.EOF {
			return &ir.TruncationError{Pos: ir.Pos{Offset: l.src.off}, Expected: "zero byte after comment"}
		}
		if err != nil {
			return err
		}
		if d != 0 {
			return &ir.FormatError{Pos: ir.Pos{Offset: l.src.off - 1}, Msg: "expected zero byte after comment"}
		}
	}
}

func (l *BinaryLexer) Word() (Token, error) {
	if err := l.comments(); err != nil {
		return Token{}, err
	}
	return l.str(KWord, "zero terminated word")
}

func (l *BinaryLexer) str(kind Kind, what string) (Token, error) {
	start := l.src.off
	d, err := l.src.readThrough(0)
	if err == io.EOF {
		if len(d) == 0 && kind == KWord {
			return Token{}, io.EOF
		}
		return Token{}, &ir.TruncationError{Pos: ir.Pos{Offset: start}, Expected: what}
	}
	if err != nil {
		return Token{}, err
	}
	tok := Token{Kind: kind, Offset: start, Bytes: d}
	trace(&tok)
	return tok, nil
}

func (l *BinaryLexer) Value(t ir.Type) (Token, error) {
	if t == ir.CharType {
		return l.str(KString, "zero terminated string")
	}
	w := codec.Width(t)
	start := l.src.off
	d, err := l.src.readFull(w)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return Token{}, &ir.TruncationError{
			Pos:      ir.Pos{Offset: start},
			Expected: t.Keyword() + " value of " + strconv.Itoa(w) + " bytes",
		}
	default:
		return Token{}, err
	}
	tok := Token{Kind: KRaw, Offset: start, Bytes: d}
	trace(&tok)
	return tok, nil
}

func (l *BinaryLexer) Span(t ir.Type, n int) (Token, error) {
	w := codec.Width(t)
	if w == 0 {
		return Token{}, &ir.FormatError{Pos: ir.Pos{Offset: l.src.off}, Msg: "char arrays have no fixed span"}
	}
	start := l.src.off
	d, err := l.src.readSpan(int64(n) * int64(w))
	switch err {
	case nil:
	case io.ErrUnexpectedEOF:
		return Token{}, &ir.ArraySpanError{
			Pos:      ir.Pos{Offset: start},
			Type:     t,
			Declared: n,
			Found:    len(d) / w,
			Err:      &ir.TruncationError{Pos: ir.Pos{Offset: l.src.off}, Expected: "array data"},
		}
	default:
		return Token{}, err
	}
	tok := Token{Kind: KRaw, Offset: start, Bytes: d}
	trace(&tok)
	return tok, nil
}

func (l *BinaryLexer) End() error {
	err := l.comments()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return &ir.FormatError{Pos: ir.Pos{Offset: l.src.off}, Msg: "trailing data after eof tag"}
}
