package token

import (
	"io"
	"strconv"

	"github.com/signadot/roff-format/go-roff/debug"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

// ASCIILexer tokenizes the body of a roff-asc document. Tokens are
// separated by whitespace; text between a pair of '#' is a comment; char
// values are double quoted with '\' escaping '"' and '\'.
type ASCIILexer struct {
	src *source
}

// NewASCIILexer returns a lexer for an ASCII document body, i.e. whatever
// follows the roff-asc header.
func NewASCIILexer(r io.Reader) *ASCIILexer {
	return &ASCIILexer{src: newSource(r)}
}

func (l *ASCIILexer) Format() format.Format { return format.ASCIIFormat }

func (l *ASCIILexer) Offset() int64 { return l.src.off }

// skip consumes whitespace and comments.
func (l *ASCIILexer) skip() error {
	for {
		b, err := l.src.readByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(b):
		case b == '#':
			start := l.src.off - 1
			if _, err := l.src.readThrough('#'); err != nil {
				if err == io.EOF {
					return &ir.TruncationError{Pos: ir.Pos{Offset: start}, Expected: "end of comment"}
				}
				return err
			}
		default:
			l.src.unreadByte()
			return nil
		}
	}
}

func (l *ASCIILexer) Word() (Token, error) {
	if err := l.skip(); err != nil {
		return Token{}, err
	}
	tok := Token{Kind: KWord, Offset: l.src.off}
	for {
		b, err := l.src.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if isSpace(b) || b == '#' {
			l.src.unreadByte()
			break
		}
		tok.Bytes = append(tok.Bytes, b)
	}
	trace(&tok)
	return tok, nil
}

func (l *ASCIILexer) Value(t ir.Type) (Token, error) {
	if err := l.skip(); err != nil {
		return Token{}, err
	}
	b, err := l.src.peekByte()
	if err != nil {
		return Token{}, err
	}
	if b != '"' {
		return l.Word()
	}
	return l.quoted()
}

func (l *ASCIILexer) quoted() (Token, error) {
	start := l.src.off
	l.src.readByte()
	tok := Token{Kind: KString, Offset: start}
	for {
		b, err := l.src.readByte()
		if err == io.EOF {
			return Token{}, &ir.TruncationError{Pos: ir.Pos{Offset: start}, Expected: "closing quote"}
		}
		if err != nil {
			return Token{}, err
		}
		switch b {
		case '"':
			if tok.Bytes == nil {
				tok.Bytes = []byte{}
			}
			trace(&tok)
			return tok, nil
		case '\\':
			n, err := l.src.peekByte()
			if err == nil && (n == '"' || n == '\\') {
				l.src.readByte()
				tok.Bytes = append(tok.Bytes, b, n)
				continue
			}
		}
		tok.Bytes = append(tok.Bytes, b)
	}
}

func (l *ASCIILexer) Span(t ir.Type, n int) (Token, error) {
	return Token{}, &ir.FormatError{
		Pos: ir.Pos{Offset: l.src.off},
		Msg: "array spans are only framed in binary documents",
	}
}

func (l *ASCIILexer) End() error {
	err := l.skip()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return &ir.FormatError{Pos: ir.Pos{Offset: l.src.off}, Msg: "trailing data after eof tag"}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func quoteBytes(d []byte) string {
	return strconv.Quote(string(d))
}

func trace(tok *Token) {
	if debug.Tokens() {
		debug.Logf("token %s\n", tok.Info())
	}
}
