package parse

import (
	"fmt"
	"io"
	"iter"

	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/debug"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/token"
)

type state int

const (
	stateTags state = iota
	stateKeys
	stateDone
	stateClosed
)

func (s state) String() string {
	return map[state]string{
		stateTags:   "awaiting tag",
		stateKeys:   "in tag",
		stateDone:   "done",
		stateClosed: "closed",
	}[s]
}

// Parser is a forward only cursor over the tags of one ROFF document.
// It is not safe for concurrent use.
type Parser struct {
	lex   token.Lexer
	opts  parseOpts
	order codec.Order
	state state
	err   error

	// gen identifies the current tag; a TagReader with another gen is stale.
	gen  int
	tag  *TagReader
	ntag int

	sawFiledata bool
	sawSwapTest bool
}

// NewParser reads the header from r and returns a parser positioned before
// the first tag.
func NewParser(r io.Reader, opts ...ParseOption) (*Parser, error) {
	p := &Parser{opts: parseOpts{order: codec.Native}}
	for _, opt := range opts {
		opt(&p.opts)
	}
	p.order = p.opts.order
	lex, err := token.NewLexer(r)
	if err != nil {
		return nil, err
	}
	p.lex = lex
	if debug.Parse() {
		debug.Logf("parse: %s document, byte order %s\n", lex.Format(), p.order)
	}
	return p, nil
}

func (p *Parser) Format() format.Format { return p.lex.Format() }

// ByteOrder is the order binary values are currently decoded under.
func (p *Parser) ByteOrder() codec.Order { return p.order }

// Offset is the number of bytes consumed so far, header included.
func (p *Parser) Offset() int64 { return p.lex.Offset() }

// Err returns the error which stopped the parser, if any.
func (p *Parser) Err() error { return p.err }

// Tag returns the reader for the current tag, or nil if Next has not
// returned true.
func (p *Parser) Tag() *TagReader {
	if p.state != stateKeys {
		return nil
	}
	return p.tag
}

// Close ends the traversal. It does not close the underlying reader.
func (p *Parser) Close() error {
	p.state = stateClosed
	p.tag = nil
	return nil
}

// Next advances to the next tag. It returns false at the eof tag or on
// error; Err tells them apart. Reaching the end of input before the eof tag
// is an error.
func (p *Parser) Next() bool {
	if p.err != nil {
		return false
	}
	switch p.state {
	case stateClosed:
		p.fail(&ir.UsageError{Pos: ir.Pos{Offset: -1}, Msg: "Next called after Close"})
		return false
	case stateDone:
		return false
	case stateKeys:
		if err := p.leaveTag(); err != nil {
			p.fail(err)
			return false
		}
	}
	p.gen++
	p.tag = nil

	tok, err := p.lex.Word()
	if err == io.EOF {
		p.fail(&ir.FormatError{Pos: ir.Pos{Offset: p.lex.Offset()}, Msg: "missing eof tag"})
		return false
	}
	if err != nil {
		p.fail(err)
		return false
	}
	if !tok.Is("tag") {
		p.fail(&ir.FormatError{Pos: ir.Pos{Offset: tok.Offset}, Msg: fmt.Sprintf("expected tag, got %q", tok.Bytes)})
		return false
	}
	name, err := p.name("tag name")
	if err != nil {
		p.fail(err)
		return false
	}
	if name == ir.EOFTag {
		if err := p.eof(); err != nil {
			p.fail(err)
			return false
		}
		p.state = stateDone
		return false
	}
	if err := p.checkTag(name, tok.Offset); err != nil {
		p.fail(err)
		return false
	}
	if debug.Parse() {
		debug.Logf("parse: tag %q at offset %d\n", name, tok.Offset)
	}
	p.ntag++
	p.tag = &TagReader{p: p, gen: p.gen, name: name}
	p.state = stateKeys
	return true
}

// Tags adapts Next and Tag to a range over function. A final error, if any,
// is yielded with a nil tag.
func (p *Parser) Tags() iter.Seq2[*TagReader, error] {
	return func(yield func(*TagReader, error) bool) {
		for p.Next() {
			if !yield(p.tag, nil) {
				return
			}
		}
		if p.err != nil {
			yield(nil, p.err)
		}
	}
}

func (p *Parser) checkTag(name string, off int64) error {
	if name == ir.FiledataTag {
		if p.sawFiledata {
			return &ir.FormatError{Pos: ir.Pos{Offset: off, Tag: name}, Msg: "duplicate filedata tag"}
		}
		p.sawFiledata = true
		if p.ntag != 0 {
			return &ir.FormatError{Pos: ir.Pos{Offset: off, Tag: name}, Msg: "filedata must be the first tag"}
		}
		return nil
	}
	if p.ntag == 0 && p.lex.Format() == format.BinaryFormat {
		p.warn(fmt.Sprintf("first tag is %q, not %s: byte order not verified", name, ir.FiledataTag))
	}
	return nil
}

// eof reads the rest of the eof tag and checks nothing follows it.
func (p *Parser) eof() error {
	tok, err := p.word("endtag")
	if err != nil {
		return ir.Locate(err, ir.EOFTag, "")
	}
	if !tok.Is("endtag") {
		return &ir.FormatError{Pos: ir.Pos{Offset: tok.Offset, Tag: ir.EOFTag}, Msg: "eof tag must have no keys"}
	}
	if debug.Parse() {
		debug.Logf("parse: eof at offset %d\n", tok.Offset)
	}
	return p.lex.End()
}

// leaveTag moves past the current tag, skipping its keys unless strict.
func (p *Parser) leaveTag() error {
	t := p.tag
	if t.done {
		return nil
	}
	if p.opts.strict {
		return &ir.UsageError{
			Pos: ir.Pos{Offset: p.lex.Offset(), Tag: t.name},
			Msg: "tag not drained: consume its keys or call Skip before advancing",
		}
	}
	return t.drain()
}

func (p *Parser) endTag(t *TagReader) error {
	if t.name == ir.FiledataTag && !p.sawSwapTest {
		return &ir.FormatError{
			Pos: ir.Pos{Offset: p.lex.Offset(), Tag: t.name},
			Msg: "filedata tag has no " + ir.ByteswapTestKey,
		}
	}
	t.done = true
	p.state = stateTags
	return nil
}

func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
		if debug.Parse() {
			debug.Logf("parse: %v\n", err)
		}
	}
}

func (p *Parser) warn(msg string) {
	if debug.Parse() {
		debug.Logf("parse: warning: %s\n", msg)
	}
	if p.opts.onWarning != nil {
		p.opts.onWarning(msg)
	}
}

// word reads a word the grammar requires, what naming it for truncation.
func (p *Parser) word(what string) (token.Token, error) {
	tok, err := p.lex.Word()
	if err == io.EOF {
		return tok, &ir.TruncationError{Pos: ir.Pos{Offset: p.lex.Offset()}, Expected: what}
	}
	return tok, err
}

func (p *Parser) name(what string) (string, error) {
	tok, err := p.word(what)
	if err != nil {
		return "", err
	}
	if len(tok.Bytes) == 0 {
		return "", &ir.FormatError{Pos: ir.Pos{Offset: tok.Offset}, Msg: "empty " + what}
	}
	return tok.String(), nil
}
