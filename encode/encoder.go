package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/debug"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

type encState int

const (
	encTags encState = iota
	encInTag
	encClosed
)

// Encoder writes the tags of one ROFF document to a writer, in order.
type Encoder struct {
	w        io.Writer
	format   format.Format
	order    codec.Order
	creator  string
	comments bool

	offset int64
	state  encState
	err    error

	tag         string
	ntag        int
	sawFiledata bool
	sawSwapTest bool
	sawEOF      bool

	buf []byte
}

// NewEncoder writes the document header to w and returns an encoder for the
// tags which follow.
func NewEncoder(w io.Writer, opts ...EncodeOption) (*Encoder, error) {
	e := &Encoder{
		w:        w,
		order:    codec.Native,
		creator:  DefaultCreator,
		comments: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if strings.ContainsAny(e.creator, "#\x00") {
		return nil, &ir.FormatError{Pos: ir.Pos{Offset: -1}, Msg: fmt.Sprintf("creator %q cannot be written in a comment", e.creator)}
	}
	e.buf = append(e.buf[:0], e.format.Header()...)
	if e.format.IsBinary() {
		e.buf = append(e.buf, 0)
	} else {
		e.buf = append(e.buf, '\n')
	}
	if e.comments {
		e.comment("ROFF file")
		e.comment("Creator: " + e.creator)
	}
	if err := e.flush(); err != nil {
		return nil, err
	}
	if debug.Encode() {
		debug.Logf("encode: %s document, byte order %s\n", e.format, e.order)
	}
	return e, nil
}

// Offset is the number of bytes written so far.
func (e *Encoder) Offset() int64 { return e.offset }

func (e *Encoder) Format() format.Format { return e.format }

// BeginTag starts a tag. Tags cannot nest.
func (e *Encoder) BeginTag(name string) error {
	if e.err != nil {
		return e.err
	}
	switch e.state {
	case encInTag:
		return e.fail(&ir.UsageError{Pos: e.pos(""), Msg: fmt.Sprintf("BeginTag %q inside another tag", name)})
	case encClosed:
		return e.fail(&ir.UsageError{Pos: e.pos(""), Msg: "BeginTag after Close"})
	}
	if e.sawEOF {
		return e.fail(&ir.FormatError{Pos: ir.Pos{Offset: e.offset, Tag: name}, Msg: "tag after eof tag"})
	}
	if err := e.checkName(name, ir.Pos{Offset: e.offset, Tag: name}); err != nil {
		return e.fail(err)
	}
	e.tag = name
	e.state = encInTag
	switch name {
	case ir.EOFTag:
		// written by Close
		e.sawEOF = true
		return nil
	case ir.FiledataTag:
		if e.sawFiledata {
			return e.fail(&ir.FormatError{Pos: e.pos(""), Msg: "duplicate filedata tag"})
		}
		if e.ntag != 0 {
			return e.fail(&ir.FormatError{Pos: e.pos(""), Msg: "filedata must be the first tag"})
		}
		e.sawFiledata = true
	}
	if debug.Encode() {
		debug.Logf("encode: tag %q at offset %d\n", name, e.offset)
	}
	e.ntag++
	e.buf = e.buf[:0]
	e.words("tag", name)
	e.newline()
	return e.flush()
}

// WriteKey writes one key of the current tag. Nothing is written if v
// cannot be encoded.
func (e *Encoder) WriteKey(name string, v ir.Value) error {
	if e.err != nil {
		return e.err
	}
	if e.state != encInTag {
		return e.fail(&ir.UsageError{Pos: ir.Pos{Offset: e.offset, Key: name}, Msg: "WriteKey outside of a tag"})
	}
	pos := e.pos(name)
	if e.tag == ir.EOFTag {
		return e.fail(&ir.FormatError{Pos: pos, Msg: "eof tag must have no keys"})
	}
	if err := e.checkName(name, pos); err != nil {
		return e.fail(err)
	}
	if !v.IsValid() {
		return e.fail(&ir.UnsupportedTypeError{Pos: pos, Value: v, Reason: "invalid value"})
	}
	if e.tag == ir.FiledataTag && name == ir.ByteswapTestKey && !e.sawSwapTest {
		if _, ok := v.Int(); !ok || v.IsArray() {
			return e.fail(&ir.FormatError{Pos: pos, Msg: ir.ByteswapTestKey + " must be a scalar int, got " + v.String()})
		}
		v = ir.FromInt(1)
		e.sawSwapTest = true
	}
	e.buf = e.buf[:0]
	if err := e.key(name, v); err != nil {
		e.buf = e.buf[:0]
		return e.fail(ir.Locate(err, e.tag, name))
	}
	if debug.Encode() {
		debug.Logf("encode: key %q %v\n", name, v)
	}
	return e.flush()
}

// WriteAny writes x under the type FromAny infers for it.
func (e *Encoder) WriteAny(name string, x any) error {
	v, err := ir.FromAny(x)
	if err != nil {
		return e.fail(ir.Locate(err, e.tag, name))
	}
	return e.WriteKey(name, v)
}

// EndTag ends the current tag.
func (e *Encoder) EndTag() error {
	if e.err != nil {
		return e.err
	}
	if e.state != encInTag {
		return e.fail(&ir.UsageError{Pos: e.pos(""), Msg: "EndTag outside of a tag"})
	}
	if e.tag == ir.EOFTag {
		e.state = encTags
		return nil
	}
	if e.tag == ir.FiledataTag && !e.sawSwapTest {
		if err := e.WriteKey(ir.ByteswapTestKey, ir.FromInt(1)); err != nil {
			return err
		}
	}
	e.state = encTags
	e.buf = e.buf[:0]
	e.words("endtag")
	e.newline()
	return e.flush()
}

// WriteTag writes a whole tag.
func (e *Encoder) WriteTag(t ir.Tag) error {
	if err := e.BeginTag(t.Name); err != nil {
		return err
	}
	for _, k := range t.Keys {
		if err := e.WriteKey(k.Name, k.Value); err != nil {
			return err
		}
	}
	return e.EndTag()
}

// Close ends any open tag and writes the eof tag. It does not close the
// underlying writer.
func (e *Encoder) Close() error {
	if e.state == encClosed {
		return e.err
	}
	if e.err != nil {
		e.state = encClosed
		return e.err
	}
	if e.state == encInTag {
		if err := e.EndTag(); err != nil {
			return err
		}
	}
	e.state = encClosed
	e.buf = e.buf[:0]
	e.words("tag", ir.EOFTag)
	e.newline()
	e.words("endtag")
	e.newline()
	if debug.Encode() {
		debug.Logf("encode: eof at offset %d\n", e.offset)
	}
	return e.flush()
}

func (e *Encoder) key(name string, v ir.Value) error {
	kw := v.WireType().Keyword()
	if !v.IsArray() {
		e.words(kw, name)
		return e.values(v)
	}
	e.words("array", kw, name)
	if e.format.IsBinary() {
		e.buf = e.order.AppendUint32(e.buf, uint32(v.Len()))
	} else {
		e.buf = append(e.buf, ' ')
		e.buf = strconv.AppendInt(e.buf, int64(v.Len()), 10)
		e.buf = append(e.buf, '\n')
	}
	return e.values(v)
}

func (e *Encoder) values(v ir.Value) error {
	if e.format.IsBinary() {
		var err error
		e.buf, err = codec.AppendBinary(e.buf, v, e.order)
		if err != nil {
			return &ir.FormatError{Pos: ir.Pos{Offset: e.offset}, Msg: "cannot encode " + v.WireType().Keyword() + " value", Err: err}
		}
		return nil
	}
	sep := "\n"
	if !v.IsArray() {
		e.buf = append(e.buf, ' ')
	}
	e.buf = codec.AppendText(e.buf, v, sep)
	return nil
}

// words appends structural words and names. In ASCII they are separated by
// spaces; the caller ends the line.
func (e *Encoder) words(ws ...string) {
	for i, w := range ws {
		if e.format.IsBinary() {
			e.buf = append(e.buf, w...)
			e.buf = append(e.buf, 0)
			continue
		}
		if i > 0 {
			e.buf = append(e.buf, ' ')
		}
		e.buf = append(e.buf, w...)
	}
}

func (e *Encoder) newline() {
	if e.format.IsASCII() {
		e.buf = append(e.buf, '\n')
	}
}

func (e *Encoder) comment(c string) {
	e.buf = append(e.buf, '#')
	e.buf = append(e.buf, c...)
	e.buf = append(e.buf, '#')
	if e.format.IsBinary() {
		e.buf = append(e.buf, 0)
	} else {
		e.buf = append(e.buf, '\n')
	}
}

func (e *Encoder) checkName(name string, pos ir.Pos) error {
	var bad string
	switch {
	case name == "":
		bad = "empty name"
	case e.format.IsBinary() && strings.IndexByte(name, 0) >= 0:
		bad = "name contains a zero byte"
	case e.format.IsASCII() && strings.ContainsFunc(name, isDelim):
		bad = "name contains whitespace or '#'"
	}
	if bad == "" {
		return nil
	}
	return &ir.FormatError{Pos: pos, Msg: fmt.Sprintf("%s: %q", bad, name)}
}

func isDelim(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '#', 0:
		return true
	}
	return false
}

func (e *Encoder) pos(key string) ir.Pos {
	return ir.Pos{Offset: e.offset, Tag: e.tag, Key: key}
}

func (e *Encoder) flush() error {
	n, err := e.w.Write(e.buf)
	e.offset += int64(n)
	e.buf = e.buf[:0]
	if err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *Encoder) fail(err error) error {
	if e.err == nil {
		e.err = err
	}
	return err
}

// Encode writes doc to w as a complete document.
func Encode(doc ir.Document, w io.Writer, opts ...EncodeOption) error {
	e, err := NewEncoder(w, opts...)
	if err != nil {
		return err
	}
	for i := range doc {
		if err := e.WriteTag(doc[i]); err != nil {
			return err
		}
	}
	return e.Close()
}
