package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/debug"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/token"
)

// TagReader is a cursor over the keys of one tag. It shares its parser's
// token stream and is only valid until the parser advances.
type TagReader struct {
	p    *Parser
	gen  int
	name string

	key  ir.TagKey
	curr string
	done bool
	err  error

	// span is the last binary fixed-width array read, until the next word.
	span *arraySpan
}

type arraySpan struct {
	key    string
	typ    ir.Type
	n      int
	offset int64
	data   []byte
}

func (t *TagReader) Name() string { return t.name }

// Key returns the key Next moved to.
func (t *TagReader) Key() ir.TagKey { return t.key }

// Err returns the error which stopped Next, if any.
func (t *TagReader) Err() error { return t.err }

// Next advances to the next key. It returns false at endtag or on error.
func (t *TagReader) Next() bool {
	if t.err != nil {
		return false
	}
	if err := t.check(); err != nil {
		t.err = err
		return false
	}
	if t.done {
		return false
	}
	k, ok, err := t.read(false)
	if err != nil {
		t.err = err
		t.p.fail(err)
		return false
	}
	if !ok {
		return false
	}
	t.key = k
	return true
}

// Keys adapts Next and Key to a range over function. A final error, if any,
// is yielded with a zero key.
func (t *TagReader) Keys() iter.Seq2[ir.TagKey, error] {
	return func(yield func(ir.TagKey, error) bool) {
		for t.Next() {
			if !yield(t.key, nil) {
				return
			}
		}
		if t.err != nil {
			yield(ir.TagKey{}, t.err)
		}
	}
}

// Skip discards the remaining keys of the tag.
func (t *TagReader) Skip() error {
	if t.err != nil {
		return t.err
	}
	if err := t.check(); err != nil {
		t.err = err
		return err
	}
	if err := t.drain(); err != nil {
		t.err = err
		t.p.fail(err)
		return err
	}
	return nil
}

// Collect reads the remaining keys of the tag.
func (t *TagReader) Collect() (ir.Tag, error) {
	res := ir.Tag{Name: t.name}
	for t.Next() {
		res.Keys = append(res.Keys, t.key)
	}
	return res, t.err
}

func (t *TagReader) check() error {
	if t.gen != t.p.gen || t.p.state == stateClosed {
		return &ir.UsageError{
			Pos: ir.Pos{Offset: -1, Tag: t.name},
			Msg: fmt.Sprintf("tag reader used after parser advanced (parser %s)", t.p.state),
		}
	}
	return nil
}

func (t *TagReader) drain() error {
	for !t.done {
		if _, _, err := t.read(true); err != nil {
			return err
		}
	}
	return nil
}

// read reads one key, or the endtag. With discard set, values are framed
// but not decoded.
func (t *TagReader) read(discard bool) (ir.TagKey, bool, error) {
	t.curr = ""
	k, ok, err := t.readKey(discard)
	if err != nil {
		return k, false, ir.Locate(err, t.name, t.curr)
	}
	if !ok {
		if err := t.p.endTag(t); err != nil {
			return k, false, err
		}
		if debug.Parse() {
			debug.Logf("parse: endtag %q\n", t.name)
		}
	}
	return k, ok, nil
}

func (t *TagReader) readKey(discard bool) (ir.TagKey, bool, error) {
	p := t.p
	span := t.span
	t.span = nil
	tok, err := p.word("key or endtag")
	if err != nil {
		if span != nil && errors.Is(err, ir.ErrTruncated) {
			return ir.TagKey{}, false, t.overrun(span, err)
		}
		return ir.TagKey{}, false, err
	}
	if span != nil && !tok.Is("endtag") && !tok.Is("array") && !isType(tok.String()) {
		return ir.TagKey{}, false, t.overrun(span, &ir.FormatError{
			Pos: ir.Pos{Offset: tok.Offset},
			Msg: fmt.Sprintf("unexpected %q after array data", tok.String()),
		})
	}
	if tok.Is("endtag") {
		return ir.TagKey{}, false, nil
	}
	array := tok.Is("array")
	if array {
		if tok, err = p.word("array type"); err != nil {
			return ir.TagKey{}, false, err
		}
	}
	kw := tok.String()
	e, ok := codec.Lookup(kw)
	if !ok {
		if codec.IsKeyword(kw) {
			return ir.TagKey{}, false, &ir.FormatError{
				Pos: ir.Pos{Offset: tok.Offset},
				Msg: fmt.Sprintf("unexpected %q where a key type was expected", kw),
			}
		}
		return ir.TagKey{}, false, &ir.UnsupportedTypeError{
			Pos:    ir.Pos{Offset: tok.Offset},
			Name:   kw,
			Reason: "unknown type keyword",
		}
	}
	name, err := p.name("key name")
	if err != nil {
		return ir.TagKey{}, false, err
	}
	t.curr = name

	swapTest := t.name == ir.FiledataTag && name == ir.ByteswapTestKey && !p.sawSwapTest
	if swapTest && (array || e.Type != ir.IntType) {
		return ir.TagKey{}, false, &ir.FormatError{
			Pos: ir.Pos{Offset: tok.Offset},
			Msg: ir.ByteswapTestKey + " must be a scalar int",
		}
	}

	var v ir.Value
	if array {
		v, err = t.readArray(e.Type, discard)
	} else if swapTest {
		v, err = t.readSwapTest()
	} else {
		v, _, err = t.readScalar(e.Type, discard)
	}
	if err != nil {
		return ir.TagKey{}, false, err
	}
	if debug.Parse() {
		debug.Logf("parse: key %q %v\n", name, v)
	}
	return ir.Key(name, v), true, nil
}

func (t *TagReader) readScalar(typ ir.Type, discard bool) (ir.Value, token.Token, error) {
	p := t.p
	tok, err := p.lex.Value(typ)
	if err == io.EOF {
		return ir.Value{}, tok, &ir.TruncationError{Pos: ir.Pos{Offset: p.lex.Offset()}, Expected: typ.Keyword() + " value"}
	}
	if err != nil || discard {
		return ir.Value{}, tok, err
	}
	v, err := t.decode(typ, tok)
	return v, tok, err
}

func (t *TagReader) decode(typ ir.Type, tok token.Token) (ir.Value, error) {
	var (
		v   ir.Value
		err error
	)
	if t.p.lex.Format() == format.BinaryFormat {
		v, err = codec.DecodeBinary(typ, tok.Bytes, t.p.order)
	} else {
		if typ == ir.CharType && tok.Kind != token.KString {
			return ir.Value{}, &ir.FormatError{
				Pos: ir.Pos{Offset: tok.Offset},
				Msg: fmt.Sprintf("unquoted char value %q", tok.String()),
			}
		}
		if typ != ir.CharType && tok.Kind == token.KString {
			return ir.Value{}, &ir.FormatError{
				Pos: ir.Pos{Offset: tok.Offset},
				Msg: "quoted string where a " + typ.Keyword() + " value was expected",
			}
		}
		v, err = codec.DecodeText(typ, tok.Bytes)
	}
	if err != nil {
		return ir.Value{}, &ir.FormatError{Pos: ir.Pos{Offset: tok.Offset}, Msg: "bad " + typ.Keyword() + " value", Err: err}
	}
	return v, nil
}

// readSwapTest reads filedata.byteswaptest and settles the byte order for
// the rest of the document.
func (t *TagReader) readSwapTest() (ir.Value, error) {
	p := t.p
	v, tok, err := t.readScalar(ir.IntType, false)
	if err != nil {
		return v, err
	}
	p.sawSwapTest = true
	if p.lex.Format() != format.BinaryFormat {
		return v, nil
	}
	if i, _ := v.Int(); i == 1 {
		return v, nil
	}
	swapped := codec.Swapped(p.order)
	i, err := codec.DecodeInt32(tok.Bytes, swapped)
	if err != nil {
		return ir.Value{}, err
	}
	if i != 1 {
		return ir.Value{}, &ir.FormatError{
			Pos: ir.Pos{Offset: tok.Offset},
			Msg: fmt.Sprintf("%s is not 1 under either byte order (bytes % x)", ir.ByteswapTestKey, tok.Bytes),
		}
	}
	if debug.Parse() {
		debug.Logf("parse: byteswaptest: byte order %s -> %s\n", p.order, swapped)
	}
	p.order = swapped
	return ir.FromInt(1), nil
}

func (t *TagReader) readArray(typ ir.Type, discard bool) (ir.Value, error) {
	p := t.p
	lv, _, err := t.readScalar(ir.IntType, false)
	if err != nil {
		return ir.Value{}, err
	}
	n32, _ := lv.Int()
	if n32 < 0 {
		return ir.Value{}, &ir.FormatError{Pos: ir.Pos{Offset: p.lex.Offset()}, Msg: fmt.Sprintf("negative array length %d", n32)}
	}
	n := int(n32)
	if typ != ir.CharType && p.lex.Format() == format.BinaryFormat {
		tok, err := p.lex.Span(typ, n)
		if err != nil {
			return ir.Value{}, err
		}
		t.span = &arraySpan{key: t.curr, typ: typ, n: n, offset: tok.Offset, data: tok.Bytes}
		if discard {
			return ir.Value{}, nil
		}
		v, err := codec.DecodeBinaryArray(typ, tok.Bytes, n, p.order)
		if err != nil {
			return ir.Value{}, &ir.FormatError{Pos: ir.Pos{Offset: tok.Offset}, Msg: "bad array " + typ.Keyword() + " data", Err: err}
		}
		return v, nil
	}

	// char arrays in either encoding, and every ASCII array, element by
	// element
	var (
		a     *codec.TextArray
		chars []string
	)
	if typ == ir.CharType {
		chars = make([]string, 0, min(n, 1<<16))
	} else {
		a = codec.NewTextArray(typ, n)
	}
	for i := range n {
		tok, err := p.lex.Value(typ)
		if err == io.EOF {
			err = &ir.TruncationError{Pos: ir.Pos{Offset: p.lex.Offset()}, Expected: "array element"}
		}
		if err != nil {
			var te *ir.TruncationError
			if errors.As(err, &te) {
				return ir.Value{}, t.spanErr(typ, n, i, err)
			}
			return ir.Value{}, err
		}
		if discard {
			continue
		}
		if tok.Kind == token.KWord && codec.IsKeyword(tok.String()) && p.lex.Format() == format.ASCIIFormat {
			return ir.Value{}, t.spanErr(typ, n, i, nil)
		}
		if typ == ir.CharType {
			v, err := t.decode(typ, tok)
			if err != nil {
				return ir.Value{}, err
			}
			s, _ := v.Char()
			chars = append(chars, s)
			continue
		}
		if tok.Kind == token.KString {
			return ir.Value{}, &ir.FormatError{
				Pos: ir.Pos{Offset: tok.Offset},
				Msg: "quoted string where a " + typ.Keyword() + " element was expected",
			}
		}
		if err := a.Append(tok.Bytes); err != nil {
			return ir.Value{}, &ir.FormatError{Pos: ir.Pos{Offset: tok.Offset}, Msg: "bad array " + typ.Keyword() + " element", Err: err}
		}
	}
	if discard {
		return ir.Value{}, nil
	}
	if typ == ir.CharType {
		return ir.FromChars(chars), nil
	}
	return a.Value(), nil
}

func (t *TagReader) spanErr(typ ir.Type, declared, found int, cause error) error {
	return &ir.ArraySpanError{
		Pos:      ir.Pos{Offset: t.p.lex.Offset()},
		Type:     typ,
		Declared: declared,
		Found:    found,
		Err:      cause,
	}
}

// overrun reports a binary array whose declared length ran past its data
// into the structure which follows it.
func (t *TagReader) overrun(s *arraySpan, cause error) error {
	return &ir.ArraySpanError{
		Pos:      ir.Pos{Offset: s.offset, Tag: t.name, Key: s.key},
		Type:     s.typ,
		Declared: s.n,
		Found:    spanFound(s.data, codec.Width(s.typ)),
		Err:      cause,
	}
}

// spanFound guesses how many elements of data are real: the index of the
// first element boundary at which a structural word begins, or -1.
func spanFound(data []byte, w int) int {
	for i := 0; i*w < len(data); i++ {
		if startsWord(data[i*w:]) {
			return i
		}
	}
	return -1
}

func startsWord(d []byte) bool {
	for _, kw := range append([]string{"endtag", "array"}, codec.Keywords()...) {
		word := []byte(kw + "\x00")
		if bytes.HasPrefix(d, word) || (len(d) < len(word) && bytes.HasPrefix(word, d)) {
			return true
		}
	}
	return false
}

func isType(w string) bool {
	_, ok := codec.Lookup(w)
	return ok
}
