package parse

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

// bin assembles a binary document body: strings are zero terminated,
// []byte is copied verbatim, int32 is little endian.
func bin(parts ...any) []byte {
	buf := []byte("roff-bin\x00")
	for _, p := range parts {
		switch x := p.(type) {
		case string:
			buf = append(buf, x...)
			buf = append(buf, 0)
		case []byte:
			buf = append(buf, x...)
		case int32:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(x))
		case float64:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		}
	}
	return buf
}

// show renders a document compactly for comparison.
func show(doc ir.Document) []string {
	var res []string
	for _, tag := range doc {
		res = append(res, "tag "+tag.Name)
		for _, k := range tag.Keys {
			res = append(res, "  "+k.Name+": "+k.Value.String())
		}
	}
	return res
}

const asciiDoc = `roff-asc
#ROFF file#
#Creator: test#
tag filedata
int byteswaptest 1
char filetype "generic"
endtag
tag dims
int nX 2
int nY 3
endtag
tag data
array float values 3
0.5 1 -2
array char names 3
"a" "b c" "say \"x\""
bool flag 1
byte b 7
double d 1e-3
array bool bs 2 0 1
endtag
tag eof
endtag
`

func TestParseASCII(t *testing.T) {
	doc, err := Parse(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"tag filedata",
		"  byteswaptest: int 1",
		`  filetype: char "generic"`,
		"tag dims",
		"  nX: int 2",
		"  nY: int 3",
		"tag data",
		"  values: array float 3 [0.5 1 -2]",
		`  names: array char 3 ["a" "b c" "say \"x\""]`,
		"  flag: bool 1",
		"  b: byte 7",
		"  d: double 0.001",
		"  bs: array bool 2 [0 1]",
	}
	if diff := cmp.Diff(want, show(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBinary(t *testing.T) {
	in := bin(
		"#ROFF file#",
		"tag", "filedata", "int", "byteswaptest", int32(1), "endtag",
		"tag", "t",
		"char", "s", "hello world",
		"double", "d", 2.5,
		"array", "int", "xs", int32(3), int32(0), int32(-1), int32(256),
		"array", "char", "cs", int32(2), "", "x",
		"array", "byte", "bs", int32(1), []byte{0},
		"bool", "on", []byte{1},
		"endtag",
		"tag", "eof", "endtag",
	)
	doc, err := Parse(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"tag filedata",
		"  byteswaptest: int 1",
		"tag t",
		`  s: char "hello world"`,
		"  d: double 2.5",
		"  xs: array int 3 [0 -1 256]",
		`  cs: array char 2 ["" "x"]`,
		"  bs: array byte 1 [0]",
		"  on: bool 1",
	}
	if diff := cmp.Diff(want, show(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLazyTraversal(t *testing.T) {
	p, err := NewParser(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()
	if p.Format() != format.ASCIIFormat {
		t.Errorf("format %v", p.Format())
	}
	var names []string
	for tag, err := range p.Tags() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, tag.Name())
		if tag.Name() != "dims" {
			// leave the other tags undrained
			continue
		}
		for k, err := range tag.Keys() {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			names = append(names, k.Name)
		}
	}
	want := []string{"filedata", "dims", "nX", "nY", "data"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("traversal mismatch (-want +got):\n%s", diff)
	}
	if p.Next() {
		t.Error("Next after eof should be false")
	}
	if err := p.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStrictDrain(t *testing.T) {
	p, err := NewParser(strings.NewReader(asciiDoc), StrictDrain())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Next() {
		t.Fatalf("expected a tag: %v", p.Err())
	}
	if err := p.Tag().Skip(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Next() {
		t.Fatalf("expected a tag after Skip: %v", p.Err())
	}
	tag := p.Tag()
	if !tag.Next() {
		t.Fatalf("expected a key: %v", tag.Err())
	}
	if p.Next() {
		t.Fatal("Next should fail on an undrained tag")
	}
	var ue *ir.UsageError
	if !errors.As(p.Err(), &ue) {
		t.Fatalf("expected usage error, got %v", p.Err())
	}
	if ue.Tag != "dims" {
		t.Errorf("usage error tag %q", ue.Tag)
	}
}

func TestStaleTagReader(t *testing.T) {
	p, err := NewParser(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Next()
	first := p.Tag()
	p.Next()
	if first.Next() {
		t.Fatal("stale tag reader should not advance")
	}
	if !errors.Is(first.Err(), ir.ErrUsage) {
		t.Errorf("expected usage error, got %v", first.Err())
	}
	if err := first.Skip(); !errors.Is(err, ir.ErrUsage) {
		t.Errorf("expected usage error from Skip, got %v", err)
	}
	// the parser itself is unaffected
	if tag, err := p.Tag().Collect(); err != nil || tag.Name != "dims" || len(tag.Keys) != 2 {
		t.Errorf("got %v, %v", tag, err)
	}

	p.Close()
	if p.Next() {
		t.Fatal("Next after Close")
	}
	if !errors.Is(p.Err(), ir.ErrUsage) {
		t.Errorf("expected usage error, got %v", p.Err())
	}
}

func TestMissingEOF(t *testing.T) {
	for name, in := range map[string][]byte{
		"ascii":  []byte("roff-asc\ntag t\nint x 1\nendtag\n"),
		"binary": bin("tag", "t", "int", "x", int32(1), "endtag"),
	} {
		_, err := Parse(bytes.NewReader(in))
		var fe *ir.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("%s: expected format error, got %v", name, err)
		}
		if !strings.Contains(fe.Msg, "missing eof") {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestTruncatedArray(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		key   string
		found int
	}{
		{"ascii", []byte("roff-asc\ntag grid\narray int cells 5\n1 2 3\nendtag\ntag eof\nendtag\n"), "cells", 3},
		{"binary at end", bin("tag", "grid", "array", "int", "cells", int32(5), int32(1), int32(2), int32(3)), "cells", 3},
		{"binary mid stream", bin("tag", "grid", "array", "int", "cells", int32(5), int32(1), int32(2), int32(3),
			"endtag", "tag", "eof", "endtag"), "cells", 3},
		{"binary doubles", bin("tag", "grid", "int", "n", int32(1), "array", "double", "xs", int32(4), 1.5, 2.5,
			"endtag", "tag", "eof", "endtag"), "xs", 2},
		{"binary before next key", bin("tag", "grid", "array", "int", "cells", int32(3), int32(1),
			"int", "n", int32(7), "endtag", "tag", "eof", "endtag"), "cells", 1},
	}
	for _, tt := range tests {
		_, err := Parse(bytes.NewReader(tt.in))
		var ase *ir.ArraySpanError
		if !errors.As(err, &ase) {
			t.Fatalf("%s: expected array span error, got %v", tt.name, err)
		}
		if ase.Tag != "grid" || ase.Key != tt.key {
			t.Errorf("%s: error at tag %q key %q", tt.name, ase.Tag, ase.Key)
		}
		if ase.Declared < tt.found || ase.Found != tt.found {
			t.Errorf("%s: declared %d found %d", tt.name, ase.Declared, ase.Found)
		}
	}

	// skipping the tag frames the array the same way
	p, err := NewParser(bytes.NewReader(tests[2].in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for p.Next() {
	}
	if !errors.Is(p.Err(), ir.ErrArraySpan) {
		t.Errorf("expected array span error, got %v", p.Err())
	}
}

func TestTruncatedCharArray(t *testing.T) {
	in := bin("tag", "t", "array", "char", "cs", int32(3), "a", "b")
	_, err := Parse(bytes.NewReader(in))
	var ase *ir.ArraySpanError
	if !errors.As(err, &ase) {
		t.Fatalf("expected array span error, got %v", err)
	}
	if ase.Found != 2 || !errors.Is(err, ir.ErrTruncated) {
		t.Errorf("got %v", err)
	}
}

func TestByteswap(t *testing.T) {
	be := binary.BigEndian
	var in []byte
	in = append(in, "roff-bin\x00tag\x00filedata\x00int\x00byteswaptest\x00"...)
	in = be.AppendUint32(in, 1)
	in = append(in, "int\x00n\x00"...)
	in = be.AppendUint32(in, 42)
	in = append(in, "endtag\x00tag\x00t\x00array\x00double\x00xs\x00"...)
	in = be.AppendUint32(in, 2)
	in = be.AppendUint64(in, math.Float64bits(1.5))
	in = be.AppendUint64(in, math.Float64bits(-3))
	in = append(in, "float\x00f\x00"...)
	in = be.AppendUint32(in, math.Float32bits(0.25))
	in = append(in, "endtag\x00tag\x00eof\x00endtag\x00"...)

	p, err := NewParser(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := Collect(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"tag filedata",
		"  byteswaptest: int 1",
		"  n: int 42",
		"tag t",
		"  xs: array double 2 [1.5 -3]",
		"  f: float 0.25",
	}
	if diff := cmp.Diff(want, show(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
	if p.ByteOrder() != binary.BigEndian {
		t.Errorf("byte order %v", p.ByteOrder())
	}
}

func TestByteswapBad(t *testing.T) {
	in := bin("tag", "filedata", "int", "byteswaptest", int32(2), "endtag", "tag", "eof", "endtag")
	_, err := Parse(bytes.NewReader(in))
	var fe *ir.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected format error, got %v", err)
	}
	if fe.Tag != "filedata" || fe.Key != "byteswaptest" {
		t.Errorf("got %v", err)
	}
}

func TestFiledataChecks(t *testing.T) {
	tests := map[string]string{
		"duplicate":   "tag filedata int byteswaptest 1 endtag tag filedata int byteswaptest 1 endtag tag eof endtag",
		"not first":   "tag t endtag tag filedata int byteswaptest 1 endtag tag eof endtag",
		"no swaptest": "tag filedata char filetype \"x\" endtag tag eof endtag",
		"not int":     "tag filedata double byteswaptest 1 endtag tag eof endtag",
		"array":       "tag filedata array int byteswaptest 1 1 endtag tag eof endtag",
	}
	for name, body := range tests {
		_, err := Parse(strings.NewReader("roff-asc " + body))
		if !errors.Is(err, ir.ErrFormat) {
			t.Errorf("%s: expected format error, got %v", name, err)
		}
	}
}

func TestFiledataWarning(t *testing.T) {
	var warnings []string
	in := bin("tag", "t", "endtag", "tag", "eof", "endtag")
	_, err := Parse(bytes.NewReader(in), OnWarning(func(m string) { warnings = append(warnings, m) }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "filedata") {
		t.Errorf("warnings %q", warnings)
	}

	warnings = nil
	_, err = Parse(strings.NewReader("roff-asc tag t endtag tag eof endtag"), OnWarning(func(m string) { warnings = append(warnings, m) }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ascii documents need no byteswaptest, got %q", warnings)
	}
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"unknown type", "tag t short x 1 endtag tag eof endtag", ir.ErrUnsupportedType},
		{"unknown type is format", "tag t short x 1 endtag tag eof endtag", ir.ErrFormat},
		{"keyword as type", "tag t tag x endtag tag eof endtag", ir.ErrFormat},
		{"not a tag", "int x 1 tag eof endtag", ir.ErrFormat},
		{"bad int", "tag t int x 1.5 endtag tag eof endtag", ir.ErrFormat},
		{"quoted int", `tag t int x "1" endtag tag eof endtag`, ir.ErrFormat},
		{"bad bool", "tag t bool x 2 endtag tag eof endtag", ir.ErrFormat},
		{"negative length", "tag t array int x -1 endtag tag eof endtag", ir.ErrFormat},
		{"eof with keys", "tag t endtag tag eof int x 1 endtag", ir.ErrFormat},
		{"trailing data", "tag eof endtag tag", ir.ErrFormat},
		{"truncated key", "tag t int x", ir.ErrTruncated},
		{"truncated string", `tag t char x "abc`, ir.ErrTruncated},
		{"short array", "tag t array int x 3 1 2 endtag tag eof endtag", ir.ErrArraySpan},
		{"unquoted char", "tag t char x endtag tag eof endtag", ir.ErrFormat},
		{"unquoted char element", `tag t array char x 2 "a" b endtag tag eof endtag`, ir.ErrFormat},
	}
	for _, tt := range tests {
		_, err := Parse(strings.NewReader("roff-asc\n" + tt.in))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse(strings.NewReader("roff-asc\ntag grid\nint nx 10\nint ny x\nendtag\ntag eof endtag\n"))
	var fe *ir.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected format error, got %v", err)
	}
	want := ir.Pos{Offset: 35, Tag: "grid", Key: "ny"}
	if diff := cmp.Diff(want, fe.Pos); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestStickyError(t *testing.T) {
	p, err := NewParser(strings.NewReader("roff-asc tag t int x y endtag tag eof endtag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Next()
	_, err = p.Tag().Collect()
	if err == nil {
		t.Fatal("expected an error")
	}
	if p.Next() {
		t.Fatal("Next after error")
	}
	if p.Err() != err {
		t.Errorf("expected the same error, got %v", p.Err())
	}
}

func TestDuplicates(t *testing.T) {
	doc, err := Parse(strings.NewReader("roff-asc tag a int k 1 int k 2 endtag tag a endtag tag eof endtag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"tag a", "  k: int 1", "  k: int 2", "tag a"}
	if diff := cmp.Diff(want, show(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestEarlyBreak(t *testing.T) {
	p, err := NewParser(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for tag := range p.Tags() {
		for k := range tag.Keys() {
			if k.Name == "byteswaptest" {
				break
			}
		}
		break
	}
	// remaining tags are still reachable
	doc, err := Collect(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc) != 2 || doc[0].Name != "dims" {
		t.Errorf("got %v", show(doc))
	}
}
