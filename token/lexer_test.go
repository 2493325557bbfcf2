package token

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
)

func words(t *testing.T, l Lexer) []string {
	t.Helper()
	var res []string
	for {
		tok, err := l.Word()
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res = append(res, tok.String())
	}
}

func TestNewLexer(t *testing.T) {
	l, err := NewLexer(strings.NewReader("roff-asc\ntag x endtag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Format() != format.ASCIIFormat {
		t.Errorf("expected ascii, got %v", l.Format())
	}
	if l.Offset() != 8 {
		t.Errorf("expected offset 8, got %d", l.Offset())
	}

	l, err = NewLexer(strings.NewReader("roff-bin\x00tag\x00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Format() != format.BinaryFormat {
		t.Errorf("expected binary, got %v", l.Format())
	}
	if l.Offset() != 9 {
		t.Errorf("expected offset 9, got %d", l.Offset())
	}
}

func TestNewLexerBadHeader(t *testing.T) {
	for _, in := range []string{"", "roff", "roff-xyz tag", "roff-ascii", "roff-bin!"} {
		_, err := NewLexer(strings.NewReader(in))
		if !errors.Is(err, ir.ErrFormat) {
			t.Errorf("%q: expected format error, got %v", in, err)
		}
	}
	_, err := NewLexer(strings.NewReader("roff-bin"))
	if !errors.Is(err, ir.ErrTruncated) {
		t.Errorf("expected truncation, got %v", err)
	}
}

func TestASCIIWords(t *testing.T) {
	l := NewASCIILexer(strings.NewReader("  tag\tname#a comment#int\n\n x 3 #another\ncomment# endtag\n"))
	got := words(t, l)
	want := []string{"tag", "name", "int", "x", "3", "endtag"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestASCIIQuoted(t *testing.T) {
	l := NewASCIILexer(strings.NewReader(`"a b" "say \"hi\"" "" "C:\dir" 12`))
	for _, want := range []string{`a b`, `say \"hi\"`, ``, `C:\dir`} {
		tok, err := l.Value(ir.CharType)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != KString || string(tok.Bytes) != want {
			t.Errorf("got %s, want %q", tok.Info(), want)
		}
	}
	tok, err := l.Value(ir.CharType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != KWord {
		t.Errorf("unquoted char value should come back as a word, got %s", tok.Info())
	}
}

func TestASCIIOffsets(t *testing.T) {
	l := NewASCIILexer(strings.NewReader(`ab  "cd" #x# ef`))
	for _, want := range []int64{0, 4, 13} {
		tok, err := l.Value(ir.CharType)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Offset != want {
			t.Errorf("%q: offset %d want %d", tok.Bytes, tok.Offset, want)
		}
	}
}

func TestASCIITruncation(t *testing.T) {
	for name, in := range map[string]string{
		"string":  `"never closed`,
		"comment": `#never closed`,
	} {
		l := NewASCIILexer(strings.NewReader(in))
		_, err := l.Value(ir.CharType)
		var te *ir.TruncationError
		if !errors.As(err, &te) {
			t.Fatalf("%s: expected truncation, got %v", name, err)
		}
		if te.Offset != 0 {
			t.Errorf("%s: offset %d", name, te.Offset)
		}
	}
}

func TestASCIIEnd(t *testing.T) {
	if err := NewASCIILexer(strings.NewReader("  #trailing comment#\n")).End(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewASCIILexer(strings.NewReader(" tag")).End(); !errors.Is(err, ir.ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestBinaryWordsAndValues(t *testing.T) {
	var in bytes.Buffer
	in.WriteString("#ROFF file#\x00tag\x00t\x00int\x00x\x00")
	in.Write([]byte{0, 0, 0, 0}) // value bytes may be zero
	in.WriteString("char\x00s\x00hello\x00")
	in.WriteString("endtag\x00")

	l := NewBinaryLexer(&in)
	for _, w := range []string{"tag", "t", "int", "x"} {
		tok, err := l.Word()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tok.Is(w) {
			t.Fatalf("got %s want %q", tok.Info(), w)
		}
	}
	tok, err := l.Value(ir.IntType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != KRaw || !bytes.Equal(tok.Bytes, []byte{0, 0, 0, 0}) || tok.Offset != 24 {
		t.Errorf("got %s", tok.Info())
	}
	for _, w := range []string{"char", "s"} {
		if tok, err = l.Word(); err != nil || !tok.Is(w) {
			t.Fatalf("got %s, %v want %q", tok.Info(), err, w)
		}
	}
	tok, err = l.Value(ir.CharType)
	if err != nil || tok.Kind != KString || tok.String() != "hello" {
		t.Fatalf("got %s, %v", tok.Info(), err)
	}
	if tok, err = l.Word(); err != nil || !tok.Is("endtag") {
		t.Fatalf("got %s, %v", tok.Info(), err)
	}
	if _, err = l.Word(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestBinarySpan(t *testing.T) {
	l := NewBinaryLexer(bytes.NewReader(make([]byte, 20)))
	tok, err := l.Span(ir.IntType, 5)
	if err != nil || len(tok.Bytes) != 20 {
		t.Fatalf("got %d bytes, %v", len(tok.Bytes), err)
	}

	l = NewBinaryLexer(bytes.NewReader(make([]byte, 12)))
	_, err = l.Span(ir.IntType, 5)
	var ase *ir.ArraySpanError
	if !errors.As(err, &ase) {
		t.Fatalf("expected array span error, got %v", err)
	}
	if ase.Declared != 5 || ase.Found != 3 {
		t.Errorf("declared %d found %d", ase.Declared, ase.Found)
	}
	if !errors.Is(err, ir.ErrTruncated) {
		t.Error("short span should also be a truncation")
	}
}

func TestBinaryTruncation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		read func(l *BinaryLexer) error
	}{
		{"word", "tag", func(l *BinaryLexer) error { _, err := l.Word(); return err }},
		{"comment", "#ROFF", func(l *BinaryLexer) error { _, err := l.Word(); return err }},
		{"double", "\x01\x02\x03", func(l *BinaryLexer) error { _, err := l.Value(ir.DoubleType); return err }},
		{"string", "abc", func(l *BinaryLexer) error { _, err := l.Value(ir.CharType); return err }},
		{"empty value", "", func(l *BinaryLexer) error { _, err := l.Value(ir.IntType); return err }},
	}
	for _, tt := range tests {
		err := tt.read(NewBinaryLexer(strings.NewReader(tt.in)))
		if !errors.Is(err, ir.ErrTruncated) {
			t.Errorf("%s: expected truncation, got %v", tt.name, err)
		}
	}
}

func TestBinaryCommentDelimiter(t *testing.T) {
	_, err := NewBinaryLexer(strings.NewReader("#c#tag\x00")).Word()
	if !errors.Is(err, ir.ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestBinaryEnd(t *testing.T) {
	if err := NewBinaryLexer(strings.NewReader("#bye#\x00")).End(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewBinaryLexer(strings.NewReader("x")).End(); !errors.Is(err, ir.ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}
