package roff

import (
	"bufio"
	"io"
	"os"

	"github.com/signadot/roff-format/go-roff/encode"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"
)

// Read reads a whole document from r.
func Read(r io.Reader, opts ...parse.ParseOption) (Data, error) {
	p, err := parse.NewParser(r, opts...)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return Collect(p)
}

// ReadFile reads the document stored at path.
func ReadFile(path string, opts ...parse.ParseOption) (Data, error) {
	var d Data
	err := WithFile(path, func(p *parse.Parser) error {
		var err error
		d, err = Collect(p)
		return err
	}, opts...)
	return d, err
}

// Write unfolds x, as Unfold does, and writes it to w in format f.
func Write(w io.Writer, x any, f format.Format, opts ...encode.EncodeOption) error {
	doc, err := Unfold(x)
	if err != nil {
		return err
	}
	return WriteDocument(w, doc, f, opts...)
}

// WriteDocument writes doc to w in format f.
func WriteDocument(w io.Writer, doc ir.Document, f format.Format, opts ...encode.EncodeOption) error {
	opts = append([]encode.EncodeOption{encode.EncodeFormat(f)}, opts...)
	return encode.Encode(doc, w, opts...)
}

// WriteFile writes x to path in format f, truncating any existing file. A
// failed write leaves a partial file behind.
func WriteFile(path string, x any, f format.Format, opts ...encode.EncodeOption) error {
	doc, err := Unfold(x)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	if err := WriteDocument(bw, doc, f, opts...); err != nil {
		bw.Flush()
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Open returns a lazy parser over r.
func Open(r io.Reader, opts ...parse.ParseOption) (*parse.Parser, error) {
	return parse.NewParser(r, opts...)
}
