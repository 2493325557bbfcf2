package parse

import (
	"io"

	"github.com/signadot/roff-format/go-roff/ir"
)

// Parse reads a whole document from r. The eof tag is not included.
func Parse(r io.Reader, opts ...ParseOption) (ir.Document, error) {
	p, err := NewParser(r, opts...)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return Collect(p)
}

// Collect reads the remaining tags of p.
func Collect(p *Parser) (ir.Document, error) {
	var doc ir.Document
	for p.Next() {
		tag, err := p.Tag().Collect()
		if err != nil {
			return doc, err
		}
		doc = append(doc, tag)
	}
	return doc, p.Err()
}
