// Package parse reads ROFF documents lazily.
//
// A Parser walks the tags of one document, one at a time, and each tag's
// TagReader walks its keys off the same token stream:
//
//	p, err := parse.NewParser(r)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	for p.Next() {
//		t := p.Tag()
//		for t.Next() {
//			k := t.Key()
//			...
//		}
//	}
//	return p.Err()
//
// A tag's keys must be consumed before moving to the next tag. By default
// Parser.Next discards whatever is left; with StrictDrain it fails instead
// unless TagReader.Skip was called. Once the parser has moved on, the old
// TagReader reports a usage error.
//
// The byte order of a binary document is resolved from the byteswaptest key
// of its filedata tag, and applies from that key on.
//
// Parse reads a whole document into an ir.Document.
package parse
