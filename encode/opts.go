package encode

import (
	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/format"
)

// DefaultCreator is written in the header comments unless EncodeCreator
// says otherwise.
const DefaultCreator = "go-roff"

type EncodeOption func(*Encoder)

func EncodeFormat(f format.Format) EncodeOption {
	return func(e *Encoder) { e.format = f }
}

// EncodeByteOrder sets the byte order of binary output. Readers detect it
// through filedata.byteswaptest. The default is codec.Native.
func EncodeByteOrder(o codec.Order) EncodeOption {
	return func(e *Encoder) { e.order = o }
}

func EncodeCreator(c string) EncodeOption {
	return func(e *Encoder) { e.creator = c }
}

// EncodeComments controls the header comments; on by default.
func EncodeComments(v bool) EncodeOption {
	return func(e *Encoder) { e.comments = v }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e.format
}

// FormatSuffix returns the conventional file extension for f.
func FormatSuffix(f format.Format) string {
	if f.IsASCII() {
		return ".roffasc"
	}
	return ".roff"
}
