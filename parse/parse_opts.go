package parse

import "github.com/signadot/roff-format/go-roff/codec"

type parseOpts struct {
	order     codec.Order
	strict    bool
	onWarning func(string)
}

type ParseOption func(*parseOpts)

// ParseByteOrder sets the byte order binary values are decoded under until a
// filedata byteswaptest says otherwise. The default is codec.Native.
func ParseByteOrder(o codec.Order) ParseOption {
	return func(opts *parseOpts) { opts.order = o }
}

// StrictDrain makes advancing past a tag whose keys were neither drained nor
// skipped a usage error, instead of skipping them silently.
func StrictDrain() ParseOption {
	return func(opts *parseOpts) { opts.strict = true }
}

// OnWarning registers fn to receive non-fatal diagnostics.
func OnWarning(fn func(string)) ParseOption {
	return func(opts *parseOpts) { opts.onWarning = fn }
}
