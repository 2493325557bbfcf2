// Package ir holds the in-memory model of ROFF documents.
//
// # Values
//
// A tag key's value is a Value: a closed sum type over the ROFF primitive
// types (char, bool, byte, int, float, double) in scalar or array shape. The
// From* constructors are the only way to build one; FromAny is the typed
// boundary which maps ordinary Go values onto ROFF types and rejects
// everything else before any bytes are written.
//
// Raw byte buffers are the one special case: FromBytes of a single byte is a
// byte scalar, any other length an array of byte.
//
// # Documents
//
// Document, Tag and TagKey are ordered pairs. Duplicate names are legal and
// preserved; folding into maps is left to the root roff package.
//
// # Errors
//
// The error types FormatError, TruncationError, ArraySpanError,
// UnsupportedTypeError and UsageError carry a Pos with the byte offset, tag
// and key in progress. Each unwraps to the matching Err* sentinel so callers
// can use errors.Is or errors.As.
package ir
