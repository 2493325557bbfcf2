// Package roff reads and writes ROFF (Roxar Open File Format) documents in
// their ASCII and binary encodings.
//
// Read and Write work on whole documents held as Data, a mapping of tag name
// to key name to value, where repeated names fold into slices. Open and
// OpenFile return a lazy parse.Parser for walking documents too large to
// hold in memory; WithFile scopes one to a callback.
//
// The lower level packages are ir (values and documents), codec (the type
// table and value encodings), token (the two lexers), parse (the lazy
// parser) and encode (the incremental writer).
package roff
