// Package codec is the ROFF type codec: a fixed registry of type keywords
// and element widths, and the binary and ASCII encodings of values.
//
// Binary widths are 1 byte for bool and byte, 4 for int and float, 8 for
// double. Strings are zero terminated. Multi byte values are read and
// written under an explicit Order; the registry itself is immutable and safe
// for concurrent use.
package codec
