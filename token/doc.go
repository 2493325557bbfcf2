// Package token implements the two ROFF lexers.
//
// NewLexer sniffs the header ("roff-asc" or "roff-bin") and returns an
// ASCIILexer or a BinaryLexer positioned at the start of the body. Both are
// pull based: nothing is read until the parser asks for the next token, and
// the parser says what it expects, because binary value bytes cannot be
// framed without knowing their type.
package token
