// Package format names the two ROFF encodings, binary ("roff-bin") and
// ASCII ("roff-asc").
package format
