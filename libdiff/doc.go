// Package libdiff compares ROFF documents.
//
// # Usage
//
//	changes := libdiff.Diff(oldDoc, newDoc)
//	for _, c := range changes {
//	    fmt.Println(c)
//	}
//
// Documents are compared entry by entry, where an entry is a tag header or
// one key with its value. Order matters, as it does in the format.
package libdiff
