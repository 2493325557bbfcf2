// Package encode writes ROFF documents.
//
// An Encoder writes one document incrementally:
//
//	e, err := encode.NewEncoder(w, encode.EncodeFormat(format.ASCIIFormat))
//	if err != nil {
//		return err
//	}
//	e.BeginTag("grid")
//	e.WriteKey("nx", ir.FromInt(10))
//	e.EndTag()
//	return e.Close()
//
// Each key is encoded in full and validated before any of its bytes are
// written, but a document which fails partway is left truncated. Close
// writes the terminating eof tag.
//
// Binary values are written in the encoder's byte order. When a filedata
// tag is written, its byteswaptest is always 1, and is added if the caller
// left it out.
//
// Encode writes a whole ir.Document.
package encode
