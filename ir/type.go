package ir

import "fmt"

// Type is a ROFF primitive type.
type Type int

const (
	CharType Type = iota
	BoolType
	ByteType
	IntType
	FloatType
	DoubleType
	// BytesType is what raw byte buffers are inferred as when writing. It
	// has no keyword of its own and goes on the wire as byte.
	BytesType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		CharType:   "char",
		BoolType:   "bool",
		ByteType:   "byte",
		IntType:    "int",
		FloatType:  "float",
		DoubleType: "double",
		BytesType:  "bytes",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// Keyword is the type name as it appears in a document.
func (t Type) Keyword() string {
	if t == BytesType {
		return ByteType.String()
	}
	return t.String()
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"char":   CharType,
		"bool":   BoolType,
		"byte":   ByteType,
		"int":    IntType,
		"float":  FloatType,
		"double": DoubleType,
		"bytes":  BytesType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		CharType,
		BoolType,
		ByteType,
		IntType,
		FloatType,
		DoubleType,
		BytesType,
	}
}
