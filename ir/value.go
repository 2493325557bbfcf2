package ir

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Value is the value of a tag key: a scalar or a homogeneous array of one
// primitive type. The zero Value is not valid; use the From* constructors.
//
// Exactly one of the slices is populated, according to the element type.
// Scalars are stored as one-element slices.
type Value struct {
	typ   Type
	array bool
	valid bool

	chars   []string
	bools   []bool
	bytes   []byte
	ints    []int32
	floats  []float32
	doubles []float64
}

func FromChar(v string) Value {
	return Value{typ: CharType, valid: true, chars: []string{v}}
}

func FromBool(v bool) Value {
	return Value{typ: BoolType, valid: true, bools: []bool{v}}
}

func FromByte(v byte) Value {
	return Value{typ: ByteType, valid: true, bytes: []byte{v}}
}

func FromInt(v int32) Value {
	return Value{typ: IntType, valid: true, ints: []int32{v}}
}

func FromFloat(v float32) Value {
	return Value{typ: FloatType, valid: true, floats: []float32{v}}
}

func FromDouble(v float64) Value {
	return Value{typ: DoubleType, valid: true, doubles: []float64{v}}
}

// FromBytes wraps a raw byte buffer. A buffer of length one is written as a
// byte scalar, any other length as an array of byte.
func FromBytes(v []byte) Value {
	return Value{typ: BytesType, array: len(v) != 1, valid: true, bytes: bytes.Clone(nonNil(v))}
}

// FromChars builds an array of char: independently delimited strings.
func FromChars(v []string) Value {
	return Value{typ: CharType, array: true, valid: true, chars: slices.Clone(nonNil(v))}
}

func FromBools(v []bool) Value {
	return Value{typ: BoolType, array: true, valid: true, bools: slices.Clone(nonNil(v))}
}

func FromInts(v []int32) Value {
	return Value{typ: IntType, array: true, valid: true, ints: slices.Clone(nonNil(v))}
}

func FromFloats(v []float32) Value {
	return Value{typ: FloatType, array: true, valid: true, floats: slices.Clone(nonNil(v))}
}

func FromDoubles(v []float64) Value {
	return Value{typ: DoubleType, array: true, valid: true, doubles: slices.Clone(nonNil(v))}
}

// fromByteArray is used by readers: an array of byte keeps its array-ness
// even when it holds exactly one element.
func fromByteArray(v []byte) Value {
	return Value{typ: ByteType, array: true, valid: true, bytes: nonNil(v)}
}

// FromByteArray builds an array of byte without the length-one special case
// of FromBytes.
func FromByteArray(v []byte) Value {
	return fromByteArray(bytes.Clone(v))
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool { return v.valid }

// Type is the element type of v. BytesType values report the type they are
// written as through WireType.
func (v Value) Type() Type { return v.typ }

// WireType is the type keyword v is written under.
func (v Value) WireType() Type {
	if v.typ == BytesType {
		return ByteType
	}
	return v.typ
}

func (v Value) IsArray() bool { return v.array }

// Len is the number of elements: 1 for a scalar, the element count for an
// array (for char arrays, the number of strings).
func (v Value) Len() int {
	switch v.typ {
	case CharType:
		return len(v.chars)
	case BoolType:
		return len(v.bools)
	case ByteType, BytesType:
		return len(v.bytes)
	case IntType:
		return len(v.ints)
	case FloatType:
		return len(v.floats)
	case DoubleType:
		return len(v.doubles)
	}
	return 0
}

func (v Value) Char() (string, bool) {
	if v.typ != CharType || v.array {
		return "", false
	}
	return v.chars[0], true
}

func (v Value) Bool() (bool, bool) {
	if v.typ != BoolType || v.array {
		return false, false
	}
	return v.bools[0], true
}

func (v Value) Byte() (byte, bool) {
	if (v.typ != ByteType && v.typ != BytesType) || v.array {
		return 0, false
	}
	return v.bytes[0], true
}

func (v Value) Int() (int32, bool) {
	if v.typ != IntType || v.array {
		return 0, false
	}
	return v.ints[0], true
}

func (v Value) Float() (float32, bool) {
	if v.typ != FloatType || v.array {
		return 0, false
	}
	return v.floats[0], true
}

func (v Value) Double() (float64, bool) {
	if v.typ != DoubleType || v.array {
		return 0, false
	}
	return v.doubles[0], true
}

// Chars returns the strings of a char value (one for a scalar).
func (v Value) Chars() []string { return v.chars }

func (v Value) Bools() []bool { return v.bools }

// Bytes returns the elements of a byte or bytes value.
func (v Value) Bytes() []byte { return v.bytes }

func (v Value) Ints() []int32 { return v.ints }

func (v Value) Floats() []float32 { return v.floats }

func (v Value) Doubles() []float64 { return v.doubles }

// Any returns v as a native Go value: string, bool, byte, int32, float32 or
// float64 for scalars, and the corresponding slice for arrays.
func (v Value) Any() any {
	if !v.array {
		switch v.typ {
		case CharType:
			return v.chars[0]
		case BoolType:
			return v.bools[0]
		case ByteType, BytesType:
			return v.bytes[0]
		case IntType:
			return v.ints[0]
		case FloatType:
			return v.floats[0]
		case DoubleType:
			return v.doubles[0]
		}
		return nil
	}
	switch v.typ {
	case CharType:
		return v.chars
	case BoolType:
		return v.bools
	case ByteType, BytesType:
		return v.bytes
	case IntType:
		return v.ints
	case FloatType:
		return v.floats
	case DoubleType:
		return v.doubles
	}
	return nil
}

// Equal reports whether v and o hold the same elements under the same wire
// type and shape. NaNs compare equal to NaNs with the same bits.
func (v Value) Equal(o Value) bool {
	if v.valid != o.valid || v.WireType() != o.WireType() || v.array != o.array {
		return false
	}
	switch v.WireType() {
	case CharType:
		return slices.Equal(v.chars, o.chars)
	case BoolType:
		return slices.Equal(v.bools, o.bools)
	case ByteType:
		return bytes.Equal(v.bytes, o.bytes)
	case IntType:
		return slices.Equal(v.ints, o.ints)
	case FloatType:
		return slices.EqualFunc(v.floats, o.floats, func(a, b float32) bool {
			return math.Float32bits(a) == math.Float32bits(b) || a == b
		})
	case DoubleType:
		return slices.EqualFunc(v.doubles, o.doubles, func(a, b float64) bool {
			return math.Float64bits(a) == math.Float64bits(b) || a == b
		})
	}
	return true
}

func (v Value) String() string {
	if !v.valid {
		return "<invalid>"
	}
	elts := make([]string, 0, v.Len())
	for i := range v.Len() {
		elts = append(elts, v.elt(i))
	}
	if !v.array {
		return fmt.Sprintf("%s %s", v.WireType().Keyword(), elts[0])
	}
	return fmt.Sprintf("array %s %d [%s]", v.WireType().Keyword(), v.Len(), strings.Join(elts, " "))
}

func (v Value) elt(i int) string {
	switch v.typ {
	case CharType:
		return strconv.Quote(v.chars[i])
	case BoolType:
		if v.bools[i] {
			return "1"
		}
		return "0"
	case ByteType, BytesType:
		return strconv.Itoa(int(v.bytes[i]))
	case IntType:
		return strconv.FormatInt(int64(v.ints[i]), 10)
	case FloatType:
		return strconv.FormatFloat(float64(v.floats[i]), 'g', -1, 32)
	case DoubleType:
		return strconv.FormatFloat(v.doubles[i], 'g', -1, 64)
	}
	return "?"
}
