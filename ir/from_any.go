package ir

import (
	"math"
)

// FromAny infers the ROFF type of a Go value and wraps it:
//
//	Value                 as is
//	bool                  bool
//	int8, uint8           byte
//	int, int16, int32,
//	int64, uint16, uint32 int (must fit in 32 bits)
//	float32               float
//	float64               double
//	string                char
//	[]byte                bytes (scalar byte if len 1, else array byte)
//	[]string              array char
//	[]bool                array bool
//	[]int, []int32, ...   array int
//	[]float32             array float
//	[]float64             array double
//
// Anything else yields an *UnsupportedTypeError.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		if !x.valid {
			return Value{}, unsupported(v, "invalid Value")
		}
		return x, nil
	case bool:
		return FromBool(x), nil
	case uint8:
		return FromByte(x), nil
	case int8:
		return FromByte(byte(x)), nil
	case int:
		return intValue(v, int64(x))
	case int16:
		return FromInt(int32(x)), nil
	case int32:
		return FromInt(x), nil
	case int64:
		return intValue(v, x)
	case uint16:
		return FromInt(int32(x)), nil
	case uint32:
		return intValue(v, int64(x))
	case float32:
		return FromFloat(x), nil
	case float64:
		return FromDouble(x), nil
	case string:
		return FromChar(x), nil
	case []byte:
		return FromBytes(x), nil
	case []string:
		return FromChars(x), nil
	case []bool:
		return FromBools(x), nil
	case []int32:
		return FromInts(x), nil
	case []int:
		return intsValue(v, x)
	case []int64:
		return intsValue(v, x)
	case []int16:
		return intsValue(v, x)
	case []float32:
		return FromFloats(x), nil
	case []float64:
		return FromDoubles(x), nil
	case []any:
		return fromAnySlice(x)
	}
	return Value{}, unsupported(v, "")
}

// MustFromAny is FromAny for values known to be supported.
func MustFromAny(v any) Value {
	res, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return res
}

func unsupported(v any, reason string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Pos: Pos{Offset: -1}, Value: v, Reason: reason}
}

func intValue(v any, i int64) (Value, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return Value{}, unsupported(v, "integer out of int32 range")
	}
	return FromInt(int32(i)), nil
}

func intsValue[T int | int16 | int64](v any, xs []T) (Value, error) {
	res := make([]int32, len(xs))
	for i, x := range xs {
		if int64(x) < math.MinInt32 || int64(x) > math.MaxInt32 {
			return Value{}, unsupported(v, "integer out of int32 range")
		}
		res[i] = int32(x)
	}
	return FromInts(res), nil
}

// fromAnySlice accepts a homogeneous []any of scalars, as produced by
// decoding JSON or YAML into interface values.
func fromAnySlice(xs []any) (Value, error) {
	if len(xs) == 0 {
		return Value{}, unsupported(xs, "empty []any has no element type")
	}
	elts := make([]Value, len(xs))
	for i, x := range xs {
		e, err := FromAny(x)
		if err != nil {
			return Value{}, err
		}
		if e.array {
			return Value{}, unsupported(xs, "nested arrays")
		}
		if i > 0 && e.WireType() != elts[0].WireType() {
			return Value{}, unsupported(xs, "heterogeneous array")
		}
		elts[i] = e
	}
	res := Value{typ: elts[0].WireType(), array: true, valid: true}
	for _, e := range elts {
		res.chars = append(res.chars, e.chars...)
		res.bools = append(res.bools, e.bools...)
		res.bytes = append(res.bytes, e.bytes...)
		res.ints = append(res.ints, e.ints...)
		res.floats = append(res.floats, e.floats...)
		res.doubles = append(res.doubles, e.doubles...)
	}
	return res, nil
}
