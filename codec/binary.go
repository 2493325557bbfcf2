package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/signadot/roff-format/go-roff/ir"
)

var (
	ErrBadValue  = errors.New("bad value")
	ErrZeroInStr = errors.New("zero byte in string")
)

// DecodeBinary decodes one fixed width scalar of type t from b under order.
// For char, b is the string without its terminator.
func DecodeBinary(t ir.Type, b []byte, order Order) (ir.Value, error) {
	if t == ir.CharType {
		return ir.FromChar(string(b)), nil
	}
	w := Width(t)
	if len(b) != w {
		return ir.Value{}, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrBadValue, t.Keyword(), w, len(b))
	}
	switch t {
	case ir.BoolType:
		switch b[0] {
		case 0:
			return ir.FromBool(false), nil
		case 1:
			return ir.FromBool(true), nil
		}
		return ir.Value{}, fmt.Errorf("%w: bool must be 0 or 1, got %d", ErrBadValue, b[0])
	case ir.ByteType, ir.BytesType:
		return ir.FromByte(b[0]), nil
	case ir.IntType:
		return ir.FromInt(int32(order.Uint32(b))), nil
	case ir.FloatType:
		return ir.FromFloat(math.Float32frombits(order.Uint32(b))), nil
	case ir.DoubleType:
		return ir.FromDouble(math.Float64frombits(order.Uint64(b))), nil
	}
	return ir.Value{}, fmt.Errorf("%w: no binary form for %v", ErrBadValue, t)
}

// DecodeInt32 decodes a 4 byte int, as used for array lengths.
func DecodeInt32(b []byte, order Order) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: int needs 4 bytes, got %d", ErrBadValue, len(b))
	}
	return int32(order.Uint32(b)), nil
}

// DecodeBinaryArray decodes n fixed width elements of type t from b, which
// must be exactly n*Width(t) bytes long.
func DecodeBinaryArray(t ir.Type, b []byte, n int, order Order) (ir.Value, error) {
	w := Width(t)
	if w == 0 {
		return ir.Value{}, fmt.Errorf("%w: char arrays are not fixed width", ErrBadValue)
	}
	if len(b) != n*w {
		return ir.Value{}, fmt.Errorf("%w: %d %s elements need %d bytes, got %d", ErrBadValue, n, t.Keyword(), n*w, len(b))
	}
	switch t {
	case ir.BoolType:
		res := make([]bool, n)
		for i, c := range b {
			switch c {
			case 0:
			case 1:
				res[i] = true
			default:
				return ir.Value{}, fmt.Errorf("%w: bool element %d must be 0 or 1, got %d", ErrBadValue, i, c)
			}
		}
		return ir.FromBools(res), nil
	case ir.ByteType, ir.BytesType:
		return ir.FromByteArray(b), nil
	case ir.IntType:
		res := make([]int32, n)
		for i := range res {
			res[i] = int32(order.Uint32(b[4*i:]))
		}
		return ir.FromInts(res), nil
	case ir.FloatType:
		res := make([]float32, n)
		for i := range res {
			res[i] = math.Float32frombits(order.Uint32(b[4*i:]))
		}
		return ir.FromFloats(res), nil
	case ir.DoubleType:
		res := make([]float64, n)
		for i := range res {
			res[i] = math.Float64frombits(order.Uint64(b[8*i:]))
		}
		return ir.FromDoubles(res), nil
	}
	return ir.Value{}, fmt.Errorf("%w: no binary form for %v", ErrBadValue, t)
}

// AppendBinary appends the elements of v to dst under order. Strings are
// zero terminated. Array lengths are not written.
func AppendBinary(dst []byte, v ir.Value, order Order) ([]byte, error) {
	switch v.Type() {
	case ir.CharType:
		for _, s := range v.Chars() {
			var err error
			if dst, err = AppendBinaryString(dst, s); err != nil {
				return dst, err
			}
		}
	case ir.BoolType:
		for _, b := range v.Bools() {
			if b {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	case ir.ByteType, ir.BytesType:
		dst = append(dst, v.Bytes()...)
	case ir.IntType:
		for _, i := range v.Ints() {
			dst = order.AppendUint32(dst, uint32(i))
		}
	case ir.FloatType:
		for _, f := range v.Floats() {
			dst = order.AppendUint32(dst, math.Float32bits(f))
		}
	case ir.DoubleType:
		for _, f := range v.Doubles() {
			dst = order.AppendUint64(dst, math.Float64bits(f))
		}
	default:
		return dst, fmt.Errorf("%w: no binary form for %v", ErrBadValue, v.Type())
	}
	return dst, nil
}

// AppendBinaryString appends s and its zero terminator.
func AppendBinaryString(dst []byte, s string) ([]byte, error) {
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return dst, fmt.Errorf("%w: %q", ErrZeroInStr, s)
	}
	dst = append(dst, s...)
	return append(dst, 0), nil
}

// Order is a byte order which can both read and append.
// binary.LittleEndian, binary.BigEndian and binary.NativeEndian all qualify.
type Order interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native is the byte order this library writes by default and assumes when
// reading until a byteswaptest says otherwise.
var Native Order = binary.LittleEndian

// Swapped returns the byte order opposite to order.
func Swapped(order Order) Order {
	if IsBigEndian(order) {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func IsBigEndian(order Order) bool {
	return order.String() == binary.BigEndian.String()
}
