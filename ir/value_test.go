package ir

import (
	"errors"
	"math"
	"testing"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		in    any
		typ   Type
		array bool
		n     int
	}{
		{true, BoolType, false, 1},
		{int(3), IntType, false, 1},
		{int32(-3), IntType, false, 1},
		{int64(7), IntType, false, 1},
		{uint8(1), ByteType, false, 1},
		{int8(1), ByteType, false, 1},
		{float32(1.5), FloatType, false, 1},
		{1.5, DoubleType, false, 1},
		{"a b", CharType, false, 1},
		{[]byte{0}, BytesType, false, 1},
		{[]byte{0, 1}, BytesType, true, 2},
		{[]byte{}, BytesType, true, 0},
		{[]string{"a", "b", "c"}, CharType, true, 3},
		{[]bool{true}, BoolType, true, 1},
		{[]int{1, 2}, IntType, true, 2},
		{[]int32{}, IntType, true, 0},
		{[]float32{1}, FloatType, true, 1},
		{[]float64{1, 2, 3}, DoubleType, true, 3},
		{[]any{1, 2}, IntType, true, 2},
		{[]any{"x", "y"}, CharType, true, 2},
	}
	for _, tt := range tests {
		v, err := FromAny(tt.in)
		if err != nil {
			t.Fatalf("%#v: %v", tt.in, err)
		}
		if v.Type() != tt.typ || v.IsArray() != tt.array || v.Len() != tt.n {
			t.Errorf("%#v: got %v array=%v len=%d", tt.in, v.Type(), v.IsArray(), v.Len())
		}
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	for _, in := range []any{
		nil,
		struct{}{},
		map[string]int{},
		int64(math.MaxInt32) + 1,
		[]int64{math.MinInt32 - 1},
		uint64(1),
		complex(1, 2),
		[]any{1, "a"},
		[]any{},
		[]any{[]int{1}},
		Value{},
	} {
		_, err := FromAny(in)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%#v: expected ErrUnsupportedType, got %v", in, err)
		}
		var ute *UnsupportedTypeError
		if !errors.As(err, &ute) {
			t.Errorf("%#v: expected *UnsupportedTypeError", in)
		}
		if errors.Is(err, ErrFormat) {
			t.Errorf("%#v: write-side unsupported type should not be a format error", in)
		}
	}
}

func TestBytesSpecialCase(t *testing.T) {
	one := FromBytes([]byte{0})
	if one.IsArray() || one.WireType() != ByteType {
		t.Errorf("1-byte buffer: array=%v wire=%v", one.IsArray(), one.WireType())
	}
	if !one.Equal(FromByte(0)) {
		t.Error("1-byte buffer should equal byte scalar")
	}
	two := FromBytes([]byte{0, 1})
	if !two.IsArray() || two.WireType() != ByteType || two.Len() != 2 {
		t.Errorf("2-byte buffer: %v", two)
	}
	if !two.Equal(FromByteArray([]byte{0, 1})) {
		t.Error("2-byte buffer should equal array byte")
	}
	if FromByteArray([]byte{0}).Equal(one) {
		t.Error("array byte of 1 should not equal byte scalar")
	}
}

func TestValueEqual(t *testing.T) {
	nan := float32(math.NaN())
	if !FromFloats([]float32{nan}).Equal(FromFloats([]float32{nan})) {
		t.Error("NaN arrays should compare equal")
	}
	if FromInt(1).Equal(FromInts([]int32{1})) {
		t.Error("scalar and array should differ")
	}
	if FromInt(1).Equal(FromDouble(1)) {
		t.Error("int and double should differ")
	}
	if !FromChars(nil).Equal(FromChars([]string{})) {
		t.Error("nil and empty char arrays should be equal")
	}
}

func TestValueAny(t *testing.T) {
	if x, ok := FromInt(4).Any().(int32); !ok || x != 4 {
		t.Errorf("got %#v", FromInt(4).Any())
	}
	if x, ok := FromChars([]string{"a"}).Any().([]string); !ok || len(x) != 1 {
		t.Errorf("got %#v", FromChars([]string{"a"}).Any())
	}
	if s := FromDoubles([]float64{1, 2.5}).String(); s != "array double 2 [1 2.5]" {
		t.Errorf("got %q", s)
	}
	if s := FromChar(`a"b`).String(); s != `char "a\"b"` {
		t.Errorf("got %q", s)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var err error = &UnsupportedTypeError{Pos: Pos{Offset: 10, Tag: "t"}, Name: "quad"}
	if !errors.Is(err, ErrUnsupportedType) || !errors.Is(err, ErrFormat) {
		t.Errorf("unknown type keyword should be both unsupported and format: %v", err)
	}
	err = &ArraySpanError{Pos: Pos{Offset: 3, Tag: "t", Key: "k"}, Type: IntType, Declared: 5, Found: 3}
	if !errors.Is(err, ErrArraySpan) {
		t.Error("expected ErrArraySpan")
	}
	want := `roff array span mismatch: array int declares 5 elements, found 3 at offset 3, tag "t", key "k"`
	if err.Error() != want {
		t.Errorf("got %q", err.Error())
	}
	err = &ArraySpanError{Pos: Pos{Offset: -1}, Type: ByteType, Declared: 2, Found: -1}
	if want := "roff array span mismatch: array byte declares 2 elements, found fewer"; err.Error() != want {
		t.Errorf("got %q", err.Error())
	}
	err = &TruncationError{Pos: Pos{Offset: -1}, Expected: "name"}
	if err.Error() != "roff truncated: expected name" {
		t.Errorf("got %q", err.Error())
	}
}
