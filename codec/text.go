package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/roff-format/go-roff/ir"
)

// DecodeText decodes one ASCII scalar of type t. For char, tok is the
// content between the quotes, still escaped.
func DecodeText(t ir.Type, tok []byte) (ir.Value, error) {
	s := string(tok)
	switch t {
	case ir.CharType:
		return ir.FromChar(Unquote(s)), nil
	case ir.BoolType:
		switch s {
		case "0":
			return ir.FromBool(false), nil
		case "1":
			return ir.FromBool(true), nil
		}
		return ir.Value{}, fmt.Errorf("%w: bool must be 0 or 1, got %q", ErrBadValue, s)
	case ir.ByteType, ir.BytesType:
		b, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return ir.Value{}, fmt.Errorf("%w: byte %q: %w", ErrBadValue, s, err)
		}
		return ir.FromByte(byte(b)), nil
	case ir.IntType:
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return ir.Value{}, fmt.Errorf("%w: int %q: %w", ErrBadValue, s, err)
		}
		return ir.FromInt(int32(i)), nil
	case ir.FloatType:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return ir.Value{}, fmt.Errorf("%w: float %q: %w", ErrBadValue, s, err)
		}
		return ir.FromFloat(float32(f)), nil
	case ir.DoubleType:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ir.Value{}, fmt.Errorf("%w: double %q: %w", ErrBadValue, s, err)
		}
		return ir.FromDouble(f), nil
	}
	return ir.Value{}, fmt.Errorf("%w: no text form for %v", ErrBadValue, t)
}

// TextArray accumulates ASCII array elements one token at a time.
type TextArray struct {
	t ir.Type

	chars   []string
	bools   []bool
	bytes   []byte
	ints    []int32
	floats  []float32
	doubles []float64
}

func NewTextArray(t ir.Type, n int) *TextArray {
	a := &TextArray{t: t}
	// n comes from the document, cap the preallocation
	c := min(n, 1<<16)
	switch t {
	case ir.CharType:
		a.chars = make([]string, 0, c)
	case ir.BoolType:
		a.bools = make([]bool, 0, c)
	case ir.ByteType, ir.BytesType:
		a.bytes = make([]byte, 0, c)
	case ir.IntType:
		a.ints = make([]int32, 0, c)
	case ir.FloatType:
		a.floats = make([]float32, 0, c)
	case ir.DoubleType:
		a.doubles = make([]float64, 0, c)
	}
	return a
}

// Append decodes tok and adds it to the array.
func (a *TextArray) Append(tok []byte) error {
	v, err := DecodeText(a.t, tok)
	if err != nil {
		return err
	}
	switch a.t {
	case ir.CharType:
		a.chars = append(a.chars, v.Chars()...)
	case ir.BoolType:
		a.bools = append(a.bools, v.Bools()...)
	case ir.ByteType, ir.BytesType:
		a.bytes = append(a.bytes, v.Bytes()...)
	case ir.IntType:
		a.ints = append(a.ints, v.Ints()...)
	case ir.FloatType:
		a.floats = append(a.floats, v.Floats()...)
	case ir.DoubleType:
		a.doubles = append(a.doubles, v.Doubles()...)
	}
	return nil
}

func (a *TextArray) Value() ir.Value {
	switch a.t {
	case ir.CharType:
		return ir.FromChars(a.chars)
	case ir.BoolType:
		return ir.FromBools(a.bools)
	case ir.ByteType, ir.BytesType:
		return ir.FromByteArray(a.bytes)
	case ir.IntType:
		return ir.FromInts(a.ints)
	case ir.FloatType:
		return ir.FromFloats(a.floats)
	case ir.DoubleType:
		return ir.FromDoubles(a.doubles)
	}
	return ir.Value{}
}

// AppendText appends the ASCII form of each element of v to dst, each
// followed by sep.
func AppendText(dst []byte, v ir.Value, sep string) []byte {
	switch v.Type() {
	case ir.CharType:
		for _, s := range v.Chars() {
			dst = append(dst, Quote(s)...)
			dst = append(dst, sep...)
		}
	case ir.BoolType:
		for _, b := range v.Bools() {
			if b {
				dst = append(dst, '1')
			} else {
				dst = append(dst, '0')
			}
			dst = append(dst, sep...)
		}
	case ir.ByteType, ir.BytesType:
		for _, b := range v.Bytes() {
			dst = strconv.AppendUint(dst, uint64(b), 10)
			dst = append(dst, sep...)
		}
	case ir.IntType:
		for _, i := range v.Ints() {
			dst = strconv.AppendInt(dst, int64(i), 10)
			dst = append(dst, sep...)
		}
	case ir.FloatType:
		for _, f := range v.Floats() {
			dst = strconv.AppendFloat(dst, float64(f), 'g', -1, 32)
			dst = append(dst, sep...)
		}
	case ir.DoubleType:
		for _, f := range v.Doubles() {
			dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
			dst = append(dst, sep...)
		}
	}
	return dst
}

// Quote wraps s in double quotes, escaping '"' and '\' with a backslash.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote reverses the escaping done by Quote on the content between the
// quotes. Backslashes not followed by '"' or '\' are kept as they are.
func Unquote(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}
