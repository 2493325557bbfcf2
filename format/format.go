package format

import (
	"errors"
	"fmt"
)

// Format selects one of the two ROFF encodings.
type Format int

const (
	BinaryFormat Format = iota
	ASCIIFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":        BinaryFormat,
		"bin":      BinaryFormat,
		"binary":   BinaryFormat,
		"roff-bin": BinaryFormat,
		"a":        ASCIIFormat,
		"asc":      ASCIIFormat,
		"ascii":    ASCIIFormat,
		"roff-asc": ASCIIFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BinaryFormat:
		return []byte("binary"), nil
	case ASCIIFormat:
		return []byte("ascii"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool { return f == BinaryFormat }
func (f Format) IsASCII() bool  { return f == ASCIIFormat }

// Header returns the header token which opens a document in this format.
func (f Format) Header() string {
	switch f {
	case BinaryFormat:
		return "roff-bin"
	case ASCIIFormat:
		return "roff-asc"
	default:
		return ""
	}
}

// FromHeader maps a header token back to its format.
func FromHeader(h string) (Format, bool) {
	switch h {
	case "roff-bin":
		return BinaryFormat, true
	case "roff-asc":
		return ASCIIFormat, true
	}
	return 0, false
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{BinaryFormat, ASCIIFormat}
}
