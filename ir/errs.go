package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrFormat          = errors.New("roff format error")
	ErrTruncated       = errors.New("roff truncated")
	ErrArraySpan       = errors.New("roff array span mismatch")
	ErrUnsupportedType = errors.New("roff unsupported type")
	ErrUsage           = errors.New("roff usage error")
)

// Pos locates an error: the byte offset in the stream and the tag and key
// being processed, when known. Offset is -1 when it does not apply.
type Pos struct {
	Offset int64
	Tag    string
	Key    string
}

func (p Pos) String() string {
	var parts []string
	if p.Offset >= 0 {
		parts = append(parts, fmt.Sprintf("offset %d", p.Offset))
	}
	if p.Tag != "" {
		parts = append(parts, fmt.Sprintf("tag %q", p.Tag))
	}
	if p.Key != "" {
		parts = append(parts, fmt.Sprintf("key %q", p.Key))
	}
	if len(parts) == 0 {
		return ""
	}
	return " at " + strings.Join(parts, ", ")
}

// FormatError is a grammar violation.
type FormatError struct {
	Pos
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	s := ErrFormat.Error() + ": " + e.Msg + e.Pos.String()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// TruncationError means the stream ended before an expected token was
// complete.
type TruncationError struct {
	Pos
	Expected string
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("%s: expected %s%s", ErrTruncated.Error(), e.Expected, e.Pos.String())
}

func (e *TruncationError) Unwrap() error {
	return ErrTruncated
}

// ArraySpanError means an array's declared length did not match the data.
// Found is -1 when the number of real elements is unknown.
type ArraySpanError struct {
	Pos
	Type     Type
	Declared int
	Found    int
	Err      error
}

func (e *ArraySpanError) Error() string {
	found := "fewer"
	if e.Found >= 0 {
		found = strconv.Itoa(e.Found)
	}
	s := fmt.Sprintf("%s: array %s declares %d elements, found %s%s",
		ErrArraySpan.Error(), e.Type.Keyword(), e.Declared, found, e.Pos.String())
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ArraySpanError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrArraySpan, e.Err}
	}
	return []error{ErrArraySpan}
}

// UnsupportedTypeError is raised for Go values outside the write inference
// table, and for type keywords unknown to the codec. The latter is also a
// format error.
type UnsupportedTypeError struct {
	Pos
	// Value holds the offending Go value when writing.
	Value any
	// Name holds the offending type keyword when reading.
	Name   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	var what string
	if e.Name != "" {
		what = fmt.Sprintf("type %q", e.Name)
	} else {
		what = fmt.Sprintf("value of type %T", e.Value)
	}
	if e.Reason != "" {
		what += " (" + e.Reason + ")"
	}
	return fmt.Sprintf("%s: %s%s", ErrUnsupportedType.Error(), what, e.Pos.String())
}

func (e *UnsupportedTypeError) Unwrap() []error {
	if e.Name != "" {
		return []error{ErrUnsupportedType, ErrFormat}
	}
	return []error{ErrUnsupportedType}
}

// UsageError reports misuse of the lazy reading API.
type UsageError struct {
	Pos
	Msg string
}

func (e *UsageError) Error() string {
	return ErrUsage.Error() + ": " + e.Msg + e.Pos.String()
}

func (e *UsageError) Unwrap() error {
	return ErrUsage
}

type located interface {
	pos() *Pos
}

func (p *Pos) pos() *Pos { return p }

// Locate fills in the tag and key of the outermost positioned error in err's
// tree, where they are not already set, and returns err.
func Locate(err error, tag, key string) error {
	var l located
	if errors.As(err, &l) {
		p := l.pos()
		if p.Tag == "" {
			p.Tag = tag
		}
		if p.Key == "" {
			p.Key = key
		}
	}
	return err
}
