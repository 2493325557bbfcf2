package token

import "fmt"

type Kind int

const (
	// KWord is a keyword, a name, or an unquoted ASCII literal.
	KWord Kind = iota
	// KString is a char value: the content between ASCII quotes, still
	// escaped, or a binary zero terminated string without its terminator.
	KString
	// KRaw is a run of fixed width binary value bytes.
	KRaw
)

func (k Kind) String() string {
	return map[Kind]string{
		KWord:   "KWord",
		KString: "KString",
		KRaw:    "KRaw",
	}[k]
}

type Token struct {
	Kind   Kind
	Offset int64
	Bytes  []byte
}

// Is reports whether t is the word w.
func (t *Token) Is(w string) bool {
	return t.Kind == KWord && string(t.Bytes) == w
}

func (t *Token) String() string {
	return string(t.Bytes)
}

func (t *Token) Info() string {
	if t.Kind == KRaw {
		return fmt.Sprintf("%s [% x] at offset %d", t.Kind, t.Bytes, t.Offset)
	}
	return fmt.Sprintf("%s %q at offset %d", t.Kind, t.Bytes, t.Offset)
}
