package ir

// TagKey is one named value inside a tag.
type TagKey struct {
	Name  string
	Value Value
}

// Tag is a named, ordered group of tag keys. Key names need not be unique.
type Tag struct {
	Name string
	Keys []TagKey
}

// Document is an ordered sequence of tags. Tag names need not be unique and
// the terminating eof tag is implicit.
type Document []Tag

func NewTag(name string, keys ...TagKey) Tag {
	return Tag{Name: name, Keys: keys}
}

func Key(name string, v Value) TagKey {
	return TagKey{Name: name, Value: v}
}

// Get returns the first key named name.
func (t *Tag) Get(name string) (Value, bool) {
	for i := range t.Keys {
		if t.Keys[i].Name == name {
			return t.Keys[i].Value, true
		}
	}
	return Value{}, false
}

// Get returns the first tag named name.
func (d Document) Get(name string) (*Tag, bool) {
	for i := range d {
		if d[i].Name == name {
			return &d[i], true
		}
	}
	return nil, false
}

func (k TagKey) Equal(o TagKey) bool {
	return k.Name == o.Name && k.Value.Equal(o.Value)
}

func (t Tag) Equal(o Tag) bool {
	if t.Name != o.Name || len(t.Keys) != len(o.Keys) {
		return false
	}
	for i := range t.Keys {
		if !t.Keys[i].Equal(o.Keys[i]) {
			return false
		}
	}
	return true
}

func (d Document) Equal(o Document) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Conventional tag and key names.
const (
	EOFTag          = "eof"
	FiledataTag     = "filedata"
	VersionTag      = "version"
	ByteswapTestKey = "byteswaptest"
)
