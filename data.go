package roff

import (
	"maps"
	"slices"

	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"
)

// Data is the eager form of a document. Each tag name maps to its Keys, or
// to a []Keys, in document order, when the name occurs more than once.
type Data map[string]any

// Keys maps each key name of a tag to its ir.Value, or to a []ir.Value, in
// document order, when the name occurs more than once in the tag.
type Keys map[string]any

// Tags returns every occurrence of the tag called name.
func (d Data) Tags(name string) []Keys {
	switch x := d[name].(type) {
	case Keys:
		return []Keys{x}
	case []Keys:
		return x
	}
	return nil
}

// Tag returns the first occurrence of the tag called name.
func (d Data) Tag(name string) (Keys, bool) {
	ts := d.Tags(name)
	if len(ts) == 0 {
		return nil, false
	}
	return ts[0], true
}

// Values returns every occurrence of the key called name.
func (k Keys) Values(name string) []ir.Value {
	switch x := k[name].(type) {
	case ir.Value:
		return []ir.Value{x}
	case []ir.Value:
		return x
	}
	return nil
}

// Value returns the first occurrence of the key called name.
func (k Keys) Value(name string) (ir.Value, bool) {
	vs := k.Values(name)
	if len(vs) == 0 {
		return ir.Value{}, false
	}
	return vs[0], true
}

// Collect drains p into Data.
func Collect(p *parse.Parser) (Data, error) {
	d := Data{}
	for p.Next() {
		t := p.Tag()
		keys := Keys{}
		for t.Next() {
			k := t.Key()
			switch prev := keys[k.Name].(type) {
			case nil:
				keys[k.Name] = k.Value
			case ir.Value:
				keys[k.Name] = []ir.Value{prev, k.Value}
			case []ir.Value:
				keys[k.Name] = append(prev, k.Value)
			}
		}
		if err := t.Err(); err != nil {
			return nil, err
		}
		switch prev := d[t.Name()].(type) {
		case nil:
			d[t.Name()] = keys
		case Keys:
			d[t.Name()] = []Keys{prev, keys}
		case []Keys:
			d[t.Name()] = append(prev, keys)
		}
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Pair is one named entry of an ordered structure. As a tag, Value holds the
// keys in any form Unfold accepts for keys; as a key, Value holds anything
// ir.FromAny accepts.
type Pair struct {
	Name  string
	Value any
}

// Unfold turns a document shaped structure into an ir.Document.
//
// It accepts an ir.Document, a []Pair of tags, or a Data or map[string]any in
// which each tag is Keys, map[string]any, []Pair, or a slice of those for a
// repeated tag. Keys are likewise Keys or map[string]any, where a
// []ir.Value is a repeated key, or []Pair. Mappings are unordered: their
// tags and keys are written sorted by name, except that filedata comes
// first. Use []Pair or ir.Document to control order.
func Unfold(x any) (ir.Document, error) {
	switch x := x.(type) {
	case ir.Document:
		return x, nil
	case []ir.Tag:
		return ir.Document(x), nil
	case []Pair:
		var doc ir.Document
		for _, p := range x {
			tags, err := unfoldTags(p.Name, p.Value)
			if err != nil {
				return nil, err
			}
			doc = append(doc, tags...)
		}
		return doc, nil
	case Data:
		return unfoldMap(x)
	case map[string]any:
		return unfoldMap(x)
	}
	return nil, unsupported(x, "", "", "not a document")
}

func unfoldMap(m map[string]any) (ir.Document, error) {
	var doc ir.Document
	for _, name := range sortedNames(m) {
		tags, err := unfoldTags(name, m[name])
		if err != nil {
			return nil, err
		}
		doc = append(doc, tags...)
	}
	return doc, nil
}

func sortedNames(m map[string]any) []string {
	names := slices.Sorted(maps.Keys(m))
	if i := slices.Index(names, ir.FiledataTag); i > 0 {
		names = slices.Delete(names, i, i+1)
		names = slices.Insert(names, 0, ir.FiledataTag)
	}
	if i := slices.Index(names, ir.EOFTag); i >= 0 {
		names = append(slices.Delete(names, i, i+1), ir.EOFTag)
	}
	return names
}

func unfoldTags(name string, x any) ([]ir.Tag, error) {
	switch x := x.(type) {
	case []Keys:
		res := make([]ir.Tag, 0, len(x))
		for _, k := range x {
			t, err := unfoldTag(name, k)
			if err != nil {
				return nil, err
			}
			res = append(res, t)
		}
		return res, nil
	case []map[string]any:
		res := make([]ir.Tag, 0, len(x))
		for _, k := range x {
			t, err := unfoldTag(name, k)
			if err != nil {
				return nil, err
			}
			res = append(res, t)
		}
		return res, nil
	case []any:
		res := make([]ir.Tag, 0, len(x))
		for _, k := range x {
			t, err := unfoldTag(name, k)
			if err != nil {
				return nil, err
			}
			res = append(res, t)
		}
		return res, nil
	}
	t, err := unfoldTag(name, x)
	if err != nil {
		return nil, err
	}
	return []ir.Tag{t}, nil
}

func unfoldTag(name string, x any) (ir.Tag, error) {
	tag := ir.Tag{Name: name}
	var keys map[string]any
	switch x := x.(type) {
	case []Pair:
		for _, p := range x {
			v, err := unfoldValue(name, p.Name, p.Value)
			if err != nil {
				return tag, err
			}
			tag.Keys = append(tag.Keys, ir.Key(p.Name, v))
		}
		return tag, nil
	case []ir.TagKey:
		tag.Keys = x
		return tag, nil
	case Keys:
		keys = x
	case map[string]any:
		keys = x
	case nil:
		return tag, nil
	default:
		return tag, unsupported(x, name, "", "not a tag")
	}
	for _, kn := range slices.Sorted(maps.Keys(keys)) {
		if vs, ok := keys[kn].([]ir.Value); ok {
			for _, v := range vs {
				tag.Keys = append(tag.Keys, ir.Key(kn, v))
			}
			continue
		}
		v, err := unfoldValue(name, kn, keys[kn])
		if err != nil {
			return tag, err
		}
		tag.Keys = append(tag.Keys, ir.Key(kn, v))
	}
	return tag, nil
}

func unfoldValue(tag, key string, x any) (ir.Value, error) {
	v, err := ir.FromAny(x)
	if err != nil {
		return v, ir.Locate(err, tag, key)
	}
	return v, nil
}

func unsupported(x any, tag, key, reason string) error {
	return &ir.UnsupportedTypeError{
		Pos:    ir.Pos{Offset: -1, Tag: tag, Key: key},
		Value:  x,
		Reason: reason,
	}
}
