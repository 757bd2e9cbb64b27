package differ

import (
	"fmt"

	"github.com/erraggy/oasdelta/internal/pathutil"
)

// comparator carries the location of the node being compared so that a
// malformed document fails with a message naming the offending path.
type comparator struct {
	path *pathutil.PathBuilder
}

// newComparator returns a comparator positioned at root. Call release when
// done with it.
func newComparator(root ...string) *comparator {
	c := &comparator{path: pathutil.Get()}
	for _, seg := range root {
		c.path.Push(seg)
	}
	return c
}

func (c *comparator) release() {
	pathutil.Put(c.path)
	c.path = nil
}

// asMap returns v as a mapping. Absent and null values are an empty mapping;
// anything else panics.
func (c *comparator) asMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return t
	default:
		panic(c.shapeError("map", v))
	}
}

// asList returns v as a sequence. Absent and null values are an empty
// sequence; anything else panics.
func (c *comparator) asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		panic(c.shapeError("list", v))
	}
}

// mapAt returns m[key] as a mapping, reporting key in the panic message.
func (c *comparator) mapAt(m map[string]any, key string) map[string]any {
	c.path.Push(key)
	defer c.path.Pop()
	return c.asMap(m[key])
}

// listAt returns m[key] as a sequence, reporting key in the panic message.
func (c *comparator) listAt(m map[string]any, key string) []any {
	c.path.Push(key)
	defer c.path.Pop()
	return c.asList(m[key])
}

func (c *comparator) shapeError(want string, got any) string {
	at := c.path.String()
	if at == "" {
		at = "document root"
	}
	return fmt.Sprintf("differ: expected %s at %s, got %T", want, at, got)
}

// hasAny reports whether key is present (even as null) on either side.
func hasAny(source, target map[string]any, key string) bool {
	_, inSource := source[key]
	_, inTarget := target[key]
	return inSource || inTarget
}

// diffLeaves records a LeafChange in d for every key whose values differ.
func diffLeaves(d *ObjectDiff, source, target map[string]any, keys ...string) {
	for _, key := range keys {
		if sv, tv := source[key], target[key]; !valuesEqual(sv, tv) {
			d.set(key, &LeafChange{Old: sv, New: tv})
		}
	}
}
