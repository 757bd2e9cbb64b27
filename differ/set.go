package differ

import (
	"github.com/erraggy/oasdelta/internal/maputil"
)

// itemComparator compares two values that share a name in a set. It returns
// nil when they are equal.
type itemComparator func(c *comparator, source, target any) Node

// set compares two named collections. Names only in target are New, names
// only in source are Removed, and names on both sides whose comparison is
// non-empty are Modified. Returns nil when nothing differs.
func (c *comparator) set(source, target map[string]any, cmp itemComparator) *SetChange {
	diff := &SetChange{}
	for _, name := range maputil.SortedKeys(source) {
		targetItem, ok := target[name]
		if !ok {
			diff.Removed = append(diff.Removed, name)
			continue
		}
		c.path.Push(name)
		n := cmp(c, source[name], targetItem)
		c.path.Pop()
		if !isEmpty(n) {
			diff.setModified(name, n)
		}
	}
	for _, name := range maputil.SortedKeys(target) {
		if _, ok := source[name]; !ok {
			diff.New = append(diff.New, name)
		}
	}
	if diff.Empty() {
		return nil
	}
	return diff
}

// keyedSet indexes a sequence of mappings by the string found under one of
// keys (first match wins) and compares the result as a set. Later entries
// replace earlier ones with the same key.
func (c *comparator) keyedSet(source, target []any, cmp itemComparator, keys ...string) *SetChange {
	return c.set(c.index(source, keys), c.index(target, keys), cmp)
}

func (c *comparator) index(list []any, keys []string) map[string]any {
	if len(list) == 0 {
		return nil
	}
	out := make(map[string]any, len(list))
	for i, item := range list {
		c.path.PushIndex(i)
		m := c.asMap(item)
		name, ok := "", false
		for _, key := range keys {
			if name, ok = m[key].(string); ok {
				break
			}
		}
		if !ok {
			c.path.Push(keys[0])
			panic(c.shapeError("string", m[keys[0]]))
		}
		c.path.Pop()
		out[name] = item
	}
	return out
}

// leafItem reports any inequality between two opaque values as a LeafChange.
func leafItem(_ *comparator, source, target any) Node {
	if valuesEqual(source, target) {
		return nil
	}
	return &LeafChange{Old: source, New: target}
}
