package differ

import (
	"reflect"

	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/parser"
)

// valuesEqual reports deep equality of two decoded values. Numbers compare
// by value, so 1 and 1.0 are equal.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !valuesEqual(x, y) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && an == bn
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// schemaPair identifies a (source, target) schema pair by map identity.
type schemaPair struct {
	source, target uintptr
}

// identityChecker decides whether two schemas describe the same content,
// following component schema refs on both sides. A pair that is already
// being compared counts as equal, which is what stops recursive schemas.
type identityChecker struct {
	source, target parser.Document
	visited        map[schemaPair]bool
	c              *comparator
}

// contentIdentical reports whether source (from the source document) and
// target (from the target document) are structurally identical.
func contentIdentical(sourceDoc, targetDoc parser.Document, source, target map[string]any) bool {
	ic := &identityChecker{
		source:  sourceDoc,
		target:  targetDoc,
		visited: make(map[schemaPair]bool),
		c:       newComparator(),
	}
	defer ic.c.release()
	return ic.identical(source, target)
}

func (ic *identityChecker) identical(source, target map[string]any) bool {
	if source != nil && target != nil {
		pair := schemaPair{reflect.ValueOf(source).Pointer(), reflect.ValueOf(target).Pointer()}
		if ic.visited[pair] {
			return true
		}
		ic.visited[pair] = true
	}

	for _, name := range schemaConstraints {
		if !valuesEqual(source[name], target[name]) {
			return false
		}
	}

	sp, tp := ic.c.mapAt(source, "properties"), ic.c.mapAt(target, "properties")
	if len(sp) != len(tp) {
		return false
	}
	for _, name := range maputil.SortedKeys(sp) {
		tv, ok := tp[name]
		if !ok {
			return false
		}
		if !ic.identical(ic.c.asMap(sp[name]), ic.c.asMap(tv)) {
			return false
		}
	}

	if hasAny(source, target, "items") {
		_, inSource := source["items"]
		_, inTarget := target["items"]
		if !inSource || !inTarget {
			return false
		}
		if !ic.identical(ic.c.mapAt(source, "items"), ic.c.mapAt(target, "items")) {
			return false
		}
	}

	for _, name := range schemaCombinators {
		if !hasAny(source, target, name) {
			continue
		}
		_, inSource := source[name]
		_, inTarget := target[name]
		if !inSource || !inTarget {
			return false
		}
		sl, tl := ic.c.listAt(source, name), ic.c.listAt(target, name)
		if len(sl) != len(tl) {
			return false
		}
		for i := range sl {
			if !ic.identical(ic.c.asMap(sl[i]), ic.c.asMap(tl[i])) {
				return false
			}
		}
	}

	return ic.refsIdentical(source["$ref"], target["$ref"])
}

// refsIdentical compares two $ref values. Equal strings are identical;
// different strings are identical only when both resolve to component
// schemas with identical content.
func (ic *identityChecker) refsIdentical(sourceRef, targetRef any) bool {
	sr, _ := sourceRef.(string)
	tr, _ := targetRef.(string)
	switch {
	case sr == "" && tr == "":
		return true
	case sr == "" || tr == "":
		return false
	case sr == tr:
		return true
	}
	sourceSchema, sourceOK := ic.source.ResolveSchemaRef(sr)
	targetSchema, targetOK := ic.target.ResolveSchemaRef(tr)
	if !sourceOK || !targetOK {
		return false
	}
	return ic.identical(sourceSchema, targetSchema)
}
