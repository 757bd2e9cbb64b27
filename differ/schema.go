package differ

// schemaConstraints are the schema keywords compared by value.
var schemaConstraints = []string{
	"type", "format",
	"minLength", "maxLength", "pattern",
	"enum",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum",
	"minItems", "maxItems", "uniqueItems",
	"minProperties", "maxProperties",
	"required", "nullable", "readOnly", "writeOnly", "deprecated",
}

// schemaCombinators are the composition keywords compared as sets.
var schemaCombinators = []string{"allOf", "anyOf", "oneOf"}

// diffSchema compares two schema definitions. $ref values are compared as
// strings and never followed. Returns nil when nothing differs.
func diffSchema(source, target map[string]any) *SchemaDiff {
	c := newComparator()
	defer c.release()
	return c.schema(source, target)
}

func (c *comparator) schema(source, target map[string]any) *SchemaDiff {
	d := &SchemaDiff{}

	for _, name := range schemaConstraints {
		if sv, tv := source[name], target[name]; !valuesEqual(sv, tv) {
			d.setConstraint(name, &LeafChange{Old: sv, New: tv})
		}
	}

	if sv, tv := source["$ref"], target["$ref"]; !valuesEqual(sv, tv) {
		d.Ref = &LeafChange{Old: sv, New: tv}
	}

	if hasAny(source, target, "properties") {
		sp, tp := c.mapAt(source, "properties"), c.mapAt(target, "properties")
		c.path.Push("properties")
		d.Properties = c.set(sp, tp, (*comparator).schemaItem)
		c.path.Pop()
	}

	if hasAny(source, target, "items") {
		si, ti := c.mapAt(source, "items"), c.mapAt(target, "items")
		c.path.Push("items")
		d.Items = c.schema(si, ti)
		c.path.Pop()
	}

	for _, name := range schemaCombinators {
		if !hasAny(source, target, name) {
			continue
		}
		sl, tl := c.listAt(source, name), c.listAt(target, name)
		c.path.Push(name)
		if change := c.combinator(sl, tl); change != nil {
			d.setCombinator(name, change)
		}
		c.path.Pop()
	}

	if d.Empty() {
		return nil
	}
	return d
}

// schemaItem adapts schema to itemComparator.
func (c *comparator) schemaItem(source, target any) Node {
	if d := c.schema(c.asMap(source), c.asMap(target)); d != nil {
		return d
	}
	return nil
}

// combinator treats two member lists as sets under full structural
// equality: reordering is a no-op and a changed member is reported as one
// removal plus one addition.
func (c *comparator) combinator(source, target []any) *CombinatorChange {
	change := &CombinatorChange{}
	for i, member := range target {
		c.path.PushIndex(i)
		if !c.containsSchema(source, member) {
			change.Added = append(change.Added, member)
		}
		c.path.Pop()
	}
	for i, member := range source {
		c.path.PushIndex(i)
		if !c.containsSchema(target, member) {
			change.Removed = append(change.Removed, member)
		}
		c.path.Pop()
	}
	if change.Empty() {
		return nil
	}
	return change
}

func (c *comparator) containsSchema(list []any, member any) bool {
	m := c.asMap(member)
	for _, candidate := range list {
		if c.schema(c.asMap(candidate), m) == nil {
			return true
		}
	}
	return false
}
