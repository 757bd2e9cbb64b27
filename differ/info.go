package differ

// infoFields are the info keys compared as leaves.
var infoFields = []string{"title", "version", "description", "termsOfService", "contact", "license"}

func (c *comparator) info(source, target map[string]any, result *DiffResult) {
	for _, key := range infoFields {
		if sv, tv := source[key], target[key]; !valuesEqual(sv, tv) {
			result.InfoChanges[key] = &LeafChange{Old: sv, New: tv}
		}
	}
}

// tags compares tag lists keyed by name.
func (c *comparator) tags(source, target []any) *SetChange {
	return c.keyedSet(source, target, leafItem, "name")
}

// servers compares server lists keyed by url.
func (c *comparator) servers(source, target []any) *SetChange {
	return c.keyedSet(source, target, leafItem, "url")
}
