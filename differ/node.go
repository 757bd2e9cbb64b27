package differ

import (
	"encoding/json"

	"github.com/erraggy/oasdelta/internal/maputil"
)

// Node is one unit of a diff tree. The concrete types are *LeafChange,
// *SetChange, *SchemaDiff, *CombinatorChange, *ObjectDiff and *PathDiff;
// consumers type-switch on them.
type Node interface {
	// Empty reports whether the node carries no differences.
	// All implementations are nil-receiver safe.
	Empty() bool
	// Size is the diff-size score: one per leaf change plus the length of
	// every added/removed/new list, summed recursively.
	Size() int

	encode() any
}

// isEmpty reports whether n is nil, a typed nil, or carries no differences.
func isEmpty(n Node) bool {
	return n == nil || n.Empty()
}

// LeafChange is a scalar or opaque value that changed. Both sides are always
// encoded, even when one of them is absent (nil).
type LeafChange struct {
	Old any
	New any
}

// Empty implements Node.
func (c *LeafChange) Empty() bool { return c == nil }

// Size implements Node.
func (c *LeafChange) Size() int {
	if c == nil {
		return 0
	}
	return 1
}

func (c *LeafChange) encode() any {
	return map[string]any{"old": c.Old, "new": c.New}
}

// MarshalJSON implements json.Marshaler.
func (c *LeafChange) MarshalJSON() ([]byte, error) { return json.Marshal(c.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (c *LeafChange) MarshalYAML() (any, error) { return c.encode(), nil }

// SetChange is the difference between two named collections.
type SetChange struct {
	// New holds names present only in the target, sorted.
	New []string
	// Removed holds names present only in the source, sorted.
	Removed []string
	// Modified holds the per-item diff of names present on both sides.
	Modified map[string]Node
}

// Empty implements Node.
func (c *SetChange) Empty() bool {
	return c == nil || (len(c.New) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0)
}

// Size implements Node.
func (c *SetChange) Size() int {
	if c == nil {
		return 0
	}
	n := len(c.New) + len(c.Removed)
	for _, m := range c.Modified {
		n += m.Size()
	}
	return n
}

func (c *SetChange) setModified(name string, n Node) {
	if c.Modified == nil {
		c.Modified = make(map[string]Node)
	}
	c.Modified[name] = n
}

func (c *SetChange) encode() any {
	out := make(map[string]any, 3)
	if len(c.New) > 0 {
		out["new"] = c.New
	}
	if len(c.Removed) > 0 {
		out["removed"] = c.Removed
	}
	if len(c.Modified) > 0 {
		out["modified"] = encodeNodes(c.Modified)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (c *SetChange) MarshalJSON() ([]byte, error) { return json.Marshal(c.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (c *SetChange) MarshalYAML() (any, error) { return c.encode(), nil }

// CombinatorChange holds the members of an allOf/anyOf/oneOf list that have
// no structurally equal counterpart on the other side. Members are the raw
// schema values from the documents.
type CombinatorChange struct {
	Added   []any
	Removed []any
}

// Empty implements Node.
func (c *CombinatorChange) Empty() bool {
	return c == nil || (len(c.Added) == 0 && len(c.Removed) == 0)
}

// Size implements Node.
func (c *CombinatorChange) Size() int {
	if c == nil {
		return 0
	}
	return len(c.Added) + len(c.Removed)
}

func (c *CombinatorChange) encode() any {
	added, removed := c.Added, c.Removed
	if added == nil {
		added = []any{}
	}
	if removed == nil {
		removed = []any{}
	}
	return map[string]any{"added": added, "removed": removed}
}

// MarshalJSON implements json.Marshaler.
func (c *CombinatorChange) MarshalJSON() ([]byte, error) { return json.Marshal(c.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (c *CombinatorChange) MarshalYAML() (any, error) { return c.encode(), nil }

// RenameStatus classifies a detected schema rename.
type RenameStatus string

const (
	// RenameStatusRename marks a rename whose content is identical.
	RenameStatusRename RenameStatus = "Rename"
	// RenameStatusModification marks a schema that was renamed and altered.
	RenameStatusModification RenameStatus = "Modification"
)

// RenameInfo annotates the diff of a renamed schema.
type RenameInfo struct {
	NewName string       `json:"new_name" yaml:"new_name"`
	Status  RenameStatus `json:"status" yaml:"status"`
}

// SchemaDiff is the structural difference between two schema definitions.
type SchemaDiff struct {
	// Constraints maps a constraint keyword (type, format, enum, ...) to its change.
	Constraints map[string]*LeafChange
	// Ref is set when the $ref strings differ. Refs are never resolved here.
	Ref *LeafChange
	// Properties is the nested set diff of the properties map.
	Properties *SetChange
	// Items is the diff of the array element schema.
	Items *SchemaDiff
	// Combinators maps allOf/anyOf/oneOf to the members added or removed.
	Combinators map[string]*CombinatorChange
	// Rename is set only on component schemas resolved by rename detection.
	Rename *RenameInfo
}

// Empty implements Node. Rename metadata alone does not count as a difference.
func (d *SchemaDiff) Empty() bool {
	return d == nil || (len(d.Constraints) == 0 && d.Ref.Empty() && d.Properties.Empty() &&
		d.Items.Empty() && len(d.Combinators) == 0)
}

// Size implements Node.
func (d *SchemaDiff) Size() int {
	if d == nil {
		return 0
	}
	n := len(d.Constraints) + d.Ref.Size() + d.Properties.Size() + d.Items.Size()
	for _, c := range d.Combinators {
		n += c.Size()
	}
	return n
}

func (d *SchemaDiff) setConstraint(name string, c *LeafChange) {
	if d.Constraints == nil {
		d.Constraints = make(map[string]*LeafChange)
	}
	d.Constraints[name] = c
}

func (d *SchemaDiff) setCombinator(name string, c *CombinatorChange) {
	if d.Combinators == nil {
		d.Combinators = make(map[string]*CombinatorChange)
	}
	d.Combinators[name] = c
}

func (d *SchemaDiff) encode() any {
	out := make(map[string]any, len(d.Constraints)+4)
	for name, c := range d.Constraints {
		out[name] = c.encode()
	}
	if d.Ref != nil {
		out["$ref"] = d.Ref.encode()
	}
	if !d.Properties.Empty() {
		out["properties"] = d.Properties.encode()
	}
	if !d.Items.Empty() {
		out["items"] = d.Items.encode()
	}
	for name, c := range d.Combinators {
		out[name] = c.encode()
	}
	if d.Rename != nil {
		out["rename"] = d.Rename
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (d *SchemaDiff) MarshalJSON() ([]byte, error) { return json.Marshal(d.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (d *SchemaDiff) MarshalYAML() (any, error) { return d.encode(), nil }

// ObjectDiff is the result of a fixed-attribute comparator (operation,
// parameter, header, request body, response, media type, link, example,
// security scheme). Fields is keyed by attribute name.
type ObjectDiff struct {
	Fields map[string]Node
}

// Empty implements Node.
func (d *ObjectDiff) Empty() bool { return d == nil || len(d.Fields) == 0 }

// Size implements Node.
func (d *ObjectDiff) Size() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, f := range d.Fields {
		n += f.Size()
	}
	return n
}

// set records n under key unless it is empty.
func (d *ObjectDiff) set(key string, n Node) {
	if isEmpty(n) {
		return
	}
	if d.Fields == nil {
		d.Fields = make(map[string]Node)
	}
	d.Fields[key] = n
}

// orNil returns nil for an empty diff so that callers never hold typed nils.
func (d *ObjectDiff) orNil() Node {
	if d.Empty() {
		return nil
	}
	return d
}

func (d *ObjectDiff) encode() any { return encodeNodes(d.Fields) }

// MarshalJSON implements json.Marshaler.
func (d *ObjectDiff) MarshalJSON() ([]byte, error) { return json.Marshal(d.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (d *ObjectDiff) MarshalYAML() (any, error) { return d.encode(), nil }

// PathDiff is the difference between two path items.
type PathDiff struct {
	NewOps      []string
	RemovedOps  []string
	ModifiedOps map[string]*ObjectDiff
}

// Empty implements Node.
func (d *PathDiff) Empty() bool {
	return d == nil || (len(d.NewOps) == 0 && len(d.RemovedOps) == 0 && len(d.ModifiedOps) == 0)
}

// Size implements Node.
func (d *PathDiff) Size() int {
	if d == nil {
		return 0
	}
	n := len(d.NewOps) + len(d.RemovedOps)
	for _, op := range d.ModifiedOps {
		n += op.Size()
	}
	return n
}

func (d *PathDiff) encode() any {
	out := make(map[string]any, 3)
	if len(d.NewOps) > 0 {
		out["new_ops"] = d.NewOps
	}
	if len(d.RemovedOps) > 0 {
		out["removed_ops"] = d.RemovedOps
	}
	if len(d.ModifiedOps) > 0 {
		ops := make(map[string]any, len(d.ModifiedOps))
		for method, op := range d.ModifiedOps {
			ops[method] = op.encode()
		}
		out["modified_ops"] = ops
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (d *PathDiff) MarshalJSON() ([]byte, error) { return json.Marshal(d.encode()) }

// MarshalYAML implements yaml.Marshaler.
func (d *PathDiff) MarshalYAML() (any, error) { return d.encode(), nil }

func encodeNodes(nodes map[string]Node) map[string]any {
	out := make(map[string]any, len(nodes))
	for _, name := range maputil.SortedKeys(nodes) {
		out[name] = nodes[name].encode()
	}
	return out
}

// walkSchemaDiffs calls fn for every SchemaDiff reachable from n, parents
// before children, visiting map members in name order.
func walkSchemaDiffs(n Node, fn func(*SchemaDiff)) {
	switch v := n.(type) {
	case *SchemaDiff:
		if v == nil {
			return
		}
		fn(v)
		walkSchemaDiffs(v.Properties, fn)
		walkSchemaDiffs(v.Items, fn)
	case *SetChange:
		if v == nil {
			return
		}
		for _, name := range maputil.SortedKeys(v.Modified) {
			walkSchemaDiffs(v.Modified[name], fn)
		}
	case *ObjectDiff:
		if v == nil {
			return
		}
		for _, name := range maputil.SortedKeys(v.Fields) {
			walkSchemaDiffs(v.Fields[name], fn)
		}
	case *PathDiff:
		if v == nil {
			return
		}
		for _, method := range maputil.SortedKeys(v.ModifiedOps) {
			walkSchemaDiffs(v.ModifiedOps[method], fn)
		}
	}
}
