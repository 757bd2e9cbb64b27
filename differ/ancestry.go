package differ

import (
	"slices"
	"strings"

	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/internal/pathutil"
	"github.com/erraggy/oasdelta/parser"
)

// LinkKind classifies one step of an ancestry chain.
type LinkKind string

const (
	// LinkSchema is a component schema.
	LinkSchema LinkKind = "SCHEMA"
	// LinkEndpoint is a path under paths.
	LinkEndpoint LinkKind = "ENDPOINT"
	// LinkComponent is a non-schema component, named "<category>.<name>".
	LinkComponent LinkKind = "COMPONENT"
	// LinkDocument is any other top-level section of the document.
	LinkDocument LinkKind = "DOCUMENT"
	// LinkOrphan marks a schema that nothing references.
	LinkOrphan LinkKind = "ORPHAN"
)

// MaxAncestryChains caps the chains reported per schema.
const MaxAncestryChains = 6

// AncestryLink is one step of a chain.
type AncestryLink struct {
	Name string   `json:"name" yaml:"name"`
	Kind LinkKind `json:"kind" yaml:"kind"`
}

// Ancestry lists the reference chains leading from a schema back to the
// places that use it.
type Ancestry struct {
	Schema string `json:"schema" yaml:"schema"`
	// Chains start at Schema and end at an endpoint, a non-schema component,
	// another top-level section, or an orphan marker.
	Chains [][]AncestryLink `json:"chains" yaml:"chains"`
	// Truncated is set when more than MaxAncestryChains chains exist.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// formatChain renders a chain as "Child (SCHEMA) <- Parent (SCHEMA) <- /pets (ENDPOINT)".
func formatChain(chain []AncestryLink) string {
	parts := make([]string, len(chain))
	for i, link := range chain {
		parts[i] = link.Name + " (" + string(link.Kind) + ")"
	}
	return strings.Join(parts, " <- ")
}

// FormatChains renders every chain of a on its own line.
func (a Ancestry) FormatChains() []string {
	out := make([]string, len(a.Chains))
	for i, chain := range a.Chains {
		out[i] = formatChain(chain)
	}
	return out
}

// TraceAncestry explains where each named schema is used in doc by
// following $ref back-links up to the endpoints. Schemas that take part in a
// reference cycle stop at the repeat. Results follow the order of names.
func TraceAncestry(doc parser.Document, names []string) []Ancestry {
	parents := buildParentMap(doc)
	out := make([]Ancestry, 0, len(names))
	for _, name := range names {
		chains := ancestryChains(name, parents, map[string]bool{}, MaxAncestryChains+1)
		a := Ancestry{Schema: name, Chains: chains}
		if len(chains) > MaxAncestryChains {
			a.Chains = chains[:MaxAncestryChains]
			a.Truncated = true
		}
		out = append(out, a)
	}
	return out
}

// parentMap maps a schema name to the distinct places referencing it.
type parentMap map[string][]AncestryLink

func (p parentMap) add(child string, parent AncestryLink) {
	if !slices.Contains(p[child], parent) {
		p[child] = append(p[child], parent)
	}
}

func buildParentMap(doc parser.Document) parentMap {
	parents := make(parentMap)
	for _, key := range maputil.SortedKeys(doc) {
		switch key {
		case "paths":
			paths, _ := doc[key].(map[string]any)
			for _, path := range maputil.SortedKeys(paths) {
				collectRefs(paths[path], AncestryLink{Name: path, Kind: LinkEndpoint}, parents)
			}
		case "components":
			components, _ := doc[key].(map[string]any)
			for _, category := range maputil.SortedKeys(components) {
				members, _ := components[category].(map[string]any)
				for _, name := range maputil.SortedKeys(members) {
					link := AncestryLink{Name: category + "." + name, Kind: LinkComponent}
					if category == ComponentSchemas {
						link = AncestryLink{Name: name, Kind: LinkSchema}
					}
					collectRefs(members[name], link, parents)
				}
			}
		default:
			collectRefs(doc[key], AncestryLink{Name: key, Kind: LinkDocument}, parents)
		}
	}
	return parents
}

// collectRefs records owner as a parent of every schema referenced anywhere
// inside v.
func collectRefs(v any, owner AncestryLink, parents parentMap) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok {
			if name, ok := pathutil.SchemaNameFromRef(ref); ok {
				parents.add(name, owner)
			}
		}
		for _, key := range maputil.SortedKeys(t) {
			collectRefs(t[key], owner, parents)
		}
	case []any:
		for _, item := range t {
			collectRefs(item, owner, parents)
		}
	}
}

// ancestryChains returns at most limit chains for name.
func ancestryChains(name string, parents parentMap, visiting map[string]bool, limit int) [][]AncestryLink {
	if visiting[name] {
		return nil
	}
	visiting[name] = true
	defer delete(visiting, name)

	self := AncestryLink{Name: name, Kind: LinkSchema}
	direct := parents[name]
	if len(direct) == 0 {
		return [][]AncestryLink{{{Name: name, Kind: LinkOrphan}}}
	}

	var chains [][]AncestryLink
	for _, parent := range direct {
		if len(chains) >= limit {
			break
		}
		if parent.Kind != LinkSchema {
			chains = append(chains, []AncestryLink{self, parent})
			continue
		}
		for _, rest := range ancestryChains(parent.Name, parents, visiting, limit-len(chains)) {
			chains = append(chains, append([]AncestryLink{self}, rest...))
		}
	}
	return chains
}
