package differ

// Component categories compared under components.
const (
	ComponentSchemas         = "schemas"
	ComponentParameters      = "parameters"
	ComponentResponses       = "responses"
	ComponentRequestBodies   = "requestBodies"
	ComponentSecuritySchemes = "securitySchemes"
	ComponentHeaders         = "headers"
	ComponentLinks           = "links"
	ComponentCallbacks       = "callbacks"
	ComponentExamples        = "examples"
)

// ComponentCategories lists the compared categories in report order.
var ComponentCategories = []string{
	ComponentSchemas,
	ComponentParameters,
	ComponentResponses,
	ComponentRequestBodies,
	ComponentSecuritySchemes,
	ComponentHeaders,
	ComponentLinks,
	ComponentCallbacks,
	ComponentExamples,
}

var componentComparators = map[string]itemComparator{
	ComponentSchemas:         (*comparator).schemaItem,
	ComponentParameters:      (*comparator).parameterItem,
	ComponentResponses:       (*comparator).responseItem,
	ComponentRequestBodies:   (*comparator).requestBodyItem,
	ComponentSecuritySchemes: (*comparator).securitySchemeItem,
	ComponentHeaders:         (*comparator).headerItem,
	ComponentLinks:           (*comparator).linkItem,
	ComponentCallbacks:       leafItem,
	ComponentExamples:        (*comparator).exampleItem,
}

// components compares every category and records the outcome in result.
// A category with any difference gets entries in all three of
// NewComponents, RemovedComponents and ModifiedComponents, possibly empty.
func (c *comparator) components(source, target map[string]any, result *DiffResult) {
	for _, category := range ComponentCategories {
		sc, tc := c.mapAt(source, category), c.mapAt(target, category)
		c.path.Push(category)
		diff := c.set(sc, tc, componentComparators[category])
		c.path.Pop()
		if diff == nil {
			continue
		}
		result.NewComponents[category] = nonNil(diff.New)
		result.RemovedComponents[category] = nonNil(diff.Removed)
		if diff.Modified == nil {
			diff.Modified = make(map[string]Node)
		}
		result.ModifiedComponents[category] = diff.Modified
	}
}

func (c *comparator) headerItem(source, target any) Node {
	sm, tm := c.asMap(source), c.asMap(target)
	d := &ObjectDiff{}
	diffLeaves(d, sm, tm, "$ref", "description", "required", "deprecated", "style", "explode")
	c.schemaField(d, sm, tm)
	return d.orNil()
}

func (c *comparator) linkItem(source, target any) Node {
	d := &ObjectDiff{}
	diffLeaves(d, c.asMap(source), c.asMap(target), "operationRef", "operationId", "description", "server")
	return d.orNil()
}

func (c *comparator) exampleItem(source, target any) Node {
	d := &ObjectDiff{}
	diffLeaves(d, c.asMap(source), c.asMap(target), "summary", "description", "value", "externalValue")
	return d.orNil()
}

func (c *comparator) securitySchemeItem(source, target any) Node {
	d := &ObjectDiff{}
	diffLeaves(d, c.asMap(source), c.asMap(target),
		"type", "description", "name", "in", "scheme", "bearerFormat", "flows", "openIdConnectUrl")
	return d.orNil()
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
