package differ

import (
	"github.com/erraggy/oasdelta/parser"
)

// pathItem compares the operations of two path items. Path-level keys other
// than the HTTP methods are not compared.
func (c *comparator) pathItem(source, target map[string]any) *PathDiff {
	d := &PathDiff{}
	for _, method := range parser.HTTPMethods {
		_, inSource := source[method]
		_, inTarget := target[method]
		switch {
		case inSource && !inTarget:
			d.RemovedOps = append(d.RemovedOps, method)
		case !inSource && inTarget:
			d.NewOps = append(d.NewOps, method)
		case inSource && inTarget:
			so, to := c.mapAt(source, method), c.mapAt(target, method)
			c.path.Push(method)
			op := c.operation(so, to)
			c.path.Pop()
			if !op.Empty() {
				if d.ModifiedOps == nil {
					d.ModifiedOps = make(map[string]*ObjectDiff)
				}
				d.ModifiedOps[method] = op
			}
		}
	}
	if d.Empty() {
		return nil
	}
	return d
}

func (c *comparator) pathItemItem(source, target any) Node {
	if d := c.pathItem(c.asMap(source), c.asMap(target)); d != nil {
		return d
	}
	return nil
}

func (c *comparator) operation(source, target map[string]any) *ObjectDiff {
	d := &ObjectDiff{}
	diffLeaves(d, source, target, "summary", "description", "deprecated", "operationId")

	sp, tp := c.listAt(source, "parameters"), c.listAt(target, "parameters")
	c.path.Push("parameters")
	d.set("parameters", c.keyedSet(sp, tp, (*comparator).parameterItem, "name", "$ref"))
	c.path.Pop()

	if hasAny(source, target, "requestBody") {
		sb, tb := c.mapAt(source, "requestBody"), c.mapAt(target, "requestBody")
		c.path.Push("requestBody")
		d.set("requestBody", c.requestBody(sb, tb).orNil())
		c.path.Pop()
	}

	sr, tr := c.mapAt(source, "responses"), c.mapAt(target, "responses")
	c.path.Push("responses")
	d.set("responses", c.set(sr, tr, (*comparator).responseItem))
	c.path.Pop()

	return d
}

func (c *comparator) parameter(source, target map[string]any) *ObjectDiff {
	d := &ObjectDiff{}
	diffLeaves(d, source, target, "$ref", "in", "required", "description", "deprecated")
	c.schemaField(d, source, target)
	return d
}

func (c *comparator) parameterItem(source, target any) Node {
	return c.parameter(c.asMap(source), c.asMap(target)).orNil()
}

func (c *comparator) requestBody(source, target map[string]any) *ObjectDiff {
	d := &ObjectDiff{}
	diffLeaves(d, source, target, "$ref", "required")
	c.content(d, source, target)
	return d
}

func (c *comparator) requestBodyItem(source, target any) Node {
	return c.requestBody(c.asMap(source), c.asMap(target)).orNil()
}

func (c *comparator) response(source, target map[string]any) *ObjectDiff {
	d := &ObjectDiff{}
	diffLeaves(d, source, target, "$ref", "description")
	c.content(d, source, target)

	sh, th := c.mapAt(source, "headers"), c.mapAt(target, "headers")
	c.path.Push("headers")
	d.set("headers", c.set(sh, th, (*comparator).headerItem))
	c.path.Pop()
	return d
}

func (c *comparator) responseItem(source, target any) Node {
	return c.response(c.asMap(source), c.asMap(target)).orNil()
}

// content compares the media type maps of a request body or response.
func (c *comparator) content(d *ObjectDiff, source, target map[string]any) {
	sc, tc := c.mapAt(source, "content"), c.mapAt(target, "content")
	c.path.Push("content")
	d.set("content", c.set(sc, tc, (*comparator).mediaTypeItem))
	c.path.Pop()
}

func (c *comparator) mediaTypeItem(source, target any) Node {
	d := &ObjectDiff{}
	c.schemaField(d, c.asMap(source), c.asMap(target))
	return d.orNil()
}

// schemaField compares the schema keyword of a parameter, header or media
// type when either side has one.
func (c *comparator) schemaField(d *ObjectDiff, source, target map[string]any) {
	if !hasAny(source, target, "schema") {
		return
	}
	ss, ts := c.mapAt(source, "schema"), c.mapAt(target, "schema")
	c.path.Push("schema")
	if sd := c.schema(ss, ts); sd != nil {
		d.set("schema", sd)
	}
	c.path.Pop()
}
