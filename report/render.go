package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title is the heading of every report.
const Title = "OpenAPI Diff"

// Render writes a human-readable report of result to w.
func Render(w io.Writer, result *differ.DiffResult, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return fmt.Errorf("report: invalid options: %w", err)
	}
	p := &printer{
		style:   newStyle(cfg),
		verbose: cfg.detail == DetailVerbose,
		titler:  newTitler(),
	}
	p.report(result)
	if _, err := io.WriteString(w, p.buf.String()); err != nil {
		return fmt.Errorf("report: writing output: %w", err)
	}
	return nil
}

func newTitler() cases.Caser {
	return cases.Title(language.English)
}

type printer struct {
	buf     strings.Builder
	style   style
	verbose bool
	titler  cases.Caser
}

func (p *printer) report(r *differ.DiffResult) {
	p.style.title(&p.buf, Title)
	p.style.field(&p.buf, "Source", describeDocument(r.SourcePath, r.SourceVersion, r.SourceStats))
	p.style.field(&p.buf, "Target", describeDocument(r.TargetPath, r.TargetVersion, r.TargetStats))
	p.style.field(&p.buf, "Changes", strconv.Itoa(Summarize(r).Total()))
	p.buf.WriteString("\n")

	if !r.HasChanges() {
		p.style.note(&p.buf, "No differences found.")
		return
	}

	if len(r.InfoChanges) > 0 {
		p.style.section(&p.buf, "Info")
		for _, key := range maputil.SortedKeys(r.InfoChanges) {
			if p.verbose {
				p.change(0, key, r.InfoChanges[key])
			} else {
				p.style.item(&p.buf, 0, markModified, key)
			}
		}
		p.buf.WriteString("\n")
	}

	if len(r.NewPaths)+len(r.RemovedPaths)+len(r.ModifiedPaths) > 0 {
		p.style.section(&p.buf, "Paths")
		modified := make(map[string]differ.Node, len(r.ModifiedPaths))
		for path, diff := range r.ModifiedPaths {
			modified[path] = diff
		}
		p.members(0, r.NewPaths, r.RemovedPaths, modified)
		p.buf.WriteString("\n")
	}

	p.setSection("Tags", r.TagsChanges)
	p.setSection("Servers", r.ServersChanges)

	for _, category := range differ.ComponentCategories {
		p.componentSection(r, category)
	}
}

func (p *printer) setSection(heading string, c *differ.SetChange) {
	if c.Empty() {
		return
	}
	p.style.section(&p.buf, heading)
	p.members(0, c.New, c.Removed, c.Modified)
	p.buf.WriteString("\n")
}

func (p *printer) componentSection(r *differ.DiffResult, category string) {
	renamed := r.RenamedComponents[category]
	modified := make(map[string]differ.Node)
	for name, n := range r.ModifiedComponents[category] {
		if _, ok := renamed[name]; !ok {
			modified[name] = n
		}
	}
	added, removed := r.NewComponents[category], r.RemovedComponents[category]
	if len(added)+len(removed)+len(modified)+len(renamed) == 0 {
		return
	}

	p.style.section(&p.buf, p.heading(category))
	p.members(0, added, removed, modified)
	if len(renamed) == 0 {
		p.buf.WriteString("\n")
		return
	}

	olds := maputil.SortedKeys(renamed)
	rows := make([]renameRow, 0, len(olds))
	for _, old := range olds {
		rows = append(rows, renameRow{oldName: old, newName: renamed[old], status: renameStatus(r, category, old)})
	}
	if len(added)+len(removed)+len(modified) > 0 {
		p.buf.WriteString("\n")
	}
	p.style.renames(&p.buf, rows)
	if p.verbose {
		for _, old := range olds {
			n := r.ModifiedComponents[category][old]
			if isEmpty(n) {
				continue
			}
			p.style.item(&p.buf, 0, markModified, old+" -> "+renamed[old])
			p.children(1, n)
		}
	}
	if _, ok := p.style.(textStyle); ok || p.verbose {
		p.buf.WriteString("\n")
	}
}

// heading turns a camelCase category into a title, e.g. "requestBodies"
// becomes "Request Bodies".
func (p *printer) heading(category string) string {
	var words strings.Builder
	for i, r := range category {
		if i > 0 && unicode.IsUpper(r) {
			words.WriteByte(' ')
		}
		words.WriteRune(r)
	}
	return p.titler.String(words.String())
}

// members writes the added, removed and modified names of a collection; in
// verbose mode each modified member is followed by its nested changes.
func (p *printer) members(depth int, added, removed []string, modified map[string]differ.Node) {
	for _, name := range added {
		p.style.item(&p.buf, depth, markAdded, name)
	}
	for _, name := range removed {
		p.style.item(&p.buf, depth, markRemoved, name)
	}
	for _, name := range maputil.SortedKeys(modified) {
		if p.verbose {
			p.node(depth, name, modified[name])
		} else {
			p.style.item(&p.buf, depth, markModified, name)
		}
	}
}

func (p *printer) node(depth int, key string, n differ.Node) {
	if leaf, ok := n.(*differ.LeafChange); ok {
		p.change(depth, key, leaf)
		return
	}
	p.style.item(&p.buf, depth, markModified, key)
	p.children(depth+1, n)
}

func (p *printer) children(depth int, n differ.Node) {
	switch v := n.(type) {
	case *differ.SetChange:
		p.members(depth, v.New, v.Removed, v.Modified)
	case *differ.ObjectDiff:
		for _, key := range maputil.SortedKeys(v.Fields) {
			p.node(depth, key, v.Fields[key])
		}
	case *differ.PathDiff:
		for _, method := range v.NewOps {
			p.style.item(&p.buf, depth, markAdded, strings.ToUpper(method))
		}
		for _, method := range v.RemovedOps {
			p.style.item(&p.buf, depth, markRemoved, strings.ToUpper(method))
		}
		for _, method := range maputil.SortedKeys(v.ModifiedOps) {
			p.node(depth, strings.ToUpper(method), v.ModifiedOps[method])
		}
	case *differ.SchemaDiff:
		p.schemaChildren(depth, v)
	}
}

func (p *printer) schemaChildren(depth int, d *differ.SchemaDiff) {
	if d == nil {
		return
	}
	for _, key := range maputil.SortedKeys(d.Constraints) {
		p.change(depth, key, d.Constraints[key])
	}
	if d.Ref != nil {
		p.change(depth, "$ref", d.Ref)
	}
	if !d.Properties.Empty() {
		p.node(depth, "properties", d.Properties)
	}
	if !d.Items.Empty() {
		p.node(depth, "items", d.Items)
	}
	for _, key := range maputil.SortedKeys(d.Combinators) {
		c := d.Combinators[key]
		p.style.item(&p.buf, depth, markModified, key)
		for _, member := range c.Added {
			p.style.item(&p.buf, depth+1, markAdded, formatValue(member))
		}
		for _, member := range c.Removed {
			p.style.item(&p.buf, depth+1, markRemoved, formatValue(member))
		}
	}
}

func (p *printer) change(depth int, key string, c *differ.LeafChange) {
	oldText, oldIsString := c.Old.(string)
	newText, newIsString := c.New.(string)
	if oldIsString && newIsString {
		if diffs := wordDiff(oldText, newText); diffs != nil {
			p.style.wordChange(&p.buf, depth, key, diffs)
			return
		}
	}
	p.style.change(&p.buf, depth, key, formatValue(c.Old), formatValue(c.New))
}

// formatValue renders a document value on one line. Absent values print as
// "(none)"; maps and lists print as compact JSON.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "(none)"
	case string:
		return v
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

func describeDocument(path, version string, stats parser.DocumentStats) string {
	if version == "" {
		version = "unknown version"
	}
	return fmt.Sprintf("%s (%s, %d paths, %d operations, %d schemas)",
		path, version, stats.PathCount, stats.OperationCount, stats.SchemaCount)
}

func renameStatus(r *differ.DiffResult, category, old string) string {
	if d, ok := r.ModifiedComponents[category][old].(*differ.SchemaDiff); ok && d.Rename != nil {
		return string(d.Rename.Status)
	}
	return ""
}

func isEmpty(n differ.Node) bool {
	return n == nil || n.Empty()
}
