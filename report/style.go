package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type marker int

const (
	markAdded marker = iota
	markRemoved
	markModified
)

type renameRow struct {
	oldName, newName, status string
}

// style writes the syntax of one output format into a builder.
type style interface {
	title(b *strings.Builder, s string)
	section(b *strings.Builder, s string)
	field(b *strings.Builder, label, value string)
	note(b *strings.Builder, s string)
	item(b *strings.Builder, depth int, m marker, text string)
	change(b *strings.Builder, depth int, key, oldValue, newValue string)
	wordChange(b *strings.Builder, depth int, key string, diffs []diffmatchpatch.Diff)
	renames(b *strings.Builder, rows []renameRow)
}

func newStyle(cfg *renderConfig) style {
	if cfg.format == FormatMarkdown {
		return markdownStyle{}
	}
	s := textStyle{
		added:    fmt.Sprint,
		removed:  fmt.Sprint,
		modified: fmt.Sprint,
	}
	if cfg.color {
		s.added = colorFunc(color.FgGreen)
		s.removed = colorFunc(color.FgRed)
		s.modified = colorFunc(color.FgYellow)
	}
	return s
}

// colorFunc forces color on regardless of the terminal detection done by
// the color package; the caller decides via WithColor.
func colorFunc(attr color.Attribute) func(a ...any) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

type textStyle struct {
	added, removed, modified func(a ...any) string
}

func (textStyle) title(b *strings.Builder, s string) {
	fmt.Fprintf(b, "%s\n%s\n\n", s, strings.Repeat("=", len(s)))
}

func (textStyle) section(b *strings.Builder, s string) {
	fmt.Fprintf(b, "%s\n%s\n", s, strings.Repeat("-", len(s)))
}

func (textStyle) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-8s %s\n", label+":", value)
}

func (textStyle) note(b *strings.Builder, s string) {
	b.WriteString(s + "\n")
}

func (t textStyle) item(b *strings.Builder, depth int, m marker, text string) {
	fmt.Fprintf(b, "%s%s %s\n", textIndent(depth), t.mark(m), text)
}

func (t textStyle) change(b *strings.Builder, depth int, key, oldValue, newValue string) {
	fmt.Fprintf(b, "%s%s %s: %s -> %s\n", textIndent(depth), t.mark(markModified), key,
		t.removed(oldValue), t.added(newValue))
}

func (t textStyle) wordChange(b *strings.Builder, depth int, key string, diffs []diffmatchpatch.Diff) {
	var line strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			line.WriteString(wrapWords(d.Text, "[-", "-]", t.removed))
		case diffmatchpatch.DiffInsert:
			line.WriteString(wrapWords(d.Text, "{+", "+}", t.added))
		default:
			line.WriteString(d.Text)
		}
	}
	fmt.Fprintf(b, "%s%s %s: %s\n", textIndent(depth), t.mark(markModified), key, line.String())
}

func (t textStyle) renames(b *strings.Builder, rows []renameRow) {
	for _, r := range rows {
		t.item(b, 0, markModified, fmt.Sprintf("%s -> %s (%s)", r.oldName, r.newName, r.status))
	}
}

func (t textStyle) mark(m marker) string {
	switch m {
	case markAdded:
		return t.added("+")
	case markRemoved:
		return t.removed("-")
	default:
		return t.modified("~")
	}
}

func textIndent(depth int) string {
	return "  " + strings.Repeat("    ", depth)
}

type markdownStyle struct{}

func (markdownStyle) title(b *strings.Builder, s string) {
	fmt.Fprintf(b, "# %s\n\n", s)
}

func (markdownStyle) section(b *strings.Builder, s string) {
	fmt.Fprintf(b, "## %s\n\n", s)
}

func (markdownStyle) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func (markdownStyle) note(b *strings.Builder, s string) {
	b.WriteString(s + "\n")
}

func (markdownStyle) item(b *strings.Builder, depth int, m marker, text string) {
	label := "Modified"
	switch m {
	case markAdded:
		label = "Added"
	case markRemoved:
		label = "Removed"
	}
	fmt.Fprintf(b, "%s- %s `%s`\n", strings.Repeat("  ", depth), label, text)
}

func (markdownStyle) change(b *strings.Builder, depth int, key, oldValue, newValue string) {
	fmt.Fprintf(b, "%s- `%s`: `%s` → `%s`\n", strings.Repeat("  ", depth), key, oldValue, newValue)
}

func (markdownStyle) wordChange(b *strings.Builder, depth int, key string, diffs []diffmatchpatch.Diff) {
	var line strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			line.WriteString(wrapWords(d.Text, "~~", "~~", fmt.Sprint))
		case diffmatchpatch.DiffInsert:
			line.WriteString(wrapWords(d.Text, "**", "**", fmt.Sprint))
		default:
			line.WriteString(d.Text)
		}
	}
	fmt.Fprintf(b, "%s- `%s`: %s\n", strings.Repeat("  ", depth), key, line.String())
}

func (markdownStyle) renames(b *strings.Builder, rows []renameRow) {
	b.WriteString("| Old | New | Status |\n| --- | --- | --- |\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| `%s` | `%s` | %s |\n", r.oldName, r.newName, r.status)
	}
	b.WriteString("\n")
}

// wrapWords encloses text in opening/closing, keeping trailing spaces outside so
// that Markdown emphasis stays valid.
func wrapWords(text, opening, closing string, paint func(a ...any) string) string {
	words := strings.TrimRight(text, " ")
	return paint(opening+words+closing) + text[len(words):]
}
