package report

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// wordBase is the first rune used to stand for a word; private-use runes
// survive the string conversions inside diffmatchpatch.
const wordBase = 0xE000

// wordDiff compares two single-line, multi-word strings word by word. It
// returns nil for anything else, which is rendered as a plain old -> new line.
func wordDiff(oldText, newText string) []diffmatchpatch.Diff {
	if !strings.Contains(oldText, " ") || !strings.Contains(newText, " ") ||
		strings.Contains(oldText, "\n") || strings.Contains(newText, "\n") {
		return nil
	}
	var enc wordEncoder
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(enc.encode(oldText), enc.encode(newText), false)
	for i := range diffs {
		diffs[i].Text = enc.decode(diffs[i].Text)
	}
	return diffs
}

// wordEncoder maps each distinct word, trailing space included, to one rune.
type wordEncoder struct {
	words []string
	index map[string]rune
}

func (e *wordEncoder) encode(s string) []rune {
	if e.index == nil {
		e.index = make(map[string]rune)
	}
	var out []rune
	for _, w := range strings.SplitAfter(s, " ") {
		if w == "" {
			continue
		}
		r, ok := e.index[w]
		if !ok {
			r = rune(wordBase + len(e.words))
			e.index[w] = r
			e.words = append(e.words, w)
		}
		out = append(out, r)
	}
	return out
}

func (e *wordEncoder) decode(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(e.words[r-wordBase])
	}
	return b.String()
}
