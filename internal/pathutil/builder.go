// Package pathutil builds and parses the locations used when reporting
// differences: dotted paths into a document and component schema refs.
package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

// PathBuilder builds dotted paths such as "paths./pets.get.responses.200"
// with push/pop semantics, so recursive walkers only pay for a string when
// they need one. Segments that contain a dot are written in brackets:
// content["application/vnd.api+json"] stays unambiguous.
type PathBuilder struct {
	segments []string
}

// Push appends a segment.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex appends an array index segment written as "[i]".
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

// Pop removes the last segment. Popping an empty builder is a no-op.
func (p *PathBuilder) Pop() {
	if len(p.segments) > 0 {
		p.segments = p.segments[:len(p.segments)-1]
	}
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int { return len(p.segments) }

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// String materializes the path.
func (p *PathBuilder) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		switch {
		case strings.HasPrefix(seg, "["):
			b.WriteString(seg)
		case i > 0 && strings.Contains(seg, "."):
			b.WriteString(`["`)
			b.WriteString(seg)
			b.WriteString(`"]`)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
		}
	}
	return b.String()
}

const maxPooledSegments = 64

var builderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]string, 0, 8)}
	},
}

// Get returns a reset PathBuilder from the pool.
func Get() *PathBuilder {
	p := builderPool.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool. Oversized builders are left to the GC.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPooledSegments {
		return
	}
	builderPool.Put(p)
}
