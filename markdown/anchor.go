package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Slugify converts a heading or title to a URL-safe slug: lowercase ASCII
// letters and digits, with every other run collapsed to a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// emptyAnchor is used when a heading has no sluggable characters.
const emptyAnchor = "section"

// Anchors hands out unique heading identifiers for one document. Repeated
// headings get a counter suffix: id, id-2, id-3.
//
// Anchors also satisfies goldmark's parser.IDs so the full renderer and the
// table of contents agree on every identifier.
type Anchors struct {
	used map[string]struct{}
}

// NewAnchors returns an empty identifier set.
func NewAnchors() *Anchors {
	return &Anchors{used: make(map[string]struct{})}
}

// Next returns the identifier for a heading with the given text.
func (a *Anchors) Next(text string) string {
	base := Slugify(text)
	if base == "" {
		base = emptyAnchor
	}
	id := base
	for n := 2; a.taken(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	a.used[id] = struct{}{}
	return id
}

func (a *Anchors) taken(id string) bool {
	_, ok := a.used[id]
	return ok
}

// Generate implements parser.IDs.
func (a *Anchors) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(a.Next(string(value)))
}

// Put implements parser.IDs.
func (a *Anchors) Put(value []byte) {
	a.used[string(value)] = struct{}{}
}
