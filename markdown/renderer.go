package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns Markdown source into HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// reEscapedFence matches a fence line written as \``` so a document can show
// a literal fence without opening one.
var reEscapedFence = regexp.MustCompile("(?m)^([ \\t]*)\\\\```")

// NormalizeFences unescapes backslash-escaped fence lines. Leading blanks and
// any language suffix are kept.
func NormalizeFences(src string) string {
	return reEscapedFence.ReplaceAllString(src, "${1}```")
}

// GoldmarkRenderer is the full renderer: CommonMark plus GFM tables,
// strikethrough, autolinks and task lists, with highlighted code blocks.
// Raw HTML in the source is omitted from the output.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the full renderer. A nil highlighter leaves code blocks
// as escaped plain text.
func NewRenderer(h *Highlighter) *GoldmarkRenderer {
	exts := []goldmark.Extender{extension.GFM}
	if h != nil {
		exts = append(exts, h.Extension())
	}
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// Render implements Renderer.
func (r *GoldmarkRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(NewAnchors()))
	if err := r.md.Convert([]byte(NormalizeFences(src)), &buf, parser.WithContext(pctx)); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}
