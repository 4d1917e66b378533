// Package markdown turns post bodies into HTML. The full renderer is built on
// goldmark with chroma highlighting; RenderBasic is a small line-based
// fallback that only understands headings, lists, code fences, paragraphs,
// bold and inline code.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reListItem   = regexp.MustCompile(`^[-*]\s+(.+)$`)
)

// Markdown returns a templ.Component that renders md with the basic renderer.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderBasic(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// HTML returns a templ.Component that writes already rendered HTML as is.
func HTML(rendered string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rendered)
		return err
	})
}

// BasicRenderer adapts RenderBasic to the Renderer interface. It never fails.
type BasicRenderer struct{}

// Render implements Renderer.
func (BasicRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	RenderBasic(&buf, src)
	return buf.String(), nil
}

// RenderBasic writes the HTML representation of md to buf.
func RenderBasic(buf *bytes.Buffer, md string) {
	anchors := NewAnchors()
	lines := strings.Split(NormalizeFences(md), "\n")
	inList := false
	inPara := false
	var code *fence

	flushCode := func() {
		if code != nil {
			buf.WriteString("</code></pre>")
			code = nil
		}
	}
	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if code != nil {
			if code.closes(line) {
				flushCode()
			} else {
				buf.WriteString(html.EscapeString(line))
				buf.WriteString("\n")
			}
			continue
		}

		if f, info, ok := openFence(line); ok {
			flushPara()
			flushList()
			if l := lang(info); l != "" {
				buf.WriteString(`<pre class="code-block"><code class="language-` + html.EscapeString(l) + `">`)
			} else {
				buf.WriteString(`<pre class="code-block"><code>`)
			}
			code = &f
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushPara()
			flushList()
			continue
		}

		if level, text, ok := parseHeading(line); ok {
			flushPara()
			flushList()
			fmt.Fprintf(buf, `<h%d id="%s">%s</h%d>`, level, anchors.Next(text), FormatInline(text), level)
			continue
		}

		if m := reListItem.FindStringSubmatch(line); m != nil {
			if !inList {
				flushPara()
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(FormatInline(strings.TrimSpace(m[1])))
			buf.WriteString("</li>")
			continue
		}

		if !inPara {
			flushList()
			buf.WriteString("<p>")
			inPara = true
		} else {
			buf.WriteString(" ")
		}
		buf.WriteString(FormatInline(strings.TrimSpace(line)))
	}
	flushPara()
	flushList()
	flushCode()
}

// FormatInline escapes s and applies the two inline spans the basic renderer
// knows about: **bold** and `code`. Anything else stays literal.
func FormatInline(s string) string {
	escaped := html.EscapeString(s)
	// Inline code is swapped for placeholders so bold never applies inside it.
	var inlineCodeBlocks []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(inlineCodeBlocks)) + "\x00"
		inlineCodeBlocks = append(inlineCodeBlocks, "<code>"+match[1]+"</code>")
		return placeholder
	})
	escaped = reBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	for i, code := range inlineCodeBlocks {
		escaped = strings.Replace(escaped, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}
