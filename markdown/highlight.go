package markdown

import (
	"fmt"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Highlighter holds syntax highlighting settings for fenced code blocks.
// Build one at startup and hand it to NewRenderer; the same instance writes
// the stylesheet that matches its class names.
type Highlighter struct {
	style   string
	classes bool
}

// HighlighterOption configures a Highlighter.
type HighlighterOption func(*Highlighter)

// WithInlineStyles emits style attributes instead of CSS classes.
func WithInlineStyles() HighlighterOption {
	return func(h *Highlighter) { h.classes = false }
}

// NewHighlighter returns a highlighter for the named chroma style. Unknown
// names fall back to chroma's default style.
func NewHighlighter(style string, opts ...HighlighterOption) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	h := &Highlighter{style: style, classes: true}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Style returns the configured style name.
func (h *Highlighter) Style() string { return h.style }

// Extension returns the goldmark extender that highlights fenced code.
func (h *Highlighter) Extension() goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithStyle(h.style),
		highlighting.WithGuessLanguage(false),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(h.classes),
			chromahtml.WithLineNumbers(false),
		),
	)
}

// WriteCSS writes the stylesheet for class-based output.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(h.style)); err != nil {
		return fmt.Errorf("markdown: write %s css: %w", h.style, err)
	}
	return nil
}
