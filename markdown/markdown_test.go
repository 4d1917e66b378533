package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFormatInlineBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLiteralConstructs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "*italic*"},
		{"__under__", "__under__"},
		{"[link](https://example.com)", "[link](https://example.com)"},
		{"![img](a.png)", "![img](a.png)"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"`code`", "<code>code</code>"},
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`a` and `b`", "<code>a</code> and <code>b</code>"},
		// bold inside backticks should not be formatted
		{"`**not bold**`", "<code>**not bold**</code>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineEscapesHTML(t *testing.T) {
	input := `<script>alert("x")</script> **hi**`
	got := FormatInline(input)
	if strings.Contains(got, "<script>") {
		t.Errorf("FormatInline(%q) = %q, want script escaped", input, got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "<strong>hi</strong>") {
		t.Errorf("FormatInline(%q) = %q", input, got)
	}
}

func TestRenderBasicCodeBlock(t *testing.T) {
	input := "```\ncode <here>\n```"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	want := "<pre class=\"code-block\"><code>code &lt;here&gt;\n</code></pre>"
	if got != want {
		t.Errorf("RenderBasic(%q) = %q, want %q", input, got, want)
	}
}

func TestRenderBasicCodeBlockWithLanguage(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if strings.Contains(got, "**") || !strings.Contains(got, "fmt.Println(&#34;hello&#34;)") {
		t.Errorf("code block content should be escaped verbatim: %q", got)
	}
}

func TestRenderBasicUnclosedCodeBlock(t *testing.T) {
	var buf bytes.Buffer
	RenderBasic(&buf, "```\nstill code")
	got := buf.String()
	if !strings.HasSuffix(got, "</code></pre>") {
		t.Errorf("unclosed fence should be closed at end of input: %q", got)
	}
}

func TestRenderBasicHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Heading 2", `<h2 id="heading-2">Heading 2</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
		{"###### Six", `<h6 id="six">Six</h6>`},
		{"## **Bold** title", `<h2 id="bold-title"><strong>Bold</strong> title</h2>`},
		{"#NoSpace", `<p>#NoSpace</p>`},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		RenderBasic(&buf, tt.input)
		got := buf.String()
		if got != tt.expected {
			t.Errorf("RenderBasic(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderBasicRepeatedHeadings(t *testing.T) {
	input := "## Intro\n## Intro\n## Intro"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	for _, id := range []string{`id="intro"`, `id="intro-2"`, `id="intro-3"`} {
		if !strings.Contains(got, id) {
			t.Errorf("RenderBasic(%q) = %q, missing %s", input, got, id)
		}
	}
}

func TestRenderBasicEscapedFence(t *testing.T) {
	input := "# Setup\n\\```md\n# Setup\n\\```\n## Next\n"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	if strings.Contains(got, "\\`") || strings.Contains(got, "setup-2") {
		t.Errorf("RenderBasic(%q) = %q, escaped fence not treated as code", input, got)
	}
	if !strings.Contains(got, `<code class="language-md"># Setup`) {
		t.Errorf("RenderBasic(%q) = %q, want code block with language-md", input, got)
	}
}

func TestRenderBasicTildeFence(t *testing.T) {
	input := "~~~\n```\n# not a heading\n~~~\ntext"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	want := "<pre class=\"code-block\"><code>```\n# not a heading\n</code></pre><p>text</p>"
	if got != want {
		t.Errorf("RenderBasic(%q) = %q, want %q", input, got, want)
	}
}

func TestRenderBasicList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"- item 1\n- item 2", "<ul><li>item 1</li><li>item 2</li></ul>"},
		{"* star\n- dash", "<ul><li>star</li><li>dash</li></ul>"},
		{"- `code` item", "<ul><li><code>code</code> item</li></ul>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		RenderBasic(&buf, tt.input)
		got := buf.String()
		if got != tt.expected {
			t.Errorf("RenderBasic(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderBasicParagraphs(t *testing.T) {
	input := "first line\nsecond line\n\nnext paragraph\n- item"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	want := "<p>first line second line</p><p>next paragraph</p><ul><li>item</li></ul>"
	if got != want {
		t.Errorf("RenderBasic(%q) = %q, want %q", input, got, want)
	}
}

func TestRenderBasicScriptEscaped(t *testing.T) {
	input := "<script>alert(1)</script>"
	var buf bytes.Buffer
	RenderBasic(&buf, input)
	got := buf.String()
	if strings.Contains(got, "<script>") {
		t.Errorf("RenderBasic(%q) = %q, want escaped", input, got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != `<h1 id="hi">Hi</h1>` {
		t.Errorf("Markdown(%q) = %q", "# Hi", got)
	}
}

func TestBasicRendererMatchesRenderBasic(t *testing.T) {
	src := "# T\n\n- a\n"
	var buf bytes.Buffer
	RenderBasic(&buf, src)
	got, err := BasicRenderer{}.Render(src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != buf.String() {
		t.Errorf("BasicRenderer.Render = %q, want %q", got, buf.String())
	}
}
