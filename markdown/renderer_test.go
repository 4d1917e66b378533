package markdown

import (
	"bytes"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestNormalizeFences(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"\\```go\nx\n\\```", "```go\nx\n```"},
		{"  \\```\n", "  ```\n"},
		{"text \\``` inline", "text \\``` inline"},
		{"```js\nplain\n```", "```js\nplain\n```"},
	}
	for _, tt := range tests {
		got := NormalizeFences(tt.input)
		if got != tt.expected {
			t.Errorf("NormalizeFences(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGoldmarkRendererBasics(t *testing.T) {
	r := NewRenderer(nil)
	tests := []struct {
		input string
		want  []string
	}{
		{"# Hi", []string{`<h1 id="hi">Hi</h1>`}},
		{"Some *text* and **bold**", []string{"<em>text</em>", "<strong>bold</strong>"}},
		{"| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<th>a</th>", "<td>2</td>"}},
		{"~~gone~~", []string{"<del>gone</del>"}},
		{"see https://example.com", []string{`<a href="https://example.com">https://example.com</a>`}},
		{"- [x] done", []string{`type="checkbox"`, "checked"}},
	}
	for _, tt := range tests {
		got, err := r.Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.input, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, w)
			}
		}
	}
}

func TestGoldmarkRendererOmitsRawHTML(t *testing.T) {
	r := NewRenderer(nil)
	for _, input := range []string{"<script>alert(1)</script>", "hello <script>alert(1)</script>"} {
		got, err := r.Render(input)
		if err != nil {
			t.Fatalf("Render(%q): %v", input, err)
		}
		if strings.Contains(got, "<script>") {
			t.Errorf("Render(%q) = %q, raw script passed through", input, got)
		}
	}
}

func TestGoldmarkRendererHeadingIDsMatchTOC(t *testing.T) {
	src := "# Getting Started\n\n## Install\n\ntext\n\n## Install\n\n```sh\n# comment\n```\n\n### API: `Fetch()`\n"
	got, err := NewRenderer(nil).Render(src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, h := range ExtractTOC(src) {
		want := fmt.Sprintf(`<h%d id="%s">`, h.Level, h.ID)
		if !strings.Contains(got, want) {
			t.Errorf("rendered HTML missing %s for heading %q:\n%s", want, h.Text, got)
		}
	}
}

var reHeadingID = regexp.MustCompile(`<h[1-6] id="([^"]*)"`)

func headingIDs(html string) []string {
	var ids []string
	for _, m := range reHeadingID.FindAllStringSubmatch(html, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func tocIDs(src string) []string {
	var ids []string
	for _, h := range ExtractTOC(src) {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestHeadingIDsAgreeAcrossFenceStyles(t *testing.T) {
	tests := []string{
		"# Intro\n~~~\n# Intro\n~~~\n# Intro\n",
		"# A\n  ```\n# A\n  ```\n# A ##\n",
		"# A\n````\n```\n# A\n````\n# A\n",
		"# Setup\n\\```md\n# Setup\n\\```\n## Next\n",
		"   ## Indented\n## Indented\n",
	}
	full := NewRenderer(nil)
	for _, src := range tests {
		want := tocIDs(src)
		got, err := full.Render(src)
		if err != nil {
			t.Fatalf("Render(%q): %v", src, err)
		}
		if ids := headingIDs(got); !reflect.DeepEqual(ids, want) {
			t.Errorf("full renderer IDs for %q = %v, TOC = %v", src, ids, want)
		}
		basic, _ := BasicRenderer{}.Render(src)
		if ids := headingIDs(basic); !reflect.DeepEqual(ids, want) {
			t.Errorf("basic renderer IDs for %q = %v, TOC = %v", src, ids, want)
		}
	}
}

func TestGoldmarkRendererIDsResetPerDocument(t *testing.T) {
	r := NewRenderer(nil)
	for i := 0; i < 2; i++ {
		got, err := r.Render("## Notes")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(got, `id="notes"`) {
			t.Errorf("render %d = %q, want id=\"notes\"", i, got)
		}
	}
}

func TestGoldmarkRendererEscapedFence(t *testing.T) {
	got, err := NewRenderer(nil).Render("\\```go\nfmt.Println(1)\n\\```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "<pre><code") || strings.Contains(got, "\\`") {
		t.Errorf("escaped fence not normalized: %q", got)
	}
}

func TestGoldmarkRendererHighlighting(t *testing.T) {
	r := NewRenderer(NewHighlighter("github"))

	got, err := r.Render("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, `class="chroma"`) || !strings.Contains(got, "func") {
		t.Errorf("go block not highlighted: %q", got)
	}

	got, err = r.Render("```nosuchlang\n<tag> & co\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "<tag>") || !strings.Contains(got, "&lt;tag&gt;") {
		t.Errorf("unknown language block should be escaped plain text: %q", got)
	}

	got, err = r.Render("```\n<b>x</b>\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "<b>x</b>") {
		t.Errorf("untagged block should be escaped: %q", got)
	}
}

func TestHighlighterWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHighlighter("monokai").WriteCSS(&buf); err != nil {
		t.Fatalf("WriteCSS: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("WriteCSS output missing .chroma rules: %q", buf.String())
	}
}

func TestNewHighlighterDefaults(t *testing.T) {
	if got := NewHighlighter("").Style(); got != DefaultStyle {
		t.Errorf("NewHighlighter(\"\").Style() = %q, want %q", got, DefaultStyle)
	}
}
