package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

var testSite = SiteConfig{Name: "Folio", URL: "https://example.com", Description: "desc", Author: "Ada"}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestHomeEscapesProfile(t *testing.T) {
	p := Profile{
		Name:    "Ada <Lovelace>",
		Role:    "Engineer",
		Socials: []Social{{Name: "GitHub", Handle: "@ada", URL: `https://github.com/ada"onclick="x`}},
	}
	got := render(t, Home(testSite, p, []content.Thought{{Slug: "t", Title: "A & B", Date: "Dec 2024", ReadTime: "5 min"}}))

	if strings.Contains(got, "<Lovelace>") || !strings.Contains(got, "Ada &lt;Lovelace&gt;") {
		t.Errorf("name not escaped: %s", got)
	}
	if strings.Contains(got, `"onclick="`) {
		t.Errorf("attribute value not escaped: %s", got)
	}
	if !strings.Contains(got, "A &amp; B") || !strings.Contains(got, `id="thought-t"`) {
		t.Errorf("thought missing: %s", got)
	}
	if !strings.HasPrefix(got, "<!doctype html>") || !strings.Contains(got, "<title>Folio</title>") {
		t.Errorf("layout missing: %s", got)
	}
}

func TestHomeIntroMarkdown(t *testing.T) {
	tests := []struct {
		intro    string
		expected string
	}{
		{"Builds **small** tools.", `<div class="lead"><p>Builds <strong>small</strong> tools.</p></div>`},
		{"One.\n\nTwo `go` things.", `<div class="lead"><p>One.</p><p>Two <code>go</code> things.</p></div>`},
		{"<b>raw</b>", `<div class="lead"><p>&lt;b&gt;raw&lt;/b&gt;</p></div>`},
	}
	for _, tt := range tests {
		got := render(t, Home(testSite, Profile{Name: "Ada", Intro: tt.intro}, nil))
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Home(Intro: %q) missing %q:\n%s", tt.intro, tt.expected, got)
		}
	}

	got := render(t, Home(testSite, Profile{Name: "Ada"}, nil))
	if strings.Contains(got, `class="lead"`) {
		t.Errorf("Home without intro rendered a lead block: %s", got)
	}
}

func TestLayoutShell(t *testing.T) {
	got := render(t, NotFound(testSite))
	for _, want := range []string{
		`<title>Not found | Folio</title>`,
		`<meta name="description" content="desc">`,
		`<meta property="og:type" content="website">`,
		`<script type="application/ld+json">{"@context":"https://schema.org"`,
		`<main id="main"><section class="error"><h1>Not found</h1>`,
		`<p>Built by Ada · <a href="/feed.xml">RSS</a></p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("NotFound output missing %q:\n%s", want, got)
		}
	}

	got = render(t, Layout(SiteConfig{Name: "Folio"}, PageMeta{}))
	if !strings.Contains(got, `<main id="main"></main>`) || !strings.Contains(got, "<p>Folio · ") {
		t.Errorf("Layout without children = %s", got)
	}
}

func TestPostCardDegraded(t *testing.T) {
	b := BlogPage{Posts: content.Page[content.Post]{Page: 1, Total: 2, Items: []content.Post{
		{Slug: "ok", Title: "OK", Date: "2024-01-01", ReadingTime: 1},
		{Slug: "bad", Title: "Bad", ReadingTime: 1, Degraded: true},
	}}}
	got := render(t, Blog(testSite, b))
	for _, want := range []string{
		`<article class="post-card"><p class="meta">2024-01-01 · 1 min read</p>`,
		`<article class="post-card degraded"><p class="meta">1 min read</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Blog output missing %q:\n%s", want, got)
		}
	}
}

func TestBlogPagination(t *testing.T) {
	b := BlogPage{
		Posts: content.Page[content.Post]{
			Items:   []content.Post{{Slug: "hello world", Title: "Hello", ReadingTime: 3, Tags: []string{"go"}}},
			Total:   11,
			HasMore: true,
			Page:    2,
		},
		Search: "go",
		Tags:   []string{"go", "web"},
		Tag:    "go",
	}
	got := render(t, Blog(testSite, b))

	for _, want := range []string{
		`href="/blog/hello%20world/"`,
		`href="/blog/?page=3&amp;q=go&amp;tag=go"`,
		`href="/blog/?q=go&amp;tag=go"`,
		`class="tag tag-active"`,
		"11 posts",
		"3 min read",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Blog output missing %q:\n%s", want, got)
		}
	}
}

func TestBlogEmpty(t *testing.T) {
	got := render(t, Blog(testSite, BlogPage{Posts: content.Page[content.Post]{Page: 1}}))
	if !strings.Contains(got, "No posts found.") || strings.Contains(got, `rel="next"`) {
		t.Errorf("empty blog page = %s", got)
	}
}

func TestPostPage(t *testing.T) {
	p := content.Post{
		Slug:        "hello",
		Title:       "Hello",
		Date:        "2024-01-01",
		ReadingTime: 2,
		HTML:        `<h2 id="intro">Intro</h2><p>x</p>`,
		TOC:         []markdown.Heading{{Level: 2, Text: "Intro", ID: "intro"}},
	}
	got := render(t, Post(testSite, p))

	for _, want := range []string{
		`<h2 id="intro">Intro</h2>`,
		`<a href="#intro">Intro</a>`,
		`"@type":"BlogPosting"`,
		`<link rel="canonical" href="https://example.com/blog/hello/">`,
		`<nav class="toc"><p>On this page</p><ul><li class="toc-l2">`,
		`<title>Hello | Folio</title>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Post output missing %q:\n%s", want, got)
		}
	}
}

func TestBlogQueryURL(t *testing.T) {
	tests := []struct {
		search, tag string
		page        int
		expected    string
	}{
		{"", "", 1, "/blog/"},
		{"", "", 2, "/blog/?page=2"},
		{"a b", "", 1, "/blog/?q=a+b"},
		{"", "c#", 0, "/blog/?tag=c%23"},
	}
	for _, tt := range tests {
		if got := BlogQueryURL(tt.search, tt.tag, tt.page); got != tt.expected {
			t.Errorf("BlogQueryURL(%q, %q, %d) = %q, want %q", tt.search, tt.tag, tt.page, got, tt.expected)
		}
	}
}

func TestJSONLDEscapesScriptClose(t *testing.T) {
	got := BlogPostingJsonLD(testSite, content.Post{Slug: "x", Title: "</script><script>alert(1)"})
	if strings.Contains(got, "</script>") {
		t.Errorf("JSON-LD contains a raw script close: %s", got)
	}
}
