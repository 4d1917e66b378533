package folio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eringen/folio/remote"
)

const firstPost = `---
title: "First Post"
date: 2024-03-01
summary: Opening notes
tags: [go, web]
---
# Intro

Hello **world**.

` + "```go\nfunc main() {}\n```\n"

const secondPost = `---
title: Second Post
date: 2024-04-01
summary: More notes
tags: [rust]
---
Body text.
`

// newBlogHost serves a contents API listing and raw downloads for files.
func newBlogHost(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		var entries []map[string]any
		for name := range files {
			entries = append(entries, map[string]any{
				"name":         name,
				"path":         "src/content/blog/" + name,
				"type":         "file",
				"download_url": srv.URL + "/raw/" + name,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/raw/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, cfg SiteConfig) *App {
	t.Helper()
	a := New(cfg)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func blogApp(t *testing.T) *App {
	t.Helper()
	srv := newBlogHost(t, map[string]string{
		"first-post.md":  firstPost,
		"second-post.md": secondPost,
	})
	return newTestApp(t, SiteConfig{
		Name: "Test Site",
		URL:  "https://example.com",
		Remote: remote.Config{
			Owner:   "o",
			Repo:    "r",
			BaseURL: srv.URL,
		},
	})
}

func get(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	a := blogApp(t)
	tests := []struct {
		target string
		code   int
		want   string
	}{
		{"/", http.StatusOK, "Test Site"},
		{"/blog/", http.StatusOK, "Second Post"},
		{"/blog/?tag=go", http.StatusOK, "First Post"},
		{"/blog/first-post/", http.StatusOK, `id="intro"`},
		{"/blog/missing/", http.StatusNotFound, ""},
		{"/blog/?page=x", http.StatusBadRequest, ""},
		{"/feed.xml", http.StatusOK, "<rss"},
		{"/sitemap.xml", http.StatusOK, "https://example.com/blog/first-post/"},
		{"/robots.txt", http.StatusOK, "Sitemap: https://example.com/sitemap.xml"},
		{"/public/highlight.css", http.StatusOK, ".chroma"},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		if rec.Code != tt.code {
			t.Errorf("GET %s = %d, want %d", tt.target, rec.Code, tt.code)
			continue
		}
		if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s body missing %q", tt.target, tt.want)
		}
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := blogApp(t)
	rec := get(a, "/blog")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("GET /blog = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/" {
		t.Errorf("Location = %q, want %q", loc, "/blog/")
	}
}

func TestAPIContent(t *testing.T) {
	a := blogApp(t)
	tests := []struct {
		name   string
		target string
		code   int
		kind   string
		errKey string
	}{
		{"blog list", "/api/content", http.StatusOK, "list", ""},
		{"blog single", "/api/content?slug=second-post", http.StatusOK, "single", ""},
		{"thoughts list", "/api/content?domain=thoughts", http.StatusOK, "list", ""},
		{"missing post", "/api/content?slug=nope", http.StatusNotFound, "", "not_found"},
		{"bad domain", "/api/content?domain=videos", http.StatusBadRequest, "", "invalid_query"},
		{"bad limit", "/api/content?limit=-1", http.StatusBadRequest, "", "invalid_query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(a, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.code, rec.Body.String())
			}
			if got := rec.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", got)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.kind != "" && body["kind"] != tt.kind {
				t.Errorf("kind = %v, want %s", body["kind"], tt.kind)
			}
			if tt.errKey != "" && body["error"] != tt.errKey {
				t.Errorf("error = %v, want %s", body["error"], tt.errKey)
			}
		})
	}
}

func TestBlogWithoutRepository(t *testing.T) {
	a := newTestApp(t, SiteConfig{URL: "https://example.com"})

	if rec := get(a, "/"); rec.Code != http.StatusOK {
		t.Errorf("GET / = %d, want 200", rec.Code)
	}
	if rec := get(a, "/blog/"); rec.Code != http.StatusInternalServerError {
		t.Errorf("GET /blog/ = %d, want 500", rec.Code)
	}
	rec := get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "https://example.com/blog/") {
		t.Errorf("sitemap missing blog index: %s", rec.Body.String())
	}
	rec = get(a, "/api/content")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"config"`) {
		t.Errorf("GET /api/content = %d %s, want 500 config", rec.Code, rec.Body.String())
	}
}

func TestCollectTags(t *testing.T) {
	got := collectTags(nil, "")
	if len(got) != 0 {
		t.Errorf("collectTags(nil) = %v, want empty", got)
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"https://example.com", "sitemap.xml", "https://example.com/sitemap.xml"},
		{"https://example.com/", "feed.xml", "https://example.com/feed.xml"},
		{"https://example.com/site/", "feed.xml", "https://example.com/site/feed.xml"},
	}
	for _, tt := range tests {
		if got := FileURL(tt.base, tt.name); got != tt.want {
			t.Errorf("FileURL(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.want)
		}
	}
}

func TestHighlightInlineAndDownloadConcurrency(t *testing.T) {
	srv := newBlogHost(t, map[string]string{
		"first-post.md":  firstPost,
		"second-post.md": secondPost,
	})
	a := newTestApp(t, SiteConfig{
		Name:                "Test Site",
		URL:                 "https://example.com",
		HighlightInline:     true,
		DownloadConcurrency: 1,
		Remote:              remote.Config{Owner: "o", Repo: "r", BaseURL: srv.URL},
	})

	rec := get(a, "/blog/first-post/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/first-post/ = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, `class="chroma"`) || !strings.Contains(body, `<pre style="`) {
		t.Errorf("code block not highlighted inline: %s", body)
	}

	rec = get(a, "/blog/?tag=rust")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Second Post") {
		t.Errorf("GET /blog/?tag=rust = %d, want 200 with Second Post", rec.Code)
	}
}
