package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
)

type fakeFile struct {
	name string
	typ  string
	body string
	// status overrides the download response code when non-zero.
	status int
}

// newFakeHost serves a contents API listing of files plus their raw
// downloads. It records the last API request for header assertions.
func newFakeHost(t *testing.T, files []fakeFile) (*httptest.Server, *atomic.Pointer[http.Request]) {
	t.Helper()
	var last atomic.Pointer[http.Request]
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		last.Store(r.Clone(context.Background()))
		var entries []map[string]any
		for _, f := range files {
			typ := f.typ
			if typ == "" {
				typ = "file"
			}
			entries = append(entries, map[string]any{
				"name":         f.name,
				"path":         "src/content/blog/" + f.name,
				"sha":          "sha-" + f.name,
				"size":         len(f.body),
				"type":         typ,
				"html_url":     "https://github.com/o/r/blob/main/" + f.name,
				"download_url": srv.URL + "/raw/" + f.name,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("download request carried Authorization header")
		}
		name := strings.TrimPrefix(r.URL.Path, "/raw/")
		for _, f := range files {
			if f.name == name {
				if f.status != 0 {
					http.Error(w, "boom", f.status)
					return
				}
				fmt.Fprint(w, f.body)
				return
			}
		}
		http.NotFound(w, r)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &last
}

func newTestGateway(t *testing.T, baseURL string, mutate func(*Config)) *Gateway {
	t.Helper()
	cfg := Config{Owner: "o", Repo: "r", BaseURL: baseURL}
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func names(stubs []Stub) []string {
	out := make([]string, len(stubs))
	for i, s := range stubs {
		out[i] = s.Name
	}
	return out
}

func TestNewRequiresOwnerAndRepo(t *testing.T) {
	tests := []struct {
		cfg     Config
		missing []string
	}{
		{Config{}, []string{"owner", "name"}},
		{Config{Owner: "o"}, []string{"name"}},
		{Config{Repo: "r"}, []string{"owner"}},
	}
	for _, tt := range tests {
		_, err := New(tt.cfg)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("New(%+v) error = %v, want *ConfigError", tt.cfg, err)
		}
		if !reflect.DeepEqual(cfgErr.Missing, tt.missing) {
			t.Errorf("New(%+v) missing = %v, want %v", tt.cfg, cfgErr.Missing, tt.missing)
		}
	}
}

func TestListAllFiltersAndSorts(t *testing.T) {
	srv, _ := newFakeHost(t, []fakeFile{
		{name: "1-a.md"},
		{name: "10-c.MD"},
		{name: "2-b.mdx"},
		{name: "notes.txt"},
		{name: "drafts", typ: "dir"},
		{name: "image.png"},
	})
	g := newTestGateway(t, srv.URL, nil)

	stubs, err := g.ListAll(context.Background(), "")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []string{"10-c.MD", "2-b.mdx", "1-a.md"}
	if got := names(stubs); !reflect.DeepEqual(got, want) {
		t.Errorf("ListAll names = %v, want %v", got, want)
	}
	if stubs[0].Slug != "10-c" || stubs[1].Slug != "2-b" {
		t.Errorf("slugs = %q, %q", stubs[0].Slug, stubs[1].Slug)
	}
	if stubs[2].DownloadURL != srv.URL+"/raw/1-a.md" {
		t.Errorf("DownloadURL = %q", stubs[2].DownloadURL)
	}
}

func TestListPagination(t *testing.T) {
	var files []fakeFile
	for i := 1; i <= 7; i++ {
		files = append(files, fakeFile{name: fmt.Sprintf("post-%d.md", i)})
	}
	srv, _ := newFakeHost(t, files)
	g := newTestGateway(t, srv.URL, nil)

	tests := []struct {
		opts      ListOptions
		wantNames []string
		wantMore  bool
		wantPage  int
		wantSize  int
	}{
		{ListOptions{Page: 1, PageSize: 5}, []string{"post-7.md", "post-6.md", "post-5.md", "post-4.md", "post-3.md"}, true, 1, 5},
		{ListOptions{Page: 2, PageSize: 5}, []string{"post-2.md", "post-1.md"}, false, 2, 5},
		{ListOptions{Page: 0, PageSize: 50}, []string{"post-7.md", "post-6.md", "post-5.md", "post-4.md", "post-3.md"}, true, 1, 5},
		{ListOptions{Page: 3, PageSize: 3}, []string{"post-1.md"}, false, 3, 3},
		{ListOptions{Page: 9, PageSize: 2}, []string{}, false, 9, 2},
	}
	for _, tt := range tests {
		got, err := g.List(context.Background(), tt.opts)
		if err != nil {
			t.Fatalf("List(%+v): %v", tt.opts, err)
		}
		if gotNames := names(got.Stubs); !reflect.DeepEqual(gotNames, tt.wantNames) {
			t.Errorf("List(%+v) names = %v, want %v", tt.opts, gotNames, tt.wantNames)
		}
		if got.Total != 7 || got.HasMore != tt.wantMore || got.Page != tt.wantPage || got.PageSize != tt.wantSize {
			t.Errorf("List(%+v) = total %d more %v page %d size %d", tt.opts, got.Total, got.HasMore, got.Page, got.PageSize)
		}
	}
}

func TestListExactPageHasNoMore(t *testing.T) {
	var files []fakeFile
	for i := 1; i <= 5; i++ {
		files = append(files, fakeFile{name: fmt.Sprintf("p%d.md", i)})
	}
	srv, _ := newFakeHost(t, files)
	g := newTestGateway(t, srv.URL, nil)

	got, err := g.List(context.Background(), ListOptions{Page: 1, PageSize: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.HasMore || got.Total != 5 || len(got.Stubs) != 5 {
		t.Errorf("List = %d stubs, total %d, hasMore %v; want 5, 5, false", len(got.Stubs), got.Total, got.HasMore)
	}
}

func TestRequestHeaders(t *testing.T) {
	srv, last := newFakeHost(t, nil)

	g := newTestGateway(t, srv.URL, nil)
	if _, err := g.ListAll(context.Background(), ""); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	req := last.Load()
	if got := req.Header.Get("Accept"); got != "application/vnd.github+json" {
		t.Errorf("Accept = %q", got)
	}
	if got := req.Header.Get("X-GitHub-Api-Version"); got != "2022-11-28" {
		t.Errorf("X-GitHub-Api-Version = %q", got)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want none without token", got)
	}
	if got := req.URL.Path; got != "/repos/o/r/contents/src/content/blog" {
		t.Errorf("path = %q", got)
	}
	if got := req.URL.Query().Get("ref"); got != "main" {
		t.Errorf("ref = %q, want main", got)
	}

	g = newTestGateway(t, srv.URL, func(c *Config) {
		c.Token = "secret"
		c.Branch = "drafts"
	})
	if _, err := g.ListAll(context.Background(), "posts/2024 notes"); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	req = last.Load()
	if got := req.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", got)
	}
	if got := req.URL.EscapedPath(); got != "/repos/o/r/contents/posts/2024%20notes" {
		t.Errorf("escaped path = %q", got)
	}
	if got := req.URL.Query().Get("ref"); got != "drafts" {
		t.Errorf("ref = %q, want drafts", got)
	}
}

func TestListAllHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer srv.Close()
	g := newTestGateway(t, srv.URL, nil)

	_, err := g.ListAll(context.Background(), "")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("ListAll error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusForbidden || fe.Op != "list" {
		t.Errorf("FetchError = %+v", fe)
	}
	if !strings.Contains(fe.Body, "rate limit") || !strings.Contains(fe.Error(), "403") {
		t.Errorf("FetchError message = %q, body %q", fe.Error(), fe.Body)
	}
}

func TestListAllNonArrayIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"file","name":"README.md"}`)
	}))
	defer srv.Close()
	g := newTestGateway(t, srv.URL, nil)

	stubs, err := g.ListAll(context.Background(), "")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(stubs) != 0 {
		t.Errorf("ListAll = %v, want empty", stubs)
	}
}

func TestFetchOne(t *testing.T) {
	srv, _ := newFakeHost(t, []fakeFile{
		{name: "hello.md", body: "---\ntitle: Hello\n---\nbody"},
		{name: "broken.md", status: http.StatusInternalServerError},
	})
	g := newTestGateway(t, srv.URL, nil)

	doc, err := g.FetchOne(context.Background(), "hello")
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if doc.Slug != "hello" || !strings.Contains(doc.Content, "title: Hello") {
		t.Errorf("FetchOne = %+v", doc)
	}

	_, err = g.FetchOne(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchOne(missing) error = %v, want ErrNotFound", err)
	}

	_, err = g.FetchOne(context.Background(), "broken")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("FetchOne(broken) error = %v, want *NotFoundError", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("FetchOne(broken) cause = %v, want wrapped 500 FetchError", nf.Err)
	}
}

func TestDownloadWithoutURL(t *testing.T) {
	g := newTestGateway(t, "http://127.0.0.1:0", nil)
	_, err := g.Download(context.Background(), Stub{Name: "x.md"})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Errorf("Download error = %v, want *FetchError", err)
	}
}

func TestListCancelled(t *testing.T) {
	srv, _ := newFakeHost(t, []fakeFile{{name: "a.md"}})
	g := newTestGateway(t, srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.List(ctx, ListOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("List with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestSlugFromName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello.md", "hello"},
		{"hello.MDX", "hello"},
		{"v1.2-notes.md", "v1.2-notes"},
		{"readme.txt", "readme.txt"},
	}
	for _, tt := range tests {
		if got := SlugFromName(tt.input); got != tt.expected {
			t.Errorf("SlugFromName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
