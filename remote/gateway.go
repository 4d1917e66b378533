// Package remote reads Markdown posts from a directory of a GitHub
// repository through the contents API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/labstack/gommon/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	maxErrorBody = 1 << 10
	maxFileSize  = 4 << 20
	maxListSize  = 8 << 20
)

// Logger is the subset of echo's logger the gateway needs.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Stub describes one post file in the directory listing.
type Stub struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	HTMLURL     string `json:"htmlUrl"`
	DownloadURL string `json:"downloadUrl"`
}

// Document is a stub together with its raw text.
type Document struct {
	Stub
	Content string
}

// ListOptions selects one page of the listing. Directory overrides the
// configured directory when set.
type ListOptions struct {
	Page      int
	PageSize  int
	Directory string
}

// Listing is one page of stubs.
type Listing struct {
	Stubs    []Stub
	Total    int
	HasMore  bool
	Page     int
	PageSize int
}

// entry is one element of the contents API directory response.
type entry struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	SHA         string  `json:"sha"`
	Size        int64   `json:"size"`
	Type        string  `json:"type"`
	HTMLURL     string  `json:"html_url"`
	DownloadURL *string `json:"download_url"`
}

// Gateway talks to the contents API. It is safe for concurrent use.
type Gateway struct {
	cfg    Config
	client *http.Client
	log    Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// New validates cfg and returns a Gateway. Missing owner or repository is
// reported here rather than on first use.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	g := &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.New("remote"),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// MaxPageSize returns the largest page List will serve.
func (g *Gateway) MaxPageSize() int { return g.cfg.MaxPageSize }

// List returns one page of post stubs, newest name first.
func (g *Gateway) List(ctx context.Context, opts ListOptions) (Listing, error) {
	stubs, err := g.ListAll(ctx, opts.Directory)
	if err != nil {
		return Listing{}, err
	}
	page, size := clampPage(opts.Page, opts.PageSize, g.cfg.MaxPageSize)
	total := len(stubs)
	start := min((page-1)*size, total)
	end := min(page*size, total)
	return Listing{
		Stubs:    stubs[start:end],
		Total:    total,
		HasMore:  page*size < total,
		Page:     page,
		PageSize: size,
	}, nil
}

// ListAll returns every post stub in dir (the configured directory when
// empty), sorted by name descending with numbers compared by value.
func (g *Gateway) ListAll(ctx context.Context, dir string) ([]Stub, error) {
	if dir == "" {
		dir = g.cfg.Directory
	}
	u := g.contentsURL(dir)
	body, err := g.get(ctx, "list", u, true, maxListSize)
	if err != nil {
		return nil, err
	}
	// A path that names a file yields an object rather than an array.
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		g.log.Debugf("remote: %s is not a directory listing", u)
		return []Stub{}, nil
	}
	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FetchError{Op: "list", URL: u, Err: fmt.Errorf("decode listing: %w", err)}
	}
	stubs := make([]Stub, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" || !isPostFile(e.Name) {
			continue
		}
		s := Stub{
			Slug:    SlugFromName(e.Name),
			Name:    e.Name,
			Path:    e.Path,
			SHA:     e.SHA,
			Size:    e.Size,
			HTMLURL: e.HTMLURL,
		}
		if e.DownloadURL != nil {
			s.DownloadURL = *e.DownloadURL
		}
		stubs = append(stubs, s)
	}
	sortStubs(stubs)
	g.log.Debugf("remote: %d post files in %s", len(stubs), dir)
	return stubs, nil
}

// Download returns the text of one post file.
func (g *Gateway) Download(ctx context.Context, stub Stub) (string, error) {
	if stub.DownloadURL == "" {
		return "", &FetchError{Op: "download", URL: stub.Path, Err: fmt.Errorf("no download url for %s", stub.Name)}
	}
	body, err := g.get(ctx, "download", stub.DownloadURL, false, maxFileSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(body) {
		return "", &FetchError{Op: "download", URL: stub.DownloadURL, Err: fmt.Errorf("%s is not valid UTF-8", stub.Name)}
	}
	return string(body), nil
}

// FetchOne finds the file whose name without extension equals slug and
// downloads it. Any failure is reported as a *NotFoundError.
func (g *Gateway) FetchOne(ctx context.Context, slug string) (Document, error) {
	stubs, err := g.ListAll(ctx, "")
	if err != nil {
		return Document{}, err
	}
	idx := slices.IndexFunc(stubs, func(s Stub) bool { return s.Slug == slug })
	if idx < 0 {
		return Document{}, &NotFoundError{Slug: slug}
	}
	text, err := g.Download(ctx, stubs[idx])
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, ctx.Err()
		}
		return Document{}, &NotFoundError{Slug: slug, Err: err}
	}
	return Document{Stub: stubs[idx], Content: text}, nil
}

func (g *Gateway) contentsURL(dir string) string {
	segs := strings.Split(strings.Trim(dir, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		g.cfg.BaseURL,
		url.PathEscape(g.cfg.Owner),
		url.PathEscape(g.cfg.Repo),
		strings.Join(segs, "/"),
		url.QueryEscape(g.cfg.Branch),
	)
}

func (g *Gateway) get(ctx context.Context, op, rawURL string, api bool, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Op: op, URL: rawURL, Err: err}
	}
	if api {
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if g.cfg.Token != "" {
			req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
		}
	}
	g.log.Debugf("remote: GET %s", rawURL)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Op:         op,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, &FetchError{Op: op, URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func isPostFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// SlugFromName strips the .md or .mdx extension from a file name.
func SlugFromName(name string) string {
	if isPostFile(name) {
		return name[:len(name)-len(path.Ext(name))]
	}
	return name
}

// sortStubs orders by name descending, comparing digit runs numerically so
// post-10 sorts above post-9.
func sortStubs(stubs []Stub) {
	c := collate.New(language.Und, collate.Numeric)
	slices.SortStableFunc(stubs, func(a, b Stub) int {
		return c.CompareString(b.Name, a.Name)
	})
}

// clampPage forces page >= 1 and 1 <= size <= limit. A size below 1 means
// "unspecified" and takes the limit.
func clampPage(page, size, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > limit {
		size = limit
	}
	return page, size
}
