// Package content reads thoughts and blog posts and shapes them into pages
// and single items for the web and CLI front ends.
package content

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/remote"
	"github.com/labstack/gommon/log"
	"github.com/sourcegraph/conc/iter"
)

// Page size limits per domain. Blog pages are capped by the source.
const (
	DefaultThoughtsPageSize = 10
	MaxThoughtsPageSize     = 50
	defaultDownloads        = 8
)

// Source is the remote repository contract. *remote.Gateway satisfies it.
type Source interface {
	List(ctx context.Context, opts remote.ListOptions) (remote.Listing, error)
	ListAll(ctx context.Context, dir string) ([]remote.Stub, error)
	Download(ctx context.Context, stub remote.Stub) (string, error)
	FetchOne(ctx context.Context, slug string) (remote.Document, error)
	MaxPageSize() int
}

// Logger is the subset of echo's logger the service needs.
type Logger interface {
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Service answers content queries. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	src       Source
	srcErr    error
	thoughts  []Thought
	renderer  markdown.Renderer
	fallback  markdown.Renderer
	log       Logger
	downloads int
}

// Option configures a Service.
type Option func(*Service)

// WithThoughts replaces the built-in thoughts.
func WithThoughts(t []Thought) Option {
	return func(s *Service) { s.thoughts = t }
}

// WithRenderer sets the renderer used for single posts.
func WithRenderer(r markdown.Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithFallbackRenderer sets the renderer used when the primary one fails.
func WithFallbackRenderer(r markdown.Renderer) Option {
	return func(s *Service) { s.fallback = r }
}

// WithLogger sets the logger for degraded items and renderer fallbacks.
func WithLogger(l Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithSourceError records why no source is available. Blog queries then
// fail with a config error carrying err.
func WithSourceError(err error) Option {
	return func(s *Service) { s.srcErr = err }
}

// WithDownloadConcurrency bounds parallel file downloads per listing.
func WithDownloadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.downloads = n
		}
	}
}

// NewService returns a Service reading blog posts from src. A nil src
// leaves only the thoughts domain usable.
func NewService(src Source, opts ...Option) *Service {
	s := &Service{
		src:       src,
		log:       log.New("content"),
		downloads: defaultDownloads,
	}
	for _, o := range opts {
		o(s)
	}
	if s.thoughts == nil {
		s.thoughts = DefaultThoughts()
	}
	if s.renderer == nil {
		s.renderer = markdown.NewRenderer(markdown.NewHighlighter(markdown.DefaultStyle))
	}
	if s.fallback == nil {
		s.fallback = markdown.BasicRenderer{}
	}
	return s
}

// Fetch answers q with a list or a single item depending on q.Slug.
func (s *Service) Fetch(ctx context.Context, q Query) (Result, error) {
	switch q.Domain {
	case DomainThoughts:
		if q.Slug != "" {
			t, err := s.Thought(ctx, q.Slug)
			if err != nil {
				return Result{}, err
			}
			return singleResult(t), nil
		}
		p, err := s.Thoughts(ctx, q.listOptions())
		if err != nil {
			return Result{}, err
		}
		return listResult(p), nil
	case DomainBlog:
		if q.Slug != "" {
			p, err := s.Post(ctx, q.Slug)
			if err != nil {
				return Result{}, err
			}
			return singleResult(p), nil
		}
		p, err := s.Posts(ctx, q.listOptions())
		if err != nil {
			return Result{}, err
		}
		return listResult(p), nil
	}
	return Result{}, &Error{Code: CodeInvalid, Message: fmt.Sprintf("unknown domain %q", q.Domain)}
}

// Thoughts returns a page of thoughts matching opts.Search. Thoughts carry
// no tags; opts.Tag is ignored.
func (s *Service) Thoughts(ctx context.Context, opts ListOptions) (Page[Thought], error) {
	if err := ctx.Err(); err != nil {
		return Page[Thought]{}, err
	}
	page, size := normalizePage(opts.Page, opts.PageSize, DefaultThoughtsPageSize, MaxThoughtsPageSize)
	matched := make([]Thought, 0, len(s.thoughts))
	for _, t := range s.thoughts {
		if matchesSearch(opts.Search, t.Title, t.Excerpt) {
			matched = append(matched, t)
		}
	}
	return paginate(matched, page, size), nil
}

// Thought returns the thought whose slug matches.
func (s *Service) Thought(ctx context.Context, slug string) (Thought, error) {
	if err := ctx.Err(); err != nil {
		return Thought{}, err
	}
	for _, t := range s.thoughts {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Thought{}, &Error{Code: CodeNotFound, Message: fmt.Sprintf("thought %q not found", slug)}
}

// Posts returns a page of blog post summaries. Without a search or tag
// filter only the requested page is downloaded; with one, every post is
// downloaded so filtering happens before pagination.
func (s *Service) Posts(ctx context.Context, opts ListOptions) (Page[Post], error) {
	if err := s.requireSource(); err != nil {
		return Page[Post]{}, err
	}
	limit := s.src.MaxPageSize()
	page, size := normalizePage(opts.Page, opts.PageSize, limit, limit)

	if opts.Search == "" && opts.Tag == "" {
		listing, err := s.src.List(ctx, remote.ListOptions{Page: page, PageSize: size})
		if err := ctxOr(ctx, err); err != nil {
			return Page[Post]{}, err
		}
		posts := s.summaries(ctx, listing.Stubs)
		if err := ctx.Err(); err != nil {
			return Page[Post]{}, err
		}
		return Page[Post]{
			Items:    posts,
			Total:    listing.Total,
			HasMore:  listing.HasMore,
			Page:     page,
			PageSize: size,
		}, nil
	}

	stubs, err := s.src.ListAll(ctx, "")
	if err := ctxOr(ctx, err); err != nil {
		return Page[Post]{}, err
	}
	posts := s.summaries(ctx, stubs)
	if err := ctx.Err(); err != nil {
		return Page[Post]{}, err
	}
	matched := make([]Post, 0, len(posts))
	for _, p := range posts {
		if opts.Tag != "" && !p.HasTag(opts.Tag) {
			continue
		}
		if !matchesSearch(opts.Search, p.Title, p.Summary) {
			continue
		}
		matched = append(matched, p)
	}
	return paginate(matched, page, size), nil
}

// Post returns one fully rendered post. A missing file or one without the
// required frontmatter is reported as not found.
func (s *Service) Post(ctx context.Context, slug string) (Post, error) {
	if err := s.requireSource(); err != nil {
		return Post{}, err
	}
	doc, err := s.src.FetchOne(ctx, slug)
	if err := ctxOr(ctx, err); err != nil {
		return Post{}, err
	}
	post, body, err := parsePost(doc.Stub, doc.Content)
	if err != nil {
		return Post{}, notFound(slug, err)
	}
	post.Content = body
	post.TOC = markdown.ExtractTOC(body)
	post.HTML = s.render(slug, body)
	return post, nil
}

func (s *Service) requireSource() error {
	if s.src != nil {
		return nil
	}
	msg := "blog source not configured"
	if s.srcErr != nil {
		msg += ": " + s.srcErr.Error()
	}
	return &Error{Code: CodeConfig, Message: msg, Err: s.srcErr}
}

// summaries downloads and parses stubs concurrently. Results keep the input
// order; a file that cannot be read becomes a placeholder.
func (s *Service) summaries(ctx context.Context, stubs []remote.Stub) []Post {
	mapper := iter.Mapper[remote.Stub, Post]{MaxGoroutines: s.downloads}
	return mapper.Map(stubs, func(stub *remote.Stub) Post {
		text, err := s.src.Download(ctx, *stub)
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warnf("content: download %s: %v", stub.Name, err)
			}
			return placeholder(*stub)
		}
		post, _, err := parsePost(*stub, text)
		if err != nil {
			s.log.Warnf("content: %s: %v", stub.Name, err)
			return placeholder(*stub)
		}
		return post
	})
}

func (s *Service) render(slug, body string) string {
	out, err := s.renderer.Render(body)
	if err == nil {
		return out
	}
	s.log.Warnf("content: render %s: %v; using fallback renderer", slug, err)
	out, err = s.fallback.Render(body)
	if err != nil {
		s.log.Warnf("content: fallback render %s: %v", slug, err)
		return ""
	}
	return out
}

var requiredFields = []string{"title", "date", "summary"}

// parsePost builds a summary from raw file text and returns the body.
func parsePost(stub remote.Stub, raw string) (Post, string, error) {
	fm, body := ParseFrontmatter(raw)
	var missing []string
	for _, f := range requiredFields {
		if fm.String(f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Post{}, "", &Error{
			Code:    CodeParse,
			Message: fmt.Sprintf("%s: missing frontmatter %s", stub.Name, strings.Join(missing, ", ")),
		}
	}
	readingTime := EstimateReadingTime(body)
	if n, ok := fm.Number("readingTime"); ok && n >= 1 {
		readingTime = int(math.Round(n))
	}
	return Post{
		Slug:        stub.Slug,
		Title:       fm.String("title"),
		Date:        fm.String("date"),
		Summary:     fm.String("summary"),
		Tags:        fm.Strings("tags"),
		ReadingTime: readingTime,
		SourceURL:   stub.HTMLURL,
	}, body, nil
}

func placeholder(stub remote.Stub) Post {
	return Post{
		Slug:        stub.Slug,
		Title:       stub.Slug,
		Summary:     "",
		Tags:        []string{},
		ReadingTime: DefaultReadingTime,
		SourceURL:   stub.HTMLURL,
		Degraded:    true,
	}
}

func matchesSearch(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ctxOr prefers a context error over err so cancelled queries report
// cancellation rather than the transport failure it caused.
func ctxOr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return translate(err)
}
