package content

import (
	"encoding/json"
	"fmt"

	"github.com/eringen/folio/markdown"
)

// Domain selects which collection a query reads.
type Domain string

const (
	DomainBlog     Domain = "blog"
	DomainThoughts Domain = "thoughts"
)

// ParseDomain validates a domain name. The empty string means blog.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case "", DomainBlog:
		return DomainBlog, nil
	case DomainThoughts:
		return DomainThoughts, nil
	}
	return "", &Error{Code: CodeInvalid, Message: fmt.Sprintf("unknown domain %q", s)}
}

// Item is anything a Result can carry.
type Item interface {
	Key() string
}

// Thought is a short static entry shown on the landing page.
type Thought struct {
	Slug     string `json:"slug" yaml:"-"`
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
	Date     string `json:"date" yaml:"date"`
	ReadTime string `json:"readTime" yaml:"readTime"`
}

func (t Thought) Key() string { return t.Slug }

// Post is a blog post read from the remote repository. List results leave
// Content, HTML and TOC empty.
type Post struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Date        string             `json:"date"`
	Summary     string             `json:"summary"`
	Tags        []string           `json:"tags"`
	ReadingTime int                `json:"readingTime"`
	SourceURL   string             `json:"sourceUrl,omitempty"`
	Content     string             `json:"content,omitempty"`
	HTML        string             `json:"html,omitempty"`
	TOC         []markdown.Heading `json:"toc,omitempty"`
	// Degraded marks a placeholder built for a file that could not be read.
	Degraded bool `json:"degraded,omitempty"`
}

func (p Post) Key() string { return p.Slug }

// HasTag reports exact, case-sensitive membership.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ListOptions narrows and pages a listing. Zero values mean "no filter",
// page 1 and the domain's default size.
type ListOptions struct {
	Search   string
	Tag      string
	Page     int
	PageSize int
}

// Query is the single entry point request. A non-empty Slug asks for one
// item; otherwise a page of the listing is returned.
type Query struct {
	Domain   Domain
	Slug     string
	Search   string
	Tag      string
	Page     int
	PageSize int
}

func (q Query) listOptions() ListOptions {
	return ListOptions{Search: q.Search, Tag: q.Tag, Page: q.Page, PageSize: q.PageSize}
}

// Page is one page of a listing. Total counts matches before pagination.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	HasMore  bool `json:"hasMore"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
}

// ResultKind tags a Result.
type ResultKind string

const (
	KindList   ResultKind = "list"
	KindSingle ResultKind = "single"
)

// Result is what Fetch returns: either a page of items or a single item,
// told apart by Kind.
type Result struct {
	Kind    ResultKind
	Items   []Item
	Total   int
	HasMore bool
	Item    Item
}

func listResult[T Item](p Page[T]) Result {
	items := make([]Item, len(p.Items))
	for i, it := range p.Items {
		items[i] = it
	}
	return Result{Kind: KindList, Items: items, Total: p.Total, HasMore: p.HasMore}
}

func singleResult(it Item) Result {
	return Result{Kind: KindSingle, Item: it}
}

// MarshalJSON writes only the fields that belong to r.Kind.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Kind == KindSingle {
		return json.Marshal(struct {
			Kind ResultKind `json:"kind"`
			Item Item       `json:"item"`
		}{r.Kind, r.Item})
	}
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(struct {
		Kind    ResultKind `json:"kind"`
		Items   []Item     `json:"items"`
		Total   int        `json:"total"`
		HasMore bool       `json:"hasMore"`
	}{KindList, items, r.Total, r.HasMore})
}

// paginate slices items for a 1-based page.
func paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	start := min((page-1)*size, total)
	end := min(page*size, total)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:    out,
		Total:    total,
		HasMore:  page*size < total,
		Page:     page,
		PageSize: size,
	}
}

// normalizePage applies the default size and clamps to [1, limit].
func normalizePage(page, size, def, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = def
	}
	if size > limit {
		size = limit
	}
	return page, size
}
