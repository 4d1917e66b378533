// Package views holds the default page components. Pages are written in
// the .templ files; regenerate the _templ.go files after editing them.
package views

//go:generate templ generate

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func pageTitle(site SiteConfig, meta PageMeta) string {
	if meta.Title == "" || meta.Title == site.Name {
		return site.Name
	}
	return meta.Title + " | " + site.Name
}

func pageDescription(site SiteConfig, meta PageMeta) string {
	if meta.Description != "" {
		return meta.Description
	}
	return site.Description
}

func ogType(meta PageMeta) string {
	if meta.OGType == "" {
		return "website"
	}
	return meta.OGType
}

func canonicalURL(site SiteConfig, meta PageMeta) string {
	if meta.URL == "" {
		return buildURL(site.URL)
	}
	return meta.URL
}

func pageJSONLD(site SiteConfig, meta PageMeta) string {
	if meta.JSONLD == "" {
		return WebsiteJsonLD(site)
	}
	return meta.JSONLD
}

// jsonLDScript writes a ld+json block. The payload comes from marshalJSONLD,
// which never contains a literal "<".
func jsonLDScript(payload string) templ.Component {
	return templ.Raw(`<script type="application/ld+json">` + payload + `</script>`)
}

func footerCredit(site SiteConfig) string {
	if site.Author != "" {
		return "Built by " + site.Author
	}
	return site.Name
}

func homeMeta(site SiteConfig) PageMeta {
	return PageMeta{Title: site.Name, Description: site.Description, URL: buildURL(site.URL)}
}

func blogMeta(site SiteConfig) PageMeta {
	return PageMeta{Title: "Blog", Description: site.Description, URL: buildURL(site.URL, "blog")}
}

func postPageMeta(site SiteConfig, p content.Post) PageMeta {
	return PageMeta{
		Title:       p.Title,
		Description: p.Summary,
		URL:         buildURL(site.URL, "blog", p.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(site, p),
	}
}

// roleLine joins role and location for the intro byline.
func roleLine(p Profile) string {
	if p.Location == "" {
		return p.Role
	}
	return p.Role + " · " + p.Location
}

// postByline is the "date · N min read" line; undated posts show only the reading time.
func postByline(p content.Post) string {
	read := strconv.Itoa(p.ReadingTime) + " min read"
	if p.Date == "" {
		return read
	}
	return p.Date + " · " + read
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag-active"
	}
	return base
}

// BlogQueryURL builds a /blog/ link that keeps the current search and tag.
func BlogQueryURL(search, tag string, page int) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if tag != "" {
		q.Set("tag", tag)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/blog/"
	}
	return "/blog/?" + q.Encode()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJSONLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post content.Post) string {
	postURL := buildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"timeRequired":  "PT" + strconv.Itoa(post.ReadingTime) + "M",
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJSONLD(data)
}

// marshalJSONLD encodes data for a <script type="application/ld+json">
// block. encoding/json escapes <, > and & so the block cannot be closed early.
func marshalJSONLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
