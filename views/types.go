package views

import "github.com/eringen/folio/content"

// SiteConfig holds site-wide settings. Every handler passes this to
// templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Profile is the landing page data: who, what they build, where to find them.
type Profile struct {
	Name     string    `yaml:"name"`
	Role     string    `yaml:"role"`
	Location string    `yaml:"location"`
	Intro    string    `yaml:"intro"`
	Email    string    `yaml:"email"`
	Skills   []string  `yaml:"skills"`
	Projects []Project `yaml:"projects"`
	Socials  []Social  `yaml:"socials"`
}

// Project is one entry of the projects section.
type Project struct {
	Year        string   `yaml:"year"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	URL         string   `yaml:"url"`
}

// Social is one link of the connect section.
type Social struct {
	Name   string `yaml:"name"`
	Handle string `yaml:"handle"`
	URL    string `yaml:"url"`
}

// BlogPage is everything the blog index template needs.
type BlogPage struct {
	Posts  content.Page[content.Post]
	Search string
	Tag    string
	Tags   []string
}
