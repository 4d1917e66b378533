// Package folio is a personal portfolio and blog server built with Go, Echo
// and templ. Blog posts are Markdown files read from a GitHub repository;
// short "thoughts" and the landing page data are embedded.
//
// Callers may replace any page through the ViewFuncs struct; folio handles
// the handler logic, middleware and content pipeline.
package folio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(profile views.Profile, thoughts []content.Thought) templ.Component
	Blog        func(page views.BlogPage) templ.Component
	Post        func(post content.Post) templ.Component
	NotFound    func() templ.Component
	ServerError func(message string) templ.Component
}

// DefaultViews returns the built-in components bound to cfg.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	site := views.SiteConfig{Name: cfg.Name, URL: cfg.URL, Description: cfg.Description, Author: cfg.Author}
	return ViewFuncs{
		Home: func(p views.Profile, thoughts []content.Thought) templ.Component {
			return views.Home(site, p, thoughts)
		},
		Blog: func(b views.BlogPage) templ.Component {
			return views.Blog(site, b)
		},
		Post: func(p content.Post) templ.Component {
			return views.Post(site, p)
		},
		NotFound: func() templ.Component {
			return views.NotFound(site)
		},
		ServerError: func(msg string) templ.Component {
			return views.ServerError(site, msg)
		},
	}
}

// App is the central folio application. It wires together the content
// service, handlers, middleware and page components.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *content.Service
	Views   ViewFuncs
	Profile views.Profile

	highlighter  *markdown.Highlighter
	apiLimiter   *RequestLimiter
	source       content.Source
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(cfg),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the content service, middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Profile.Name == "" {
		if a.Config.ProfilePath != "" {
			p, err := LoadProfileFile(a.Config.ProfilePath)
			if err != nil {
				return err
			}
			a.Profile = p
		} else {
			a.Profile = DefaultProfile()
		}
	}

	a.Content, a.highlighter = NewContentService(a.Config, a.source, a.Echo.Logger)
	a.apiLimiter = NewRequestLimiter(a.Config.APIRateLimit, a.Config.APIRateWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets up the app and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return fmt.Errorf("folio: setup: %w", err)
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Generated assets take precedence over the user's static dir.
	e.GET("/public/highlight.css", a.handleHighlightCSS)
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)

	api := e.Group("/api", a.apiLimiter.Middleware)
	api.GET("/content", a.handleAPIContent)
}

// Close stops background work and the server.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Stop()
	}
	return a.Echo.Close()
}
