package folio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/remote"
)

// Renderer names accepted by SiteConfig.Renderer.
const (
	RendererFull  = "full"
	RendererBasic = "basic"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr        string // Listen address (default ":3000")
	ProfilePath string // Landing page YAML; empty uses the built-in profile

	Remote remote.Config // Repository holding the blog posts

	Renderer        string // "full" (default) or "basic"
	HighlightStyle  string // chroma style name (default "github")
	HighlightInline bool   // style attributes on code blocks instead of CSS classes

	DownloadConcurrency int // Parallel post downloads per listing; 0 keeps the service default

	APIRateLimit  int           // Requests per window per IP on /api/ (default 60)
	APIRateWindow time.Duration // default 1 minute
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Renderer == "" {
		c.Renderer = RendererFull
	}
	if c.APIRateLimit <= 0 {
		c.APIRateLimit = 60
	}
	if c.APIRateWindow <= 0 {
		c.APIRateWindow = time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the built-in page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithSource uses src for blog posts instead of building a gateway from
// SiteConfig.Remote.
func WithSource(src content.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// fileConfig mirrors the keys accepted in folio.yaml and FOLIO_* variables.
type fileConfig struct {
	SiteName        string `mapstructure:"site_name"`
	SiteURL         string `mapstructure:"site_url"`
	SiteDescription string `mapstructure:"site_description"`
	SiteAuthor      string `mapstructure:"site_author"`
	Addr            string `mapstructure:"addr"`
	Profile         string `mapstructure:"profile"`

	GitHubOwner   string `mapstructure:"github_owner"`
	GitHubRepo    string `mapstructure:"github_repo"`
	GitHubBranch  string `mapstructure:"github_branch"`
	GitHubDir     string `mapstructure:"github_dir"`
	GitHubToken   string `mapstructure:"github_token"`
	GitHubAPIURL  string `mapstructure:"github_api_url"`
	GitHubTimeout int    `mapstructure:"github_timeout_sec"`

	Renderer            string `mapstructure:"renderer"`
	HighlightStyle      string `mapstructure:"highlight_style"`
	HighlightInline     bool   `mapstructure:"highlight_inline"`
	DownloadConcurrency int    `mapstructure:"download_concurrency"`
	APIRateLimit        int    `mapstructure:"api_rate_limit"`
}

// LoadConfig reads configuration from defaults, an optional YAML file and
// FOLIO_* environment variables. Precedence: env > file > defaults. An empty
// path looks for folio.yaml in the working directory; a missing default
// file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()

	v.SetDefault("site_name", "Portfolio")
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("site_description", "")
	v.SetDefault("site_author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("profile", "")
	v.SetDefault("github_owner", "")
	v.SetDefault("github_repo", "")
	v.SetDefault("github_branch", remote.DefaultBranch)
	v.SetDefault("github_dir", remote.DefaultDirectory)
	v.SetDefault("github_token", "")
	v.SetDefault("github_api_url", remote.DefaultBaseURL)
	v.SetDefault("github_timeout_sec", int(remote.DefaultTimeout/time.Second))
	v.SetDefault("renderer", RendererFull)
	v.SetDefault("highlight_style", "github")
	v.SetDefault("highlight_inline", false)
	v.SetDefault("download_concurrency", 0)
	v.SetDefault("api_rate_limit", 60)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return SiteConfig{}, fmt.Errorf("folio: read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return SiteConfig{}, fmt.Errorf("folio: read config: %w", err)
			}
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return SiteConfig{}, fmt.Errorf("folio: decode config: %w", err)
	}

	if fc.DownloadConcurrency < 0 {
		return SiteConfig{}, fmt.Errorf("folio: download_concurrency must not be negative, got %d", fc.DownloadConcurrency)
	}
	renderer := strings.ToLower(strings.TrimSpace(fc.Renderer))
	if renderer != RendererFull && renderer != RendererBasic {
		return SiteConfig{}, fmt.Errorf("folio: renderer must be %q or %q, got %q", RendererFull, RendererBasic, fc.Renderer)
	}

	cfg := SiteConfig{
		Name:        fc.SiteName,
		URL:         fc.SiteURL,
		Description: fc.SiteDescription,
		Author:      fc.SiteAuthor,
		Addr:        fc.Addr,
		ProfilePath: fc.Profile,
		Remote: remote.Config{
			Owner:     fc.GitHubOwner,
			Repo:      fc.GitHubRepo,
			Branch:    fc.GitHubBranch,
			Directory: fc.GitHubDir,
			Token:     fc.GitHubToken,
			BaseURL:   fc.GitHubAPIURL,
			Timeout:   time.Duration(fc.GitHubTimeout) * time.Second,
		},
		Renderer:            renderer,
		HighlightStyle:      fc.HighlightStyle,
		HighlightInline:     fc.HighlightInline,
		DownloadConcurrency: fc.DownloadConcurrency,
		APIRateLimit:        fc.APIRateLimit,
	}
	cfg.setDefaults()
	return cfg, nil
}
