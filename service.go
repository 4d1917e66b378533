package folio

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/remote"
)

// Logger is satisfied by echo.Logger and gommon's *log.Logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NewHighlighter builds the code highlighter selected by cfg.
func NewHighlighter(cfg SiteConfig) *markdown.Highlighter {
	var opts []markdown.HighlighterOption
	if cfg.HighlightInline {
		opts = append(opts, markdown.WithInlineStyles())
	}
	return markdown.NewHighlighter(cfg.HighlightStyle, opts...)
}

// NewContentService wires the gateway, highlighter and renderer described
// by cfg. A nil src builds a gateway from cfg.Remote; if that fails the
// service still answers thoughts queries and reports the configuration
// error on blog queries.
func NewContentService(cfg SiteConfig, src content.Source, logger Logger) (*content.Service, *markdown.Highlighter) {
	cfg.setDefaults()
	hl := NewHighlighter(cfg)

	opts := []content.Option{content.WithLogger(logger)}
	if cfg.DownloadConcurrency > 0 {
		opts = append(opts, content.WithDownloadConcurrency(cfg.DownloadConcurrency))
	}
	if cfg.Renderer == RendererBasic {
		opts = append(opts, content.WithRenderer(markdown.BasicRenderer{}))
	} else {
		opts = append(opts, content.WithRenderer(markdown.NewRenderer(hl)))
	}

	if src == nil {
		gw, err := remote.New(cfg.Remote, remote.WithLogger(logger))
		if err != nil {
			logger.Warnf("folio: blog disabled: %v", err)
			opts = append(opts, content.WithSourceError(err))
		} else {
			src = gw
		}
	}
	return content.NewService(src, opts...), hl
}
