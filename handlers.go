package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

func (a *App) handleHome(c echo.Context) error {
	page, err := a.Content.Thoughts(c.Request().Context(), content.ListOptions{PageSize: content.MaxThoughtsPageSize})
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.Profile, page.Items))
}

func (a *App) handleBlog(c echo.Context) error {
	pageNum, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	opts := content.ListOptions{
		Search: c.QueryParam("q"),
		Tag:    c.QueryParam("tag"),
		Page:   pageNum,
	}
	page, err := a.Content.Posts(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Blog(views.BlogPage{
		Posts:  page,
		Search: opts.Search,
		Tag:    opts.Tag,
		Tags:   collectTags(page.Items, opts.Tag),
	}))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Content.Post(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post))
}

func (a *App) handleAPIContent(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return renderAPIError(c, err)
	}
	res, err := a.Content.Fetch(c.Request().Context(), q)
	if err != nil {
		return renderAPIError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) handleSitemap(c echo.Context) error {
	page, err := a.Content.Posts(c.Request().Context(), content.ListOptions{})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// The static pages are listed even when the blog is unreachable.
		c.Logger().Warnf("sitemap: blog posts unavailable: %v", err)
		page = content.Page[content.Post]{}
	}
	return a.renderSitemap(c, page.Items)
}

func (a *App) handleFeed(c echo.Context) error {
	page, err := a.Content.Posts(c.Request().Context(), content.ListOptions{})
	if err != nil {
		return err
	}
	return a.renderRSS(c, page.Items)
}

func (a *App) handleHighlightCSS(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/css; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.highlighter.WriteCSS(c.Response())
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s\n", FileURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if content.CodeOf(err) != "" {
		status := StatusFor(err)
		switch {
		case status == http.StatusNotFound:
			_ = RenderStatus(c, status, a.Views.NotFound())
		case status >= 500:
			c.Logger().Errorf("content error: %v", err)
			_ = RenderStatus(c, status, a.Views.ServerError(err.Error()))
		default:
			a.Echo.DefaultHTTPErrorHandler(echo.NewHTTPError(status, err.Error()), c)
		}
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := StatusFor(err)
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(""))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// parseQuery reads /api/content parameters: domain, slug, q, tag, page, limit.
func parseQuery(c echo.Context) (content.Query, error) {
	domain, err := content.ParseDomain(c.QueryParam("domain"))
	if err != nil {
		return content.Query{}, err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return content.Query{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return content.Query{}, err
	}
	return content.Query{
		Domain:   domain,
		Slug:     c.QueryParam("slug"),
		Search:   c.QueryParam("q"),
		Tag:      c.QueryParam("tag"),
		Page:     page,
		PageSize: limit,
	}, nil
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &content.Error{Code: content.CodeInvalid, Message: fmt.Sprintf("%s must be a non-negative integer", name)}
	}
	return n, nil
}

// collectTags returns the sorted, de-duplicated tags of posts, keeping the
// active tag visible even when the current page has none of it.
func collectTags(posts []content.Post, active string) []string {
	var tags []string
	for _, p := range posts {
		tags = append(tags, p.Tags...)
	}
	if active != "" {
		tags = append(tags, active)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}
