package folio

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// apiError is the JSON body of every failed /api/ response.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusFor maps a content error to an HTTP status.
func StatusFor(err error) int {
	switch content.CodeOf(err) {
	case content.CodeNotFound:
		return http.StatusNotFound
	case content.CodeFetch:
		return http.StatusBadGateway
	case content.CodeInvalid:
		return http.StatusBadRequest
	case content.CodeConfig, content.CodeParse:
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	if code := content.CodeOf(err); code != "" {
		return string(code)
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	return "internal"
}

// renderAPIError writes err as JSON with the mapped status.
func renderAPIError(c echo.Context, err error) error {
	status := StatusFor(err)
	msg := err.Error()
	if status >= 500 {
		c.Logger().Errorf("api error: %v", err)
		if content.CodeOf(err) == "" {
			msg = http.StatusText(status)
		}
	}
	return c.JSON(status, apiError{Error: errorCode(err), Message: msg})
}
