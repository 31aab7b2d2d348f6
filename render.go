package titlefill

import (
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var plainPolicy = bluemonday.StrictPolicy()

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

// Title runs title through the title filter pipeline.
func (a *App) Title(ctx context.Context, title string, req TitleRequest) string {
	return a.Filters.Apply(ctx, title, req)
}

// TitleHTML returns the filtered title as markup safe to emit verbatim.
func (a *App) TitleHTML(ctx context.Context, title string, req TitleRequest) string {
	return SanitizeTitleFormat(a.Title(ctx, title, req))
}

// PlainTitle returns the filtered title with all markup removed, for
// contexts that take text only (document title, feeds).
func (a *App) PlainTitle(ctx context.Context, title string, req TitleRequest) string {
	return PlainText(a.Title(ctx, title, req))
}

// PlainText strips every tag from s and decodes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}
