package titlefill

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/titlefill/views"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Store.ListPosts(ctx)
	if err != nil {
		return err
	}
	items := make([]views.PostItem, 0, len(posts))
	for _, p := range posts {
		// List rendering resolves the post from the loop, not from an id.
		req := TitleRequest{LoopPostID: p.ID}
		item := views.PostItem{
			ID:        p.ID,
			Link:      PostPath(p.ID),
			TitleHTML: a.TitleHTML(ctx, p.Title, req),
			Date:      a.formatDate(p),
		}
		if cats, err := a.Store.PostCategories(ctx, p.ID); err == nil && len(cats) > 0 {
			item.Category = cats[0].Name
		}
		items = append(items, item)
	}
	return Render(c, a.Views.Home(views.HomePage{
		Meta: views.Meta{
			Lang:        a.i18n.Lang(),
			SiteName:    a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
			JSONLD:      WebsiteJsonLD(a.Config),
		},
		Posts: items,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	ctx := c.Request().Context()
	post, err := a.Store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	req := TitleRequest{PostID: post.ID}
	plain := a.PlainTitle(ctx, post.Title, req)
	cats := make([]string, 0, len(post.Categories))
	for _, cat := range post.Categories {
		cats = append(cats, cat.Name)
	}
	return Render(c, a.Views.Post(views.PostPage{
		Meta: views.Meta{
			Lang:        a.i18n.Lang(),
			SiteName:    a.Config.Name,
			Title:       plain,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL, "blog", strconv.FormatInt(post.ID, 10)),
			OGType:      "article",
			JSONLD:      BlogPostingJsonLD(post, plain, a.Config),
		},
		TitleHTML:  a.TitleHTML(ctx, post.Title, req),
		Date:       a.formatDate(post),
		Categories: cats,
		Content:    post.Content,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Store.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Store.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error("server error", "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
