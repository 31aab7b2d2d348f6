package titlefill

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/titlefill/views"
)

const adminDateLayout = "2006-01-02"

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c, true); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := setAdminSession(c, false); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminNewPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post := views.AdminPost{
		Type:      "post",
		Date:      time.Now().Format(adminDateLayout),
		Published: true,
	}
	return Render(c, a.Views.AdminPostForm(a.postForm(c, post)))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetPostAny(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminPostForm(a.postForm(c, adminPost(post))))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	var id int64
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" && raw != "0" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+post+id.")
		}
		id = parsed
	}
	date := time.Now()
	if raw := strings.TrimSpace(c.FormValue("date")); raw != "" {
		parsed, err := time.Parse(adminDateLayout, raw)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
		}
		date = parsed
	}
	postType := strings.TrimSpace(c.FormValue("type"))
	if _, ok := a.Config.PostTypes[postType]; !ok {
		postType = "post"
	}
	format := strings.TrimSpace(c.FormValue("format"))
	if !IsPostFormat(format) {
		format = ""
	}
	var cats []Category
	for _, name := range FilterEmpty(strings.Split(c.FormValue("categories"), ",")) {
		cats = append(cats, Category{Name: name})
	}

	// Titles may be saved empty; the filler takes over on public pages.
	_, err := a.Store.SavePost(c.Request().Context(), Post{
		ID:         id,
		Title:      strings.TrimSpace(c.FormValue("title")),
		Type:       postType,
		Format:     format,
		Date:       date,
		Content:    c.FormValue("content"),
		Published:  c.FormValue("published") != "",
		Categories: cats,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+not+found.")
		}
		return err
	}
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	ctx := c.Request().Context()
	posts, err := a.Store.ListAllPosts(ctx)
	if err != nil {
		return err
	}
	rows := make([]views.AdminPost, 0, len(posts))
	for _, p := range posts {
		row := adminPost(p)
		row.Title = a.Title(ctx, p.Title, TitleRequest{PostID: p.ID, Admin: true})
		rows = append(rows, row)
	}
	return Render(c, a.Views.AdminDashboard(views.Dashboard{
		Posts:       rows,
		Message:     msg,
		CSRFToken:   CsrfToken(c),
		SettingsURL: a.settingsPath(),
		MenuLabel:   a.i18n.T(msgMenuLabel),
	}))
}

func (a *App) postForm(c echo.Context, post views.AdminPost) views.PostForm {
	types := make([]views.Choice, 0, len(a.Config.PostTypes))
	for _, name := range sortedKeys(a.Config.PostTypes) {
		types = append(types, views.Choice{Value: name, Label: a.i18n.T(a.Config.PostTypes[name].Singular)})
	}
	formats := []views.Choice{{Value: "", Label: "Standard"}}
	for _, slug := range sortedKeys(postFormats) {
		formats = append(formats, views.Choice{Value: slug, Label: PostFormatString(a.i18n, slug)})
	}
	return views.PostForm{
		Post:      post,
		Types:     types,
		Formats:   formats,
		CSRFToken: CsrfToken(c),
	}
}

func adminPost(p Post) views.AdminPost {
	names := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		names = append(names, cat.Name)
	}
	return views.AdminPost{
		ID:         p.ID,
		Title:      p.Title,
		Type:       p.Type,
		Format:     p.Format,
		Date:       p.Date.Format(adminDateLayout),
		Categories: JoinCategories(names),
		Content:    p.Content,
		Published:  p.Published,
	}
}
