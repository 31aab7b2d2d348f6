package titlefill

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

// testClient drives the App through its full middleware stack, carrying
// cookies between requests like a browser would.
type testClient struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T, opts ...Option) (*App, *testClient) {
	t.Helper()
	cfg := SiteConfig{
		Name:          "Test Blog",
		URL:           "http://example.com",
		AdminPassword: "hunter2",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	a := New(cfg, opts...)
	a.Init(setupTestStore(t))
	return a, &testClient{t: t, app: a, cookies: make(map[string]*http.Cookie)}
}

func (c *testClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		if tok, ok := c.cookies["_csrf"]; ok {
			form.Set("_csrf", tok.Value)
		}
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *testClient) login() {
	c.t.Helper()
	c.do(http.MethodGet, "/admin/", nil)
	rec := c.do(http.MethodPost, "/admin/login/", url.Values{"password": {"hunter2"}})
	if rec.Code != http.StatusSeeOther {
		c.t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func savePost(t *testing.T, a *App, p Post) int64 {
	t.Helper()
	id, err := a.Store.SavePost(context.Background(), p)
	if err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	return id
}

func TestSettingsPageRequiresAdmin(t *testing.T) {
	_, c := newTestApp(t)
	rec := c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestSettingsPageRendersFields(t *testing.T) {
	a, c := newTestApp(t)
	if err := a.Store.SetOptions(context.Background(), "tb_etf_options", Options{TitleFormat: `"quoted" <em>%n</em>`, NotEmptyTitles: true}); err != nil {
		t.Fatal(err)
	}
	c.login()

	rec := c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`name="tb_etf_options[title_format]"`,
		`value="&#34;quoted&#34; &lt;em&gt;%n&lt;/em&gt;"`,
		`name="tb_etf_options[not_empty_titles]"`,
		`checked="checked"`,
		`name="option_page" value="tb_etf_options"`,
		"<code>%d</code>", "<code>%f</code>", "<code>%n</code>", "<code>%c</code>",
		"<code>img</code>",
		"Empty Titles Filler Options",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("settings page missing %q", want)
		}
	}
	if strings.Contains(body, "Settings saved.") {
		t.Error("success notice shown before saving")
	}
}

func TestOptionsSaveFlow(t *testing.T) {
	a, c := newTestApp(t)
	c.login()
	c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil)

	rec := c.do(http.MethodPost, "/admin/options/", url.Values{
		"option_page":                  {"tb_etf_options"},
		"tb_etf_options[title_format]": {"Post %n <script>x</script>"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("save: status %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/options-general/tb_etf_options/?settings-updated=true" {
		t.Errorf("Location = %q", loc)
	}

	opts, err := a.Store.GetOptions(context.Background(), "tb_etf_options", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(opts.TitleFormat, "<script") || !strings.HasPrefix(opts.TitleFormat, "Post %n") {
		t.Errorf("stored TitleFormat = %q", opts.TitleFormat)
	}
	if opts.NotEmptyTitles {
		t.Error("NotEmptyTitles should be false when the checkbox is absent")
	}

	rec = c.do(http.MethodGet, "/admin/options-general/tb_etf_options/?settings-updated=true", nil)
	if !strings.Contains(rec.Body.String(), "Settings saved.") {
		t.Error("success notice missing after save")
	}
}

func TestOptionsSaveUnknownPage(t *testing.T) {
	_, c := newTestApp(t)
	c.login()
	rec := c.do(http.MethodPost, "/admin/options/", url.Values{"option_page": {"other_options"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestOptionsSaveWithoutCSRF(t *testing.T) {
	_, c := newTestApp(t)
	c.login()
	delete(c.cookies, "_csrf")
	rec := c.do(http.MethodPost, "/admin/options/", url.Values{"option_page": {"tb_etf_options"}})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestPublicPagesFillEmptyTitles(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()
	if err := a.Store.SetOptions(ctx, "tb_etf_options", Options{TitleFormat: "%f #%n in %c"}); err != nil {
		t.Fatal(err)
	}
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	empty := savePost(t, a, Post{Format: "video", Date: date, Published: true, Categories: []Category{{Name: "News"}}})
	titled := savePost(t, a, Post{Title: "Kept Title", Date: date, Published: true})
	emptyID := strconv.FormatInt(empty, 10)

	rec := c.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("home status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Video #"+emptyID+" in News") {
		t.Errorf("home missing filled title; body: %s", body)
	}
	if !strings.Contains(body, "Kept Title") {
		t.Error("home missing kept title")
	}

	rec = c.do(http.MethodGet, "/blog/"+emptyID+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("post status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Video #"+emptyID+" in News</h1>") {
		t.Errorf("post page missing filled title; body: %s", rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/blog/"+strconv.FormatInt(titled, 10)+"/", nil)
	if !strings.Contains(rec.Body.String(), "<h1>Kept Title</h1>") {
		t.Errorf("titled post rewritten; body: %s", rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/feed.xml", nil)
	if !strings.Contains(rec.Body.String(), "<title>Video #"+emptyID+" in News</title>") {
		t.Errorf("feed missing filled title; body: %s", rec.Body.String())
	}
}

func TestOptionChangesApplyOnNextRender(t *testing.T) {
	a, c := newTestApp(t)
	id := savePost(t, a, Post{Published: true})
	path := "/blog/" + strconv.FormatInt(id, 10) + "/"

	rec := c.do(http.MethodGet, path, nil)
	if !strings.Contains(rec.Body.String(), "<h1>(Set a Title Format)</h1>") {
		t.Errorf("default placeholder missing; body: %s", rec.Body.String())
	}

	c.login()
	c.do(http.MethodPost, "/admin/options/", url.Values{
		"option_page":                      {"tb_etf_options"},
		"tb_etf_options[title_format]":     {"Number <em>%n</em>"},
		"tb_etf_options[not_empty_titles]": {"on"},
	})

	rec = c.do(http.MethodGet, path, nil)
	if !strings.Contains(rec.Body.String(), "<h1>Number <em>"+strconv.FormatInt(id, 10)+"</em></h1>") {
		t.Errorf("new format not applied; body: %s", rec.Body.String())
	}
}

func TestAdminDashboardShowsRawTitles(t *testing.T) {
	a, c := newTestApp(t)
	if err := a.Store.SetOptions(context.Background(), "tb_etf_options", Options{TitleFormat: "FILLED %n", NotEmptyTitles: true}); err != nil {
		t.Fatal(err)
	}
	savePost(t, a, Post{Title: "Raw Title", Published: true})
	c.login()

	rec := c.do(http.MethodGet, "/admin/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Raw Title") {
		t.Error("dashboard missing raw title")
	}
	if strings.Contains(body, "FILLED") {
		t.Error("dashboard shows filled title")
	}
}

func TestDefaultOptionsFilterOption(t *testing.T) {
	a, c := newTestApp(t, WithDefaultOptionsFilter(func(o Options) Options {
		o.TitleFormat = "Untitled %n"
		return o
	}))
	id := savePost(t, a, Post{Published: true})
	rec := c.do(http.MethodGet, "/blog/"+strconv.FormatInt(id, 10)+"/", nil)
	if !strings.Contains(rec.Body.String(), "<h1>Untitled "+strconv.FormatInt(id, 10)+"</h1>") {
		t.Errorf("defaults filter not applied; body: %s", rec.Body.String())
	}
}

func TestTitleFilterOptionRunsBeforeFiller(t *testing.T) {
	a, _ := newTestApp(t, WithTitleFilter("strip", DefaultPriority, func(_ context.Context, title string, _ TitleRequest) string {
		return strings.TrimSpace(title)
	}))
	if err := a.Store.SetOptions(context.Background(), "tb_etf_options", Options{TitleFormat: "Post %n"}); err != nil {
		t.Fatal(err)
	}
	got := a.Title(context.Background(), "   ", TitleRequest{PostID: 3})
	if got != "Post 3" {
		t.Errorf("Title = %q, want %q", got, "Post 3")
	}
	want := []string{"strip", TitleFilterName}
	if names := a.Filters.Names(); len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("Names = %v, want %v", names, want)
	}
}

func TestLoginRateLimited(t *testing.T) {
	_, c := newTestApp(t)
	c.do(http.MethodGet, "/admin/", nil)
	for i := 0; i < 5; i++ {
		c.do(http.MethodPost, "/admin/login/", url.Values{"password": {"wrong"}})
	}
	rec := c.do(http.MethodPost, "/admin/login/", url.Values{"password": {"hunter2"}})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestSettingsPageShowsFormatAsTyped(t *testing.T) {
	a, c := newTestApp(t)
	c.login()
	c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil)

	save := func(format string) string {
		t.Helper()
		rec := c.do(http.MethodPost, "/admin/options/", url.Values{
			"option_page":                  {"tb_etf_options"},
			"tb_etf_options[title_format]": {format},
		})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("save: status %d", rec.Code)
		}
		opts, err := a.Store.GetOptions(context.Background(), "tb_etf_options", Options{})
		if err != nil {
			t.Fatal(err)
		}
		return opts.TitleFormat
	}

	stored := save("Tom & Jerry's %n")

	body := c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil).Body.String()
	if !strings.Contains(body, `value="Tom &amp; Jerry&#39;s %n"`) {
		t.Errorf("title format input not shown as typed; body: %s", body)
	}
	if strings.Contains(body, "&amp;amp;") {
		t.Error("title format input escaped twice")
	}

	// Submitting the form unchanged keeps the stored value stable.
	if again := save("Tom & Jerry's %n"); again != stored {
		t.Errorf("re-saved TitleFormat = %q, want %q", again, stored)
	}
}

func TestOptionsSaveStoreFailure(t *testing.T) {
	a, c := newTestApp(t)
	c.login()
	c.do(http.MethodGet, "/admin/options-general/tb_etf_options/", nil)

	if err := a.Store.Close(); err != nil {
		t.Fatal(err)
	}
	rec := c.do(http.MethodPost, "/admin/options/", url.Values{
		"option_page":                  {"tb_etf_options"},
		"tb_etf_options[title_format]": {"Post %n"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if loc != a.settingsPath() {
		t.Errorf("Location = %q, want %q", loc, a.settingsPath())
	}
	if strings.Contains(loc, "settings-updated") {
		t.Errorf("failed save reported success: %q", loc)
	}

	rec = c.do(http.MethodGet, loc, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("settings page status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Settings saved.") {
		t.Error("success notice shown after a failed save")
	}
	// Reads fall back to the defaults while the store is unavailable.
	if !strings.Contains(body, `value="(Set a Title Format)"`) {
		t.Errorf("defaults not shown; body: %s", body)
	}
}

func TestCacheControl(t *testing.T) {
	_, c := newTestApp(t)
	tests := []struct {
		path string
		want string
	}{
		{"/", "no-cache"},
		{"/feed.xml", "no-cache"},
		{"/admin/", "no-store"},
		{"/metrics", "no-store"},
	}
	for _, tt := range tests {
		rec := c.do(http.MethodGet, tt.path, nil)
		if got := rec.Header().Get("Cache-Control"); got != tt.want {
			t.Errorf("%s: Cache-Control = %q, want %q", tt.path, got, tt.want)
		}
	}
}
