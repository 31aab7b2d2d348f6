// Package titlefill is a small blog engine built with Go, Echo, and templ
// whose title pipeline fills empty post titles from a configurable format.
//
// The empty titles filler keeps one options record (a title format and a
// flag to apply it to non-empty titles too), exposes it on an admin
// settings page, and registers a handler on the title filter pipeline that
// substitutes %d, %f, %n and %c for the post being rendered.
package titlefill

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eringen/titlefill/views"
)

// ViewFuncs holds the components the App renders pages with. Fields left
// nil by WithViews keep the defaults from the views package.
type ViewFuncs struct {
	Home           func(views.HomePage) templ.Component
	Post           func(views.PostPage) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(views.Dashboard) templ.Component
	AdminPostForm  func(views.PostForm) templ.Component
	Settings       func(views.SettingsPage) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the built-in components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		Post:           views.Post,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminPostForm:  views.AdminPostForm,
		Settings:       views.Settings,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

func (v ViewFuncs) merge(o ViewFuncs) ViewFuncs {
	if o.Home != nil {
		v.Home = o.Home
	}
	if o.Post != nil {
		v.Post = o.Post
	}
	if o.AdminLogin != nil {
		v.AdminLogin = o.AdminLogin
	}
	if o.AdminDashboard != nil {
		v.AdminDashboard = o.AdminDashboard
	}
	if o.AdminPostForm != nil {
		v.AdminPostForm = o.AdminPostForm
	}
	if o.Settings != nil {
		v.Settings = o.Settings
	}
	if o.NotFound != nil {
		v.NotFound = o.NotFound
	}
	if o.ServerError != nil {
		v.ServerError = o.ServerError
	}
	return v
}

// App is the central titlefill application. It wires together the store,
// the title filter pipeline, the settings registry, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Views    ViewFuncs
	Filters  *Filters
	Settings *Settings
	Plugin   *Plugin

	i18n            *Translator
	logger          *slog.Logger
	loginLimiter    *LoginLimiter
	defaultsFilters []DefaultsFilter
	customRoutes    []func(*App)
	staticDir       string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		Filters:   &Filters{},
		logger:    slog.Default(),
		staticDir: "public",
	}
	a.i18n = NewTranslator(TextDomain, cfg.Locale)

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start opens the database, wires the app and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("titlefill: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("titlefill: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("titlefill: init store: %w", err)
	}
	a.Init(store)

	a.logger.Info("listening", "addr", a.Config.Addr, "site", a.Config.Name)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Init wires the store-backed components, middleware and routes. Start
// calls it; tests call it directly with their own store.
func (a *App) Init(store *Store) {
	a.Store = store
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.Settings = NewSettings(store)
	a.Plugin = NewPlugin(PluginConfig{
		Slug:       a.Config.Slug,
		Store:      store,
		Posts:      store,
		PostTypes:  a.Config.PostTypes,
		DateFormat: a.Config.DateFormat,
		Translator: a.i18n,
		Defaults:   a.defaultsFilters,
		Logger:     a.logger,
	})
	a.Plugin.OptionsInit(context.Background(), a.Settings)
	a.Filters.Add(TitleFilterName, a.Config.TitleFilterPriority, a.Plugin.FillTitle)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/:id/", a.handlePost)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/new/", a.handleAdminNewPost)
	e.GET("/admin/post/:id/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:id/", a.handleAdminDelete)

	// Settings
	e.GET(a.settingsPath(), a.handleSettingsPage)
	e.POST("/admin/options/", a.handleOptionsSave)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("titlefill: required environment variable %s is not set", key)
	}
	return v
}
