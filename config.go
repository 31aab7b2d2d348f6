package titlefill

import (
	"log/slog"
)

const (
	// DefaultSlug prefixes the option key and names the settings page.
	DefaultSlug = "tb_etf"
	// DefaultDateFormat is the strftime pattern used for %d.
	DefaultDateFormat = "%Y-%m-%d"
	// DefaultTitleFilterPriority runs the filler after default-priority filters.
	DefaultTitleFilterPriority = 20
)

// SiteConfig holds all configuration for a titlefill site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	Slug                string              // Plugin slug (default "tb_etf")
	DateFormat          string              // strftime pattern for post dates (default "%Y-%m-%d")
	Locale              string              // BCP 47 locale for UI strings (default "en")
	TitleFilterPriority int                 // Priority of the filler in the title pipeline (default 20)
	PostTypes           map[string]PostType // Registered post types (default post and page)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.Slug == "" {
		c.Slug = DefaultSlug
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.TitleFilterPriority == 0 {
		c.TitleFilterPriority = DefaultTitleFilterPriority
	}
	if c.PostTypes == nil {
		c.PostTypes = defaultPostTypes()
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

// WithLogger sets the application logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithDefaultOptionsFilter lets fn rewrite the default Options of the title
// filler. Persisted options are not affected.
func WithDefaultOptionsFilter(fn DefaultsFilter) Option {
	return func(a *App) {
		a.defaultsFilters = append(a.defaultsFilters, fn)
	}
}

// WithTitleFilter adds a handler to the title pipeline.
func WithTitleFilter(name string, priority int, fn TitleFilterFunc) Option {
	return func(a *App) {
		a.Filters.Add(name, priority, fn)
	}
}

// WithViews overrides the default view components. Nil fields keep the defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = a.Views.merge(v)
	}
}
