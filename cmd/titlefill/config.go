package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/eringen/titlefill"
)

// loadConfig reads config from environment (TITLEFILL_ prefix) and an
// optional titlefill.yaml in the working directory.
func loadConfig() titlefill.SiteConfig {
	v := viper.New()
	v.SetEnvPrefix("TITLEFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("titlefill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("site.name", "Blog")
	v.SetDefault("site.url", "http://localhost:3000")
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("db.path", "data/blog.db")
	v.SetDefault("slug", titlefill.DefaultSlug)
	v.SetDefault("date_format", titlefill.DefaultDateFormat)
	v.SetDefault("locale", "en")
	v.SetDefault("title_filter_priority", titlefill.DefaultTitleFilterPriority)

	return titlefill.SiteConfig{
		Name:                v.GetString("site.name"),
		URL:                 v.GetString("site.url"),
		Description:         v.GetString("site.description"),
		Author:              v.GetString("site.author"),
		Addr:                v.GetString("http.addr"),
		DatabasePath:        v.GetString("db.path"),
		AdminPassword:       v.GetString("admin.password"),
		SessionSecret:       v.GetString("session.secret"),
		CookieSecure:        v.GetBool("cookie.secure"),
		Slug:                v.GetString("slug"),
		DateFormat:          v.GetString("date_format"),
		Locale:              v.GetString("locale"),
		TitleFilterPriority: v.GetInt("title_filter_priority"),
	}
}

// openPlugin opens the store and builds a Plugin the way the server does.
func openPlugin(cfg titlefill.SiteConfig) (*titlefill.Store, *titlefill.Plugin, error) {
	store, err := titlefill.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	plugin := titlefill.NewPlugin(titlefill.PluginConfig{
		Slug:       cfg.Slug,
		Store:      store,
		Posts:      store,
		PostTypes:  cfg.PostTypes,
		DateFormat: cfg.DateFormat,
		Translator: titlefill.NewTranslator(titlefill.TextDomain, cfg.Locale),
	})
	return store, plugin, nil
}
