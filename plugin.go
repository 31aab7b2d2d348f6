package titlefill

import (
	"context"
	"log/slog"
	"sync"
)

// TitleFilterName is the name the formatter registers under in the title
// filter pipeline.
const TitleFilterName = "fill_title"

// Plugin wires the empty titles filler into an App: its setting, its admin
// page and its title filter.
type Plugin struct {
	Slug      string
	OptionKey string

	store     OptionsStore
	i18n      *Translator
	defaults  []DefaultsFilter
	formatter *TitleFormatter
	logger    *slog.Logger

	mu sync.RWMutex
	// options is the snapshot taken by OptionsInit for the settings page.
	options Options
}

// PluginConfig holds the collaborators of a Plugin.
type PluginConfig struct {
	Slug       string
	Store      OptionsStore
	Posts      PostLookup
	PostTypes  map[string]PostType
	DateFormat string
	Translator *Translator
	Defaults   []DefaultsFilter
	Logger     *slog.Logger
}

// NewPlugin builds a Plugin and its TitleFormatter.
func NewPlugin(cfg PluginConfig) *Plugin {
	if cfg.Slug == "" {
		cfg.Slug = DefaultSlug
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	p := &Plugin{
		Slug:      cfg.Slug,
		OptionKey: OptionKey(cfg.Slug),
		store:     cfg.Store,
		i18n:      cfg.Translator,
		defaults:  cfg.Defaults,
		logger:    cfg.Logger,
	}
	p.formatter = NewTitleFormatter(FormatterConfig{
		Options:    p.PluginOptions,
		Posts:      cfg.Posts,
		PostTypes:  cfg.PostTypes,
		DateFormat: cfg.DateFormat,
		Translator: cfg.Translator,
	})
	return p
}

// DefaultOptions returns the defaults after every DefaultsFilter ran.
func (p *Plugin) DefaultOptions() Options {
	def := Options{
		TitleFormat:    p.i18n.T(msgSetTitleFormat),
		NotEmptyTitles: false,
	}
	for _, f := range p.defaults {
		def = f(def)
	}
	return def
}

// PluginOptions reads the stored Options, falling back to the defaults when
// nothing is stored or the store cannot be read.
func (p *Plugin) PluginOptions(ctx context.Context) Options {
	def := p.DefaultOptions()
	if p.store == nil {
		return def
	}
	opts, err := p.store.GetOptions(ctx, p.OptionKey, def)
	if err != nil {
		p.logger.Warn("read options", "key", p.OptionKey, "error", err)
		return def
	}
	return opts
}

// OptionsInit snapshots the current Options and registers the setting with
// its validator.
func (p *Plugin) OptionsInit(ctx context.Context, settings *Settings) {
	opts := p.PluginOptions(ctx)
	p.mu.Lock()
	p.options = opts
	p.mu.Unlock()
	settings.Register(p.OptionKey, Validate)
}

// Snapshot returns the Options captured by the last OptionsInit.
func (p *Plugin) Snapshot() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.options
}

// FillTitle is the title filter handler.
func (p *Plugin) FillTitle(ctx context.Context, title string, req TitleRequest) string {
	out, outcome := p.formatter.fill(ctx, title, req)
	titlesTotal.WithLabelValues(outcome).Inc()
	return out
}
