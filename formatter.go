package titlefill

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// PostData is what the post store knows about a post when a title is rendered.
type PostData struct {
	ID       int64
	Type     string
	Format   string
	Date     time.Time
	Category string // name of the first assigned category, "" when none
}

// PostLookup resolves a post id to its render data.
type PostLookup interface {
	LookupPost(ctx context.Context, id int64) (PostData, error)
}

// RenderContext carries the substitution values of one title render.
type RenderContext struct {
	ID       int64
	Format   string // post format label, or the post type's singular label
	Date     string
	Category string
}

// Replacer returns a single-pass replacer for the four title tokens.
func (rc RenderContext) Replacer() *strings.Replacer {
	return strings.NewReplacer(
		"%f", rc.Format,
		"%d", rc.Date,
		"%n", strconv.FormatInt(rc.ID, 10),
		"%c", rc.Category,
	)
}

// TitleFormatter computes replacement titles from the stored title format.
type TitleFormatter struct {
	options    func(ctx context.Context) Options
	posts      PostLookup
	postTypes  map[string]PostType
	dateFormat string
	i18n       *Translator
}

// FormatterConfig holds the collaborators of a TitleFormatter.
type FormatterConfig struct {
	// Options loads the current Options. It is called once per render.
	Options    func(ctx context.Context) Options
	Posts      PostLookup
	PostTypes  map[string]PostType
	DateFormat string // strftime pattern
	Translator *Translator
}

// NewTitleFormatter returns a formatter wired to cfg.
func NewTitleFormatter(cfg FormatterConfig) *TitleFormatter {
	if cfg.PostTypes == nil {
		cfg.PostTypes = defaultPostTypes()
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	return &TitleFormatter{
		options:    cfg.Options,
		posts:      cfg.Posts,
		postTypes:  cfg.PostTypes,
		dateFormat: cfg.DateFormat,
		i18n:       cfg.Translator,
	}
}

// FillTitle returns the title to display for a post. Admin renders and
// renders without a post are left alone. Non-empty titles are only replaced
// when Options.NotEmptyTitles is set.
func (f *TitleFormatter) FillTitle(ctx context.Context, title string, req TitleRequest) string {
	title, _ = f.fill(ctx, title, req)
	return title
}

func (f *TitleFormatter) fill(ctx context.Context, title string, req TitleRequest) (string, string) {
	if req.Admin {
		return title, outcomeAdmin
	}
	id := req.PostID
	if id == 0 && req.LoopPostID != 0 {
		id = req.LoopPostID
	}
	if id == 0 {
		return title, outcomeNoPost
	}

	opts := f.options(ctx)
	if title != "" && !opts.NotEmptyTitles {
		return title, outcomeKept
	}

	rc := f.renderContext(ctx, id)
	return rc.Replacer().Replace(opts.TitleFormat), outcomeFilled
}

// renderContext builds the token values for id. Lookup failures leave the
// affected tokens empty.
func (f *TitleFormatter) renderContext(ctx context.Context, id int64) RenderContext {
	rc := RenderContext{ID: id}
	if f.posts == nil {
		return rc
	}
	post, err := f.posts.LookupPost(ctx, id)
	if err != nil && post.ID == 0 {
		return rc
	}
	// A failed category lookup still leaves the post fields usable.
	if label := PostFormatString(f.i18n, post.Format); label != "" {
		rc.Format = label
	} else if pt, ok := f.postTypes[post.Type]; ok {
		rc.Format = f.i18n.T(pt.Singular)
	}
	if !post.Date.IsZero() {
		rc.Date = strftime.Format(f.dateFormat, post.Date)
	}
	rc.Category = post.Category
	return rc
}
