package titlefill

import (
	"context"
	"html"
)

// Options is the single persisted configuration record of the title filler.
type Options struct {
	TitleFormat    string `json:"title_format" yaml:"title_format"`
	NotEmptyTitles bool   `json:"not_empty_titles" yaml:"not_empty_titles"`
}

// Editable returns o with TitleFormat decoded back to the text an admin
// typed. The sanitizer stores entities such as &amp; encoded.
func (o Options) Editable() Options {
	o.TitleFormat = html.UnescapeString(o.TitleFormat)
	return o
}

// OptionsStore is a durable key/value store for Options records.
// GetOptions performs no validation and returns def when key is unset.
type OptionsStore interface {
	GetOptions(ctx context.Context, key string, def Options) (Options, error)
	SetOptions(ctx context.Context, key string, opts Options) error
}

// DefaultsFilter may rewrite the default Options before they are used.
// Filters run in registration order and never touch persisted state.
type DefaultsFilter func(Options) Options

// OptionKey returns the well-known option key for a plugin slug.
func OptionKey(slug string) string {
	return slug + "_options"
}
