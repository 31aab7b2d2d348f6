package titlefill

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestPlugin(store OptionsStore, posts PostLookup, defaults ...DefaultsFilter) *Plugin {
	return NewPlugin(PluginConfig{
		Store:      store,
		Posts:      posts,
		Translator: NewTranslator(TextDomain, "en"),
		Defaults:   defaults,
	})
}

func TestPluginDefaultFallback(t *testing.T) {
	p := newTestPlugin(newMemOptions(), memPosts{3: {ID: 3, Type: "post"}})
	got := p.FillTitle(context.Background(), "", TitleRequest{PostID: 3})
	if got != "(Set a Title Format)" {
		t.Errorf("got %q, want the default placeholder", got)
	}
}

func TestPluginOptionKey(t *testing.T) {
	p := newTestPlugin(nil, nil)
	if p.OptionKey != "tb_etf_options" {
		t.Errorf("OptionKey = %q", p.OptionKey)
	}
}

func TestPluginDefaultsFilters(t *testing.T) {
	store := newMemOptions()
	p := newTestPlugin(store, memPosts{},
		func(o Options) Options { o.TitleFormat = "Untitled #%n"; return o },
		func(o Options) Options { o.TitleFormat = "<" + o.TitleFormat + ">"; return o },
	)
	want := Options{TitleFormat: "<Untitled #%n>"}
	if diff := cmp.Diff(want, p.DefaultOptions()); diff != "" {
		t.Errorf("DefaultOptions mismatch (-want +got):\n%s", diff)
	}
	if len(store.data) != 0 {
		t.Errorf("defaults filter persisted options: %v", store.data)
	}
	if got := p.FillTitle(context.Background(), "", TitleRequest{PostID: 8}); got != "<Untitled #8>" {
		t.Errorf("FillTitle = %q", got)
	}
}

func TestPluginStoredOptionsWin(t *testing.T) {
	store := newMemOptions()
	store.data["tb_etf_options"] = Options{TitleFormat: "Stored %n"}
	p := newTestPlugin(store, memPosts{})
	if got := p.FillTitle(context.Background(), "", TitleRequest{PostID: 2}); got != "Stored 2" {
		t.Errorf("got %q", got)
	}
}

func TestPluginStoreFailureFallsBackToDefaults(t *testing.T) {
	store := newMemOptions()
	store.err = errors.New("disk gone")
	p := newTestPlugin(store, memPosts{})
	if got := p.PluginOptions(context.Background()); got.TitleFormat != "(Set a Title Format)" {
		t.Errorf("PluginOptions = %+v", got)
	}
}

func TestPluginOptionsInit(t *testing.T) {
	store := newMemOptions()
	store.data["tb_etf_options"] = Options{TitleFormat: "Snap", NotEmptyTitles: true}
	p := newTestPlugin(store, memPosts{})
	settings := NewSettings(store)

	p.OptionsInit(context.Background(), settings)

	if !settings.Registered(p.OptionKey) {
		t.Fatal("setting not registered")
	}
	want := Options{TitleFormat: "Snap", NotEmptyTitles: true}
	if diff := cmp.Diff(want, p.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}
