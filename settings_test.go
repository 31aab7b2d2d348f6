package titlefill

import (
	"context"
	"errors"
	"testing"
)

func TestSettingsSaveRunsValidator(t *testing.T) {
	store := newMemOptions()
	s := NewSettings(store)
	s.Register("tb_etf_options", Validate)

	opts, err := s.Save(context.Background(), "tb_etf_options", RawInput{"title_format": "<i>x</i> %n"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if opts.TitleFormat != "x %n" {
		t.Errorf("TitleFormat = %q", opts.TitleFormat)
	}
	if got := store.data["tb_etf_options"]; got != opts {
		t.Errorf("stored %+v, want %+v", got, opts)
	}
}

func TestSettingsSaveUnknownKey(t *testing.T) {
	s := NewSettings(newMemOptions())
	_, err := s.Save(context.Background(), "nope", RawInput{})
	if !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("err = %v, want ErrUnknownSetting", err)
	}
}

func TestSettingsSaveStoreFailure(t *testing.T) {
	store := newMemOptions()
	store.err = errors.New("read-only")
	s := NewSettings(store)
	s.Register("k", Validate)

	opts, err := s.Save(context.Background(), "k", RawInput{"title_format": "t", "not_empty_titles": "on"})
	if err == nil {
		t.Fatal("expected error")
	}
	if opts.TitleFormat != "t" || !opts.NotEmptyTitles {
		t.Errorf("validated options not returned: %+v", opts)
	}
}
