package titlefill

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownSetting is returned when a save targets an unregistered option key.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings maps option keys to the validators that must run before a form
// value for that key is persisted.
type Settings struct {
	mu         sync.RWMutex
	validators map[string]Validator
	store      OptionsStore
}

// NewSettings returns a registry that persists into store.
func NewSettings(store OptionsStore) *Settings {
	return &Settings{validators: make(map[string]Validator), store: store}
}

// Register declares key as a form-editable setting guarded by v.
func (s *Settings) Register(key string, v Validator) {
	s.mu.Lock()
	s.validators[key] = v
	s.mu.Unlock()
}

// Registered reports whether key has been registered.
func (s *Settings) Registered(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.validators[key]
	return ok
}

// Save validates raw with the validator registered for key and persists the
// result. The validated Options are returned even when persisting fails.
func (s *Settings) Save(ctx context.Context, key string, raw RawInput) (Options, error) {
	s.mu.RLock()
	v, ok := s.validators[key]
	s.mu.RUnlock()
	if !ok {
		return Options{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	opts := v(raw)
	if err := s.store.SetOptions(ctx, key, opts); err != nil {
		return opts, fmt.Errorf("save %s: %w", key, err)
	}
	return opts, nil
}
