package titlefill

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// memOptions is an in-memory OptionsStore.
type memOptions struct {
	mu   sync.Mutex
	data map[string]Options
	err  error
}

func newMemOptions() *memOptions {
	return &memOptions{data: make(map[string]Options)}
}

func (m *memOptions) GetOptions(_ context.Context, key string, def Options) (Options, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return def, m.err
	}
	if o, ok := m.data[key]; ok {
		return o, nil
	}
	return def, nil
}

func (m *memOptions) SetOptions(_ context.Context, key string, o Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = o
	return nil
}

// memPosts is an in-memory PostLookup.
type memPosts map[int64]PostData

func (m memPosts) LookupPost(_ context.Context, id int64) (PostData, error) {
	p, ok := m[id]
	if !ok {
		return PostData{}, errors.New("no such post")
	}
	return p, nil
}
