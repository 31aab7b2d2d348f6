package titlefill

import (
	"context"
	"sort"
	"sync"
)

// DefaultPriority is the priority handlers get when registered without one.
const DefaultPriority = 10

// TitleRequest describes where a title is being rendered.
type TitleRequest struct {
	// PostID is the post the caller asked about, 0 when none was given.
	PostID int64
	// LoopPostID is the post currently iterated by a list render, 0 outside one.
	LoopPostID int64
	// Admin is set for renders inside the admin surface.
	Admin bool
}

// TitleFilterFunc receives the title produced by the previous handler and
// returns the value handed to the next one.
type TitleFilterFunc func(ctx context.Context, title string, req TitleRequest) string

type titleHandler struct {
	name     string
	priority int
	seq      int
	fn       TitleFilterFunc
}

// Filters is the ordered title-render pipeline. Handlers run by ascending
// priority; equal priorities run in registration order.
type Filters struct {
	mu       sync.RWMutex
	handlers []titleHandler
	seq      int
}

// Add registers fn under name. Registering a name twice replaces the earlier
// handler.
func (f *Filters) Add(name string, priority int, fn TitleFilterFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(name)
	f.seq++
	f.handlers = append(f.handlers, titleHandler{name: name, priority: priority, seq: f.seq, fn: fn})
	sort.SliceStable(f.handlers, func(i, j int) bool {
		if f.handlers[i].priority != f.handlers[j].priority {
			return f.handlers[i].priority < f.handlers[j].priority
		}
		return f.handlers[i].seq < f.handlers[j].seq
	})
}

// Remove unregisters the handler called name and reports whether it existed.
func (f *Filters) Remove(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeLocked(name)
}

func (f *Filters) removeLocked(name string) bool {
	for i, h := range f.handlers {
		if h.name == name {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Names lists registered handlers in dispatch order.
func (f *Filters) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, len(f.handlers))
	for i, h := range f.handlers {
		names[i] = h.name
	}
	return names
}

// Apply threads title through every handler.
func (f *Filters) Apply(ctx context.Context, title string, req TitleRequest) string {
	f.mu.RLock()
	handlers := make([]titleHandler, len(f.handlers))
	copy(handlers, f.handlers)
	f.mu.RUnlock()

	for _, h := range handlers {
		title = h.fn(ctx, title, req)
	}
	return title
}
