// ABOUTME: Generic fetched collection shared by every data hook
// ABOUTME: Tracks loading and error state, drops stale fetches and refetches after writes

package hooks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
)

// Clock returns the current time. Hooks take one so date maths are testable.
type Clock func() time.Time

// Loader is anything that can (re)fetch its collection
type Loader interface {
	Load(ctx context.Context) error
}

// Resource is a server-backed collection. Writes go through Mutate, which
// waits for the server, invalidates the cache and refetches; a failed write
// leaves Items unchanged and records a displayable message in Err.
//
// key is called with mu held and must not lock.
type Resource[T any] struct {
	prefix string
	key    func() string
	cache  *cache.Cache
	fetch  func(ctx context.Context) ([]T, func(), error)

	mu       sync.Mutex
	items    []T
	loaded   bool
	loading  bool
	err      string
	gen      uint64
	detached bool
}

// NewResource creates a collection cached under prefix. c may be nil.
func NewResource[T any](prefix string, c *cache.Cache, fetch func(ctx context.Context) ([]T, error)) *Resource[T] {
	return newCommitResource(prefix, c, func(ctx context.Context) ([]T, func(), error) {
		items, err := fetch(ctx)
		return items, nil, err
	})
}

// newCommitResource is NewResource for hooks that keep state beside the
// items. The commit returned with a result runs, with mu held, only if that
// result is applied.
func newCommitResource[T any](prefix string, c *cache.Cache, fetch func(ctx context.Context) ([]T, func(), error)) *Resource[T] {
	r := &Resource[T]{prefix: prefix, cache: c, fetch: fetch}
	r.key = func() string { return r.prefix }
	return r
}

// Items returns a copy of the current collection
func (r *Resource[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.items...)
}

func (r *Resource[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Loaded reports whether at least one fetch has been applied
func (r *Resource[T]) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Err is the message of the last failed load or write, or ""
func (r *Resource[T]) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Load fetches the collection, serving it from the cache when fresh. Only
// the newest call's result is applied; older in-flight results are dropped.
func (r *Resource[T]) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.detached {
		r.mu.Unlock()
		return nil
	}
	r.gen++
	gen := r.gen
	key := r.key()
	r.mu.Unlock()

	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			if items, ok := v.([]T); ok {
				r.apply(gen, append([]T(nil), items...), nil, nil)
				return nil
			}
		}
	}

	r.mu.Lock()
	if gen == r.gen {
		r.loading = true
	}
	r.mu.Unlock()

	items, commit, err := r.fetch(ctx)
	if !r.apply(gen, items, commit, err) {
		slog.Debug("Dropped stale fetch", "resource", key, "generation", gen)
		return nil
	}
	if err != nil {
		return err
	}
	if r.cache != nil {
		r.cache.Set(key, append([]T(nil), items...))
	}
	return nil
}

// Reload bypasses the cache
func (r *Resource[T]) Reload(ctx context.Context) error {
	r.invalidate()
	return r.Load(ctx)
}

// Mutate runs write, then invalidates and refetches on success
func (r *Resource[T]) Mutate(ctx context.Context, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		r.fail(err)
		return err
	}
	r.mu.Lock()
	r.err = ""
	r.mu.Unlock()
	return r.Reload(ctx)
}

// Detach stops the collection from accepting results, for a view that
// has been left. In-flight fetches finish but are discarded.
func (r *Resource[T]) Detach() {
	r.mu.Lock()
	r.detached = true
	r.loading = false
	r.mu.Unlock()
}

// Attach undoes Detach when a view is entered again
func (r *Resource[T]) Attach() {
	r.mu.Lock()
	r.detached = false
	r.mu.Unlock()
}

// apply stores a fetch result if it is still the newest one
func (r *Resource[T]) apply(gen uint64, items []T, commit func(), err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached || gen != r.gen {
		return false
	}
	r.loading = false
	if err != nil {
		r.err = client.Message(err)
		return true
	}
	r.items = items
	r.loaded = true
	r.err = ""
	if commit != nil {
		commit()
	}
	return true
}

// replace swaps one record in place; the cache entry is dropped so the next
// Load sees the server's state
func (r *Resource[T]) replace(match func(T) bool, updated T) {
	r.mu.Lock()
	for i := range r.items {
		if match(r.items[i]) {
			r.items[i] = updated
			break
		}
	}
	r.err = ""
	r.mu.Unlock()
	r.invalidate()
}

func (r *Resource[T]) fail(err error) {
	r.mu.Lock()
	r.err = client.Message(err)
	r.mu.Unlock()
}

// invalidate drops the prefix key and every "prefix:..." key
func (r *Resource[T]) invalidate() {
	if r.cache != nil {
		r.cache.Invalidate(r.prefix)
		r.cache.InvalidatePrefix(r.prefix + ":")
	}
}

// filter returns the items matching keep, without a request
func (r *Resource[T]) filter(keep func(T) bool) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// find returns the first item matching pred
func (r *Resource[T]) find(pred func(T) bool) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
