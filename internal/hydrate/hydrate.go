// Package hydrate loads entity stores from a persistence source.
//
// A Refresher drives one store: it raises the loading flag, fetches, and
// replaces the store contents. Overlapping refreshes of the same store are
// ordered by a generation counter; only the most recently started refresh
// may apply its result, so a slow response can never overwrite a newer one.
package hydrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/daybook/pkg/store"
)

// maxConcurrentRefreshes bounds RefreshAll fan-out.
const maxConcurrentRefreshes = 4

// Source produces the full record set of one kind.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

// Fetch calls f.
func (f SourceFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

// Refreshable is the type-erased view RefreshAll works on.
type Refreshable interface {
	Kind() string
	Refresh(ctx context.Context) error
}

// Option configures a Refresher.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	metrics *Metrics
}

// WithLogger sets the logger for refresh diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records refresh outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// Refresher binds a store to its source.
type Refresher[T any] struct {
	kind   string
	store  *store.Store[T]
	source Source[T]
	settings

	mu     sync.Mutex // guards latest and the apply step
	latest uint64
}

// NewRefresher returns a Refresher loading st from src. kind labels logs
// and metrics.
func NewRefresher[T any](kind string, st *store.Store[T], src Source[T], opts ...Option) *Refresher[T] {
	r := &Refresher[T]{
		kind:     kind,
		store:    st,
		source:   src,
		settings: settings{logger: slog.Default()},
	}
	for _, opt := range opts {
		opt(&r.settings)
	}
	return r
}

// Kind returns the kind label.
func (r *Refresher[T]) Kind() string { return r.kind }

// Refresh fetches from the source and replaces the store contents. A
// fetch error is recorded on the store and returned. A result that was
// overtaken by a later Refresh is dropped without touching the store and
// Refresh returns nil.
func (r *Refresher[T]) Refresh(ctx context.Context) error {
	// The flag is raised with the generation taken so a stale refresh can
	// never raise it after a newer one has lowered it.
	r.mu.Lock()
	r.latest++
	gen := r.latest
	r.store.SetLoading(true)
	r.mu.Unlock()

	start := time.Now()
	items, err := r.source.Fetch(ctx)
	elapsed := time.Since(start)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.latest {
		r.logger.Debug("hydrate: dropped stale result", "kind", r.kind, "generation", gen)
		r.metrics.stale(r.kind)
		return nil
	}

	if err != nil {
		err = fmt.Errorf("refreshing %s: %w", r.kind, err)
		r.store.SetError(err)
		r.store.SetLoading(false)
		r.metrics.observe(r.kind, outcomeError, elapsed)
		r.logger.Warn("hydrate: refresh failed", "kind", r.kind, "error", err)
		return err
	}

	r.store.SetAll(items)
	if r.store.Status().Err != nil {
		r.store.SetError(nil)
	}
	r.store.SetLoading(false)
	r.metrics.observe(r.kind, outcomeOK, elapsed)
	r.logger.Debug("hydrate: refreshed", "kind", r.kind, "items", len(items), "elapsed", elapsed)
	return nil
}

// RefreshAll runs every refresher concurrently and returns the first error.
// Remaining refreshes see a cancelled context once one fails.
func RefreshAll(ctx context.Context, rs ...Refreshable) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefreshes)

	for _, r := range rs {
		g.Go(func() error {
			return r.Refresh(gCtx)
		})
	}
	return g.Wait()
}
