package store

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
)

// Status is the advisory status record of a Store. The store records what
// the caller sets and never interprets it.
type Status struct {
	Loading bool
	Err     error
}

// Snapshot is the complete state of a Store at one point in time. Items is
// a copy; Selected is nil when nothing is selected.
type Snapshot[T any] struct {
	Items    []T
	Selected *T
	Status   Status
}

// identified is satisfied by entity types that expose their own ID.
type identified interface {
	EntityID() string
}

// Store is an indexed in-memory collection of one entity type with a
// selection cursor. The zero value is not usable; construct with New.
type Store[T any] struct {
	mu       sync.RWMutex
	items    []T
	selected *T
	status   Status

	id      func(T) string
	filters map[string]Filter[T]
	policy  SelectionPolicy
	logger  *slog.Logger
	name    string

	// pending and delivering are guarded by mu. Snapshots are queued in
	// mutation order and drained by one goroutine at a time.
	pending    []Snapshot[T]
	delivering bool

	subMu  sync.Mutex
	subs   map[int]func(Snapshot[T])
	nextID int
}

// New builds an empty Store. The ID accessor defaults to T's EntityID
// method; New returns ErrConfiguration when T has none and WithID was not
// given, or when any option is malformed.
func New[T any](opts ...Option[T]) (*Store[T], error) {
	cfg := config[T]{
		filters: make(map[string]Filter[T]),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.id == nil {
		var zero T
		if _, ok := any(zero).(identified); !ok {
			return nil, fmt.Errorf("%T has no EntityID method and no accessor was given: %w", zero, ErrConfiguration)
		}
		cfg.id = func(v T) string { return any(v).(identified).EntityID() }
	}
	if cfg.name == "" {
		var zero T
		cfg.name = fmt.Sprintf("%T", zero)
	}
	return &Store[T]{
		id:      cfg.id,
		filters: cfg.filters,
		policy:  cfg.policy,
		logger:  cfg.logger,
		name:    cfg.name,
		subs:    make(map[int]func(Snapshot[T])),
	}, nil
}

// MustNew is like New but panics on a configuration error. Intended for
// wiring fixed registrations at startup.
func MustNew[T any](opts ...Option[T]) *Store[T] {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the label the store logs under.
func (s *Store[T]) Name() string { return s.name }

// ID returns the ID of v using the store's accessor.
func (s *Store[T]) ID(v T) string { return s.id(v) }

// All returns a copy of the items in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the first item with the given ID.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Selected returns the selected entity, if any.
func (s *Store[T]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		var zero T
		return zero, false
	}
	return *s.selected, true
}

// Status returns the advisory status flags.
func (s *Store[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Snapshot returns the complete current state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Filter applies the named derived filter to the items. Returns
// ErrConfiguration if no filter with that name was registered.
func (s *Store[T]) Filter(name, key string) ([]T, error) {
	s.mu.RLock()
	f, ok := s.filters[name]
	items := slices.Clone(s.items)
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("filter %q not registered on %s: %w", name, s.name, ErrConfiguration)
	}
	return f(items, key), nil
}

// Filters returns the registered filter names, sorted.
func (s *Store[T]) Filters() []string {
	names := make([]string, 0, len(s.filters))
	for n := range s.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetAll replaces the items wholesale. The selection is reconciled
// according to the store's SelectionPolicy.
func (s *Store[T]) SetAll(items []T) {
	s.mutate("set_all", func() bool {
		s.items = slices.Clone(items)
		if s.selected == nil || s.policy == KeepSelection {
			return true
		}
		i := s.indexLocked(s.id(*s.selected))
		switch {
		case i < 0:
			s.selected = nil
		case s.policy == RefreshSelection:
			v := s.items[i]
			s.selected = &v
		}
		return true
	})
}

// Add appends item. Existing items keep their order. The caller is
// responsible for not adding an ID that is already present.
func (s *Store[T]) Add(item T) {
	s.mutate("add", func() bool {
		s.items = append(s.items, item)
		return true
	})
}

// Update applies patch to the item with the given ID. When the selection
// shares that ID it is replaced by the patched item, so the two never
// diverge; when the item is absent but the selection carries the ID, the
// patch is applied to the selection alone. An unknown ID is a no-op.
// Patches that change the ID are discarded.
func (s *Store[T]) Update(id string, patch Patch[T]) {
	if patch == nil {
		return
	}
	s.mutate("update", func() bool {
		selHit := s.selected != nil && s.id(*s.selected) == id
		i := s.indexLocked(id)
		if i < 0 {
			if !selHit {
				return false
			}
			v := *s.selected
			patch(&v)
			if s.id(v) != id {
				s.logger.Warn("store: patch changed entity id, discarded", "store", s.name, "id", id)
				return false
			}
			s.selected = &v
			return true
		}
		v := s.items[i]
		patch(&v)
		if s.id(v) != id {
			s.logger.Warn("store: patch changed entity id, discarded", "store", s.name, "id", id)
			return false
		}
		s.items[i] = v
		if selHit {
			sel := v
			s.selected = &sel
		}
		return true
	})
}

// Remove deletes every item with the given ID and clears a selection
// carrying that ID. An unknown ID is a no-op.
func (s *Store[T]) Remove(id string) {
	s.mutate("remove", func() bool {
		n := len(s.items)
		s.items = slices.DeleteFunc(s.items, func(v T) bool {
			return s.id(v) == id
		})
		changed := len(s.items) != n
		if s.selected != nil && s.id(*s.selected) == id {
			s.selected = nil
			changed = true
		}
		return changed
	})
}

// Select replaces the selection unconditionally. The item need not be a
// member of the collection.
func (s *Store[T]) Select(item T) {
	s.mutate("select", func() bool {
		s.selected = &item
		return true
	})
}

// SelectID selects the item with the given ID and reports whether it was
// found. The selection is left unchanged when it was not.
func (s *Store[T]) SelectID(id string) bool {
	s.mu.RLock()
	i := s.indexLocked(id)
	var v T
	if i >= 0 {
		v = s.items[i]
	}
	s.mu.RUnlock()
	if i < 0 {
		return false
	}
	s.Select(v)
	return true
}

// ClearSelection drops the selection.
func (s *Store[T]) ClearSelection() {
	s.mutate("clear_selection", func() bool {
		s.selected = nil
		return true
	})
}

// SetLoading sets the advisory loading flag.
func (s *Store[T]) SetLoading(loading bool) {
	s.mutate("set_loading", func() bool {
		s.status.Loading = loading
		return true
	})
}

// SetError sets the advisory error slot; nil clears it.
func (s *Store[T]) SetError(err error) {
	s.mutate("set_error", func() bool {
		s.status.Err = err
		return true
	})
}

// Reset restores the state of a freshly constructed store. Filters,
// policy and subscribers are configuration and survive.
func (s *Store[T]) Reset() {
	s.mutate("reset", func() bool {
		s.items = nil
		s.selected = nil
		s.status = Status{}
		return true
	})
}

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned function cancels the subscription and is safe to call twice.
func (s *Store[T]) Subscribe(fn func(Snapshot[T])) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// mutate runs fn under the write lock and queues the resulting snapshot.
// fn reports whether anything changed; no-ops are not delivered. The
// caller that finds no delivery in progress drains the queue with no lock
// held, so subscribers see snapshots in mutation order and may call back
// into the store; such nested mutations are delivered after the current
// one.
func (s *Store[T]) mutate(op string, fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.pending = append(s.pending, snap)
	drain := !s.delivering
	s.delivering = true
	s.mu.Unlock()

	s.logger.Debug("store: mutation", "store", s.name, "op", op, "items", len(snap.Items))
	if drain {
		s.drain()
	}
}

func (s *Store[T]) drain() {
	done := false
	defer func() {
		if !done {
			s.mu.Lock()
			s.delivering = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.delivering = false
			s.mu.Unlock()
			done = true
			return
		}
		snap := s.pending[0]
		s.pending[0] = Snapshot[T]{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, f := range s.subscribers() {
			f(snap)
		}
	}
}

func (s *Store[T]) subscribers() []func(Snapshot[T]) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot[T]), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}

func (s *Store[T]) snapshotLocked() Snapshot[T] {
	snap := Snapshot[T]{
		Items:  slices.Clone(s.items),
		Status: s.status,
	}
	if s.selected != nil {
		v := *s.selected
		snap.Selected = &v
	}
	return snap
}

func (s *Store[T]) indexLocked(id string) int {
	for i, v := range s.items {
		if s.id(v) == id {
			return i
		}
	}
	return -1
}
