package store

import (
	"fmt"
	"log/slog"
)

// SelectionPolicy decides what SetAll does with the selected entity when
// the backing collection is replaced.
type SelectionPolicy int

const (
	// KeepSelection leaves the selection untouched on SetAll, even when the
	// selected ID no longer appears in the collection.
	KeepSelection SelectionPolicy = iota

	// ClearMissing clears the selection when its ID is absent from the new
	// collection and keeps it unchanged otherwise.
	ClearMissing

	// RefreshSelection replaces the selection with the new entity carrying
	// the same ID, or clears it when that ID is absent.
	RefreshSelection
)

// String returns the policy name used in logs and config files.
func (p SelectionPolicy) String() string {
	switch p {
	case KeepSelection:
		return "keep"
	case ClearMissing:
		return "clear-missing"
	case RefreshSelection:
		return "refresh"
	default:
		return fmt.Sprintf("SelectionPolicy(%d)", int(p))
	}
}

// ParseSelectionPolicy maps a policy name back to its value.
func ParseSelectionPolicy(name string) (SelectionPolicy, error) {
	switch name {
	case "", "keep":
		return KeepSelection, nil
	case "clear-missing":
		return ClearMissing, nil
	case "refresh":
		return RefreshSelection, nil
	default:
		return KeepSelection, fmt.Errorf("selection policy %q: %w", name, ErrConfiguration)
	}
}

// Option configures a Store at construction.
type Option[T any] func(*config[T]) error

type config[T any] struct {
	id      func(T) string
	filters map[string]Filter[T]
	policy  SelectionPolicy
	logger  *slog.Logger
	name    string
}

// WithID sets the accessor that extracts an entity's ID. Without it, New
// falls back to the entity's EntityID method.
func WithID[T any](id func(T) string) Option[T] {
	return func(c *config[T]) error {
		if id == nil {
			return fmt.Errorf("nil id accessor: %w", ErrConfiguration)
		}
		c.id = id
		return nil
	}
}

// WithFilter registers a named derived filter. Names must be unique and
// non-empty.
func WithFilter[T any](name string, f Filter[T]) Option[T] {
	return func(c *config[T]) error {
		if name == "" {
			return fmt.Errorf("empty filter name: %w", ErrConfiguration)
		}
		if f == nil {
			return fmt.Errorf("filter %q is nil: %w", name, ErrConfiguration)
		}
		if _, dup := c.filters[name]; dup {
			return fmt.Errorf("filter %q registered twice: %w", name, ErrConfiguration)
		}
		c.filters[name] = f
		return nil
	}
}

// WithSelectionPolicy sets how SetAll reconciles the selection.
func WithSelectionPolicy[T any](p SelectionPolicy) Option[T] {
	return func(c *config[T]) error {
		if p < KeepSelection || p > RefreshSelection {
			return fmt.Errorf("%s: %w", p, ErrConfiguration)
		}
		c.policy = p
		return nil
	}
}

// WithLogger sets the logger used for debug tracing of mutations.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(c *config[T]) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithName labels the store in log records.
func WithName[T any](name string) Option[T] {
	return func(c *config[T]) error {
		c.name = name
		return nil
	}
}
