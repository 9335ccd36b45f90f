package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/daybook/internal/hydrate"
	"github.com/mesh-intelligence/daybook/internal/sqlite"
	"github.com/mesh-intelligence/daybook/pkg/store"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// handler runs record operations for one kind against its in-memory store
// and its backend table. Reads go through the store, which must have been
// hydrated; writes go to the table first and are mirrored into the store.
type handler interface {
	refresher() hydrate.Refreshable
	filters() []string
	list(filter, key string) (any, error)
	get(id string) (any, error)
	create(ctx context.Context, raw []byte) (any, error)
	update(ctx context.Context, id string, raw []byte) (any, error)
	remove(ctx context.Context, id string) error
	unlink(ctx context.Context, id string) error
}

type kindHandler[T types.Entity, PT interface {
	*T
	types.IDSetter
}] struct {
	kind  string
	store *store.Store[T]
	table *sqlite.Table[T, PT]
	ref   *hydrate.Refresher[T]
}

func newKindHandler[T types.Entity, PT interface {
	*T
	types.IDSetter
}](s *session, kind string, st *store.Store[T]) (*kindHandler[T, PT], error) {
	tbl, err := sqlite.Open[T, PT](s.backend, kind)
	if err != nil {
		return nil, err
	}
	return &kindHandler[T, PT]{
		kind:  kind,
		store: st,
		table: tbl,
		ref:   hydrate.NewRefresher(kind, st, tbl, hydrate.WithLogger(s.logger), hydrate.WithMetrics(s.metrics)),
	}, nil
}

func (h *kindHandler[T, PT]) refresher() hydrate.Refreshable { return h.ref }

func (h *kindHandler[T, PT]) filters() []string { return h.store.Filters() }

func (h *kindHandler[T, PT]) list(filter, key string) (any, error) {
	if filter == "" {
		return h.store.All(), nil
	}
	items, err := h.store.Filter(filter, key)
	if err != nil {
		return nil, userError(fmt.Errorf("%s: %w", h.kind, err))
	}
	return items, nil
}

func (h *kindHandler[T, PT]) get(id string) (any, error) {
	v, ok := h.store.Get(id)
	if !ok {
		return nil, userError(fmt.Errorf("%s %q: %w", h.kind, id, types.ErrNotFound))
	}
	return v, nil
}

func (h *kindHandler[T, PT]) create(ctx context.Context, raw []byte) (any, error) {
	var v T
	if err := decodeObject(raw, &v); err != nil {
		return nil, userError(fmt.Errorf("%s: %w", h.kind, err))
	}
	if err := validate(v); err != nil {
		return nil, userError(fmt.Errorf("%s: %w", h.kind, err))
	}
	if id := v.EntityID(); id != "" {
		if _, exists := h.store.Get(id); exists {
			return nil, userError(fmt.Errorf("%s %q already exists", h.kind, id))
		}
	}
	if _, err := h.table.Create(ctx, &v); err != nil {
		return nil, sysError(err)
	}
	h.store.Add(v)
	return v, nil
}

func (h *kindHandler[T, PT]) update(ctx context.Context, id string, raw []byte) (any, error) {
	cur, ok := h.store.Get(id)
	if !ok {
		return nil, userError(fmt.Errorf("%s %q: %w", h.kind, id, types.ErrNotFound))
	}
	if err := checkPatchID(raw, id); err != nil {
		return nil, userError(fmt.Errorf("%s %q: %w", h.kind, id, err))
	}
	patch, err := store.JSONPatch[T](raw)
	if err != nil {
		return nil, userError(err)
	}
	if err := validate(patched(cur, patch)); err != nil {
		return nil, userError(fmt.Errorf("%s %q: %w", h.kind, id, err))
	}
	h.store.Update(id, patch)

	v, _ := h.store.Get(id)
	if err := h.table.Save(ctx, v); err != nil {
		return nil, sysError(err)
	}
	return v, nil
}

func (h *kindHandler[T, PT]) remove(ctx context.Context, id string) error {
	if err := h.table.Delete(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return userError(err)
		}
		return sysError(err)
	}
	h.store.Remove(id)
	return nil
}

// unlink deletes a record a cascade already removed from the store.
func (h *kindHandler[T, PT]) unlink(ctx context.Context, id string) error {
	err := h.table.Delete(ctx, id)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return sysError(err)
	}
	return nil
}

// decodeObject decodes a JSON object into v.
func decodeObject(raw []byte, v any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return fmt.Errorf("expected a JSON object: %w", types.ErrInvalidData)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return nil
}

// validate runs the entity's own checks when it has any.
func validate(v any) error {
	if c, ok := v.(interface{ Validate() error }); ok {
		return c.Validate()
	}
	return nil
}

func patched[T any](v T, patch store.Patch[T]) T {
	patch(&v)
	return v
}

// checkPatchID rejects a patch that names an id other than the target's.
// A patch that is not an object is left for JSONPatch to reject.
func checkPatchID(raw []byte, id string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	v, ok := fields["id"]
	if !ok {
		return nil
	}
	var got string
	if err := json.Unmarshal(v, &got); err != nil || got != id {
		return fmt.Errorf("patch cannot change the id: %w", types.ErrInvalidID)
	}
	return nil
}
