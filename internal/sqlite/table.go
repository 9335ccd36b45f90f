package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

// Table gives typed access to the records of one kind. PT is the pointer
// type of T, which lets Create assign a fresh ID.
type Table[T types.Entity, PT interface {
	*T
	types.IDSetter
}] struct {
	kind    string
	backend *Backend
}

// Open returns the table for kind on b. Returns ErrUnknownKind for a kind
// outside the standard set.
func Open[T types.Entity, PT interface {
	*T
	types.IDSetter
}](b *Backend, kind string) (*Table[T, PT], error) {
	if !types.IsKind(kind) {
		return nil, fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
	return &Table[T, PT]{kind: kind, backend: b}, nil
}

// Kind returns the kind this table serves.
func (t *Table[T, PT]) Kind() string { return t.kind }

// List returns every record of the kind in insertion order.
func (t *Table[T, PT]) List(ctx context.Context) ([]T, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrDetached
	}

	records, err := t.backend.recordsLocked(ctx, t.kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", t.kind, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Fetch is List under the name hydration sources use.
func (t *Table[T, PT]) Fetch(ctx context.Context) ([]T, error) {
	return t.List(ctx)
}

// Get retrieves one record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
func (t *Table[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return zero, types.ErrDetached
	}

	var data string
	err := t.backend.db.QueryRowContext(ctx, selectDocument, t.kind, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %s: %w", t.kind, id, types.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("reading %s %s: %w", t.kind, id, err)
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return zero, fmt.Errorf("decoding %s %s: %w", t.kind, id, err)
	}
	return v, nil
}

// Create inserts a new record. An empty ID is replaced with a UUID v7,
// written back into v. Returns the ID.
func (t *Table[T, PT]) Create(ctx context.Context, v *T) (string, error) {
	if v == nil {
		return "", types.ErrInvalidData
	}
	id := (*v).EntityID()
	if id == "" {
		id = newUUID()
		PT(v).SetEntityID(id)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", t.kind, err)
	}
	return id, t.write(ctx, insertDocument, id, data)
}

// Save upserts v under its ID. Returns ErrInvalidID if the ID is empty.
func (t *Table[T, PT]) Save(ctx context.Context, v T) error {
	id := v.EntityID()
	if id == "" {
		return types.ErrInvalidID
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", t.kind, err)
	}
	return t.write(ctx, upsertDocument, id, data)
}

// Delete removes one record. Returns ErrNotFound if absent.
func (t *Table[T, PT]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrDetached
	}

	res, err := t.backend.db.ExecContext(ctx, deleteDocument, t.kind, id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.kind, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %s: %w", t.kind, id, types.ErrNotFound)
	}
	return t.backend.persistKindLocked(ctx, t.kind)
}

// write runs an insert or upsert statement and rewrites the kind's JSONL.
func (t *Table[T, PT]) write(ctx context.Context, stmt, id string, data []byte) error {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrDetached
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := t.backend.db.ExecContext(ctx, stmt, t.kind, id, string(data), now, now); err != nil {
		return fmt.Errorf("writing %s %s: %w", t.kind, id, err)
	}
	return t.backend.persistKindLocked(ctx, t.kind)
}
