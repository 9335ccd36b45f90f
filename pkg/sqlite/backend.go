// Package sqlite provides the public API for the SQLite daybook backend.
// This package exposes the factory functions while keeping implementation
// details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/daybook/internal/sqlite"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// Backend is the SQLite persistence backend.
type Backend = sqlite.Backend

// Table gives typed access to the records of one kind.
type Table[T types.Entity, PT interface {
	*T
	types.IDSetter
}] = sqlite.Table[T, PT]

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".daybook-db",
//	})
//	defer backend.Detach()
func NewBackend(logger *slog.Logger) *Backend {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}

// Open returns the table for kind on b.
func Open[T types.Entity, PT interface {
	*T
	types.IDSetter
}](b *Backend, kind string) (*Table[T, PT], error) {
	return sqlite.Open[T, PT](b, kind)
}
