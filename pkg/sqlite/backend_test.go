package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/daybook/pkg/sqlite"
	"github.com/mesh-intelligence/daybook/pkg/store"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

func TestPublicBackendFeedsStore(t *testing.T) {
	ctx := context.Background()
	backend := sqlite.NewBackend(nil)
	require.NoError(t, backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer backend.Detach()

	projects, err := sqlite.Open[types.Project](backend, types.KindProjects)
	require.NoError(t, err)
	_, err = projects.Create(ctx, &types.Project{Name: "launch", Status: types.ProjectStateActive})
	require.NoError(t, err)

	items, err := projects.Fetch(ctx)
	require.NoError(t, err)

	s := store.MustNew[types.Project]()
	s.SetAll(items)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "launch", s.All()[0].Name)
}
