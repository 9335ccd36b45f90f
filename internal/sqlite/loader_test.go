package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

func seed(t *testing.T, dir, kind, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, kind+".jsonl"), []byte(content), 0o644))
}

func TestLoadSkipsMalformedAndIDlessRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed(t, dir, types.KindTasks, ""+
		`{"id":"t1","title":"ok"}`+"\n"+
		`{"title":"no id"}`+"\n"+
		`{"id":"t2",`+"\n"+
		`"just a string"`+"\n"+
		`{"id":"t3","title":"also ok"}`+"\n")

	b := attach(t, dir)
	n, err := b.Count(ctx, types.KindTasks)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadToleratesUnknownFields(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed(t, dir, types.KindHabits, `{"id":"h1","name":"stretch","frequency":"daily","futureField":{"x":1}}`+"\n")

	b := attach(t, dir)
	habits, err := Open[types.Habit](b, types.KindHabits)
	require.NoError(t, err)

	got, err := habits.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "stretch", got.Name)

	out := filepath.Join(t.TempDir(), "habits.jsonl")
	_, err = b.ExportJSONL(ctx, types.KindHabits, out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "futureField", "untouched records keep unknown fields")
}

func TestLoadLastDuplicateWins(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed(t, dir, types.KindTags, `{"id":"g1","name":"first"}`+"\n"+`{"id":"g1","name":"second"}`+"\n")

	b := attach(t, dir)
	tags, err := Open[types.Tag](b, types.KindTags)
	require.NoError(t, err)
	got, err := tags.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestLoadRebuildsStaleDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := attach(t, dir)
	_, err := openTasks(t, b).Create(ctx, &types.Task{ID: "t1"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// Truncating the JSONL must empty the table on the next attach.
	seed(t, dir, types.KindTasks, "")
	b2 := attach(t, dir)
	n, err := b2.Count(ctx, types.KindTasks)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"string id", `{"id":"a"}`, "a"},
		{"missing", `{"name":"a"}`, ""},
		{"numeric id", `{"id":7}`, ""},
		{"null id", `{"id":null}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &fields))
			assert.Equal(t, tt.want, recordID(fields))
		})
	}
}
