package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

func TestInitCreatesConfigAndData(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, "Daybook initialized successfully")

	cfg, err := os.ReadFile(filepath.Join(env.Config, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")
	assert.Contains(t, string(cfg), "data_dir: "+env.DataDir)

	for _, kind := range types.StandardKinds {
		_, err := os.Stat(filepath.Join(env.DataDir, kind+".jsonl"))
		assert.NoError(t, err, kind)
	}

	env.mustRun("init")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("version")
	assert.Equal(t, "daybook "+Version+"\n", res.Stdout)
}

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("create", "tasks", `{"userId":"u1","projectId":"p1","title":"Write report","status":"todo"}`)
	id := strings.TrimSpace(res.Stdout)
	require.NotEmpty(t, id)

	got := parseJSON[types.Task](t, env.mustRun("get", "tasks", id).Stdout)
	assert.Equal(t, "Write report", got.Title)

	res = env.mustRun("--json", "update", "tasks", id, `{"status":"done"}`)
	updated := parseJSON[types.Task](t, res.Stdout)
	assert.Equal(t, types.TaskStateDone, updated.Status)
	assert.Equal(t, "Write report", updated.Title, "fields absent from the patch survive")

	lines := readJSONLFile(t, filepath.Join(env.DataDir, "tasks.jsonl"))
	require.Len(t, lines, 1)
	assert.Equal(t, "done", lines[0]["status"])

	res = env.mustRun("delete", "tasks", id)
	assert.Contains(t, res.Stdout, "Deleted tasks "+id)
	assert.Empty(t, readJSONLFile(t, filepath.Join(env.DataDir, "tasks.jsonl")))
}

func TestListWithFilter(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("create", "tasks", `{"id":"t1","projectId":"p1","status":"todo"}`)
	env.mustRun("create", "tasks", `{"id":"t2","projectId":"p2","status":"todo"}`)
	env.mustRun("create", "tasks", `{"id":"t3","projectId":"p1","status":"done"}`)

	all := parseJSON[[]types.Task](t, env.mustRun("list", "tasks").Stdout)
	assert.Len(t, all, 3)

	byProject := parseJSON[[]types.Task](t, env.mustRun("list", "tasks", "--filter", "byProjectId=p1").Stdout)
	require.Len(t, byProject, 2)
	assert.Equal(t, "t1", byProject[0].ID)
	assert.Equal(t, "t3", byProject[1].ID)

	env.mustRun("create", "dailyGoals", `{"id":"g1","dayId":"d1","completed":false}`)
	env.mustRun("create", "dailyGoals", `{"id":"g2","dayId":"d1","completed":true}`)
	open := parseJSON[[]types.DailyGoal](t, env.mustRun("list", "dailyGoals", "--filter", "byCompleted=false").Stdout)
	require.Len(t, open, 1)
	assert.Equal(t, "g1", open[0].ID)
}

func TestUserErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("create", "tasks", `{"id":"t1"}`)
	env.mustRun("create", "tags", `{"id":"g1","name":"work"}`)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown kind", []string{"list", "widgets"}, types.ErrUnknownKind},
		{"unknown filter", []string{"list", "tasks", "--filter", "byColor=red"}, nil},
		{"malformed filter", []string{"list", "tasks", "--filter", "byProjectId"}, nil},
		{"missing record", []string{"get", "tasks", "nope"}, types.ErrNotFound},
		{"update missing record", []string{"update", "tasks", "nope", `{}`}, types.ErrNotFound},
		{"delete missing record", []string{"delete", "tasks", "nope"}, types.ErrNotFound},
		{"create non-object", []string{"create", "tasks", `[1]`}, types.ErrInvalidData},
		{"create duplicate id", []string{"create", "tasks", `{"id":"t1"}`}, nil},
		{"patch non-object", []string{"update", "tasks", "t1", `"done"`}, nil},
		{"create blank tag name", []string{"create", "tags", `{"name":"  "}`}, types.ErrInvalidName},
		{"update to blank tag name", []string{"update", "tags", "g1", `{"name":""}`}, types.ErrInvalidName},
		{"cascade unsupported", []string{"delete", "--cascade", "tags", "x"}, nil},
		{"missing args", []string{"get", "tasks"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.args...)
			require.Error(t, res.Err)
			assert.Equal(t, exitUserError, res.ExitCode)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			}
		})
	}

	tag := parseJSON[types.Tag](t, env.mustRun("get", "tags", "g1").Stdout)
	assert.Equal(t, "work", tag.Name, "rejected update leaves the record alone")
}

func TestUpdateCannotChangeID(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("create", "tags", `{"id":"g1","name":"work"}`)

	res := env.run("update", "tags", "g1", `{"id":"g2","name":"home"}`)
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.ErrorIs(t, res.Err, types.ErrInvalidID)
	assert.NotContains(t, res.Stdout, "Updated")

	got := parseJSON[types.Tag](t, env.mustRun("get", "tags", "g1").Stdout)
	assert.Equal(t, "work", got.Name)
	assert.Equal(t, exitUserError, env.run("get", "tags", "g2").ExitCode)

	env.mustRun("update", "tags", "g1", `{"id":"g1","name":"home"}`)
	got = parseJSON[types.Tag](t, env.mustRun("get", "tags", "g1").Stdout)
	assert.Equal(t, "home", got.Name, "restating the same id is allowed")
}

func TestCreateFromStdin(t *testing.T) {
	env := newTestEnv(t)
	res := env.runWithStdin(`{"name":"stretch","frequency":"daily"}`, "--json", "create", "habits", "-")
	require.NoError(t, res.Err)
	h := parseJSON[types.Habit](t, res.Stdout)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "stretch", h.Name)
}

func TestDeleteCascade(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("create", "projects", `{"id":"p1","name":"launch"}`)
	env.mustRun("create", "tasks", `{"id":"t1","projectId":"p1"}`)
	env.mustRun("create", "tasks", `{"id":"t2","parentId":"t1"}`)
	env.mustRun("create", "tasks", `{"id":"t3","projectId":"p2"}`)
	env.mustRun("create", "timeEntries", `{"id":"e1","taskId":"t2"}`)
	env.mustRun("create", "timeEntries", `{"id":"e2","projectId":"p1"}`)

	res := env.mustRun("--json", "delete", "--cascade", "projects", "p1")
	removed := parseJSON[map[string][]string](t, res.Stdout)
	assert.Equal(t, []string{"p1"}, removed["projects"])
	assert.ElementsMatch(t, []string{"t1", "t2"}, removed["tasks"])
	assert.ElementsMatch(t, []string{"e1", "e2"}, removed["timeEntries"])

	tasks := parseJSON[[]types.Task](t, env.mustRun("list", "tasks").Stdout)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t3", tasks[0].ID)
	assert.Empty(t, readJSONLFile(t, filepath.Join(env.DataDir, "timeEntries.jsonl")))

	res = env.run("delete", "--cascade", "projects", "p1")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestExportImport(t *testing.T) {
	src := newTestEnv(t)
	src.mustRun("create", "goals", `{"id":"g1","title":"run 10k"}`)
	src.mustRun("create", "goals", `{"id":"g2","title":"read 12 books"}`)

	file := filepath.Join(t.TempDir(), "goals.jsonl")
	res := src.mustRun("export", "goals", file)
	assert.Contains(t, res.Stdout, "Exported 2 goals records")

	dst := newTestEnv(t)
	res = dst.mustRun("--json", "import", "goals", file)
	assert.EqualValues(t, 2, parseJSON[map[string]any](t, res.Stdout)["records"])

	goals := parseJSON[[]types.Goal](t, dst.mustRun("list", "goals").Stdout)
	require.Len(t, goals, 2)
	assert.Equal(t, "read 12 books", goals[1].Title)

	res = dst.run("import", "goals", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestKinds(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("create", "users", `{"id":"u1","email":"a@example.com"}`)

	rows := parseJSON[[]kindInfo](t, env.mustRun("--json", "kinds").Stdout)
	require.Len(t, rows, len(types.StandardKinds))
	for _, r := range rows {
		if r.Kind == types.KindUsers {
			assert.Equal(t, 1, r.Count)
			assert.Equal(t, []string{"byEmail"}, r.Filters)
		}
	}

	res := env.mustRun("kinds")
	assert.Contains(t, res.Stdout, "KIND")
	assert.Contains(t, res.Stdout, "timeEntries")
}

func TestConfigErrors(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DAYBOOK_SELECTION_POLICY", "sticky")
	res := env.run("list", "tasks")
	assert.Equal(t, exitUserError, res.ExitCode)

	t.Setenv("DAYBOOK_SELECTION_POLICY", "")
	t.Setenv("DAYBOOK_LOG_LEVEL", "loud")
	res = env.run("list", "tasks")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestVerboseLogsToStderr(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("--verbose", "list", "tasks")
	assert.Contains(t, res.Stderr, "sqlite: attached")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitUserError, ExitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, ExitCode(sysError(errors.New("disk"))))
	assert.Equal(t, exitUserError, ExitCode(userError(errors.New("input"))))
}
