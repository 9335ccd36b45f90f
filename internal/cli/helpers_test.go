package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	t       *testing.T
	Config  string
	DataDir string
}

// cmdResult holds the output of one in-process command run.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tempDir := t.TempDir()
	env := &testEnv{
		t:       t,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
	t.Setenv("DAYBOOK_DATA_DIR", "")
	t.Setenv("DAYBOOK_LOG_LEVEL", "")
	t.Setenv("DAYBOOK_SELECTION_POLICY", "")
	return env
}

// run executes daybook with the env's directories and returns the outcome.
func (e *testEnv) run(args ...string) cmdResult {
	return e.runWithStdin("", args...)
}

func (e *testEnv) runWithStdin(stdin string, args ...string) cmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...))

	err := root.Execute()
	return cmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: ExitCode(err),
		Err:      err,
	}
}

// mustRun runs a command and fails the test on a non-zero exit.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.Err, "daybook %s", strings.Join(args, " "))
	return res
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

func readJSONLFile(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		out = append(out, parseJSON[map[string]any](t, line))
	}
	return out
}
