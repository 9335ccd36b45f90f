// Package cli implements the daybook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/daybook/internal/paths"
	"github.com/mesh-intelligence/daybook/pkg/store"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(err error) error { return &exitError{code: exitUserError, err: err} }

// sysError marks err as an environment or storage failure.
func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// ExitCode maps an error returned by a command to a process exit code.
// Errors without a code, such as cobra argument errors, count as user
// errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// app holds global flag values and the state PersistentPreRunE derives
// from them.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	configDataDir string
	policy        store.SelectionPolicy
	logger        *slog.Logger
}

// NewRootCmd creates the top-level "daybook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "daybook",
		Short: "Daybook keeps tasks, goals, habits and time in local storage",
		Long: `Daybook manages the entities of a personal productivity workspace:
projects, tasks, goals, daily goals, habits, time entries and their
catalogs. Records live as JSONL files in the data directory.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newKindsCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

// Execute runs the root command with os.Args and returns the exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "daybook:", err)
	}
	return ExitCode(err)
}

// setup loads config.yaml and configures logging for every subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolving config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.configDataDir = v.GetString(cfgKeyDataDir)

	level, err := parseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err)
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.policy, err = store.ParseSelectionPolicy(v.GetString(cfgKeySelectionPolicy))
	if err != nil {
		return userError(err)
	}
	return nil
}

// resolveDataDir applies the precedence --data-dir > config.yaml >
// DAYBOOK_DATA_DIR > $(CWD)/.daybook-db.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.configDataDir)
}

// parseLevel maps a config log_level to a slog level. Empty means warn.
func parseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", name, err)
	}
	return l, nil
}
