package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/daybook/internal/paths"
	"github.com/mesh-intelligence/daybook/internal/sqlite"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize daybook configuration and storage",
		Long: `Init writes config.yaml (recording --data-dir when given) and creates
the data directory with an empty JSONL file per kind. Running it again
leaves existing files untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return sysError(fmt.Errorf("resolving config dir: %w", err))
			}
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolving data dir: %w", err))
			}
			cfg := configFile{}
			if a.dataDir != "" {
				cfg.DataDir = dataDir
			}
			if err := writeConfigIfMissing(configDir, cfg); err != nil {
				return sysError(err)
			}
			backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
			if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
				return sysError(fmt.Errorf("initializing storage: %w", err))
			}
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalizing storage: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return writeJSON(out, map[string]string{"config": configDir, "data": dataDir})
			}
			fmt.Fprintln(out, "Daybook initialized successfully")
			fmt.Fprintln(out, "  config:", configDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
