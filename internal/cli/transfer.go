package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <kind> <file>",
		Short: "Write every record of a kind to a JSONL file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			return a.withSession(cmd, nil, func(s *session) error {
				if _, err := s.handler(kind); err != nil {
					return err
				}
				n, err := s.backend.ExportJSONL(cmd.Context(), kind, path)
				if err != nil {
					return sysError(err)
				}
				return a.reportTransfer(cmd, "Exported", kind, path, n)
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <kind> <file>",
		Short: "Upsert the records of a JSONL file into a kind",
		Long: `Import reads one JSON object per line and upserts each by id. Records
without an id are assigned one; blank and malformed lines are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return userError(fmt.Errorf("import file %q does not exist", path))
			}
			return a.withSession(cmd, nil, func(s *session) error {
				if _, err := s.handler(kind); err != nil {
					return err
				}
				n, err := s.backend.ImportJSONL(cmd.Context(), kind, path)
				if err != nil {
					return sysError(err)
				}
				return a.reportTransfer(cmd, "Imported", kind, path, n)
			})
		},
	}
}

func (a *app) reportTransfer(cmd *cobra.Command, verb, kind, path string, n int) error {
	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"kind": kind, "file": path, "records": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s records (%s)\n", verb, n, kind, path)
	return nil
}
