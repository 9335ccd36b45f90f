package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <kind> <id> <json-patch|->",
		Short: "Merge a partial JSON object into a record",
		Long: `Update merges the fields of a JSON object into an existing record. Fields
absent from the patch keep their values. The id cannot be changed.

Example:
  daybook update tasks 0192f7c1-... '{"status":"done"}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			raw, err := readPayload(cmd, args[2])
			if err != nil {
				return err
			}
			return a.withSession(cmd, []string{kind}, func(s *session) error {
				h, _ := s.handler(kind)
				v, err := h.update(cmd.Context(), id, raw)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), v)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", id)
				return nil
			})
		},
	}
}
