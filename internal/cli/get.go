package cli

import (
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Get a record by ID",
		Long: `Get prints one record as JSON.

Example:
  daybook get tasks 0192f7c1-...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			return a.withSession(cmd, []string{kind}, func(s *session) error {
				h, _ := s.handler(kind)
				v, err := h.get(id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), v)
			})
		},
	}
}
